package tags

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Node levels. The editable hierarchy is always three levels deep at most:
// categories at the root, subcategories beneath them, tags at the leaves.
const (
	LevelCategory = iota
	LevelSubcategory
	LevelTag
)

// RootBucket collects tags that hang directly off a category, with no
// subcategory between them.
const RootBucket = "_root"

// Node is one entry in the editable tag hierarchy. Trees are built top-down
// through NewCategory and AddChild, which is what keeps them acyclic; nodes
// are never re-parented by pointer assignment.
type Node struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Children []*Node `json:"children"`
	Level    int     `json:"level"`
	Parent   string  `json:"parent,omitempty"`
}

// NewCategory creates a root-level node with a fresh identifier.
func NewCategory(name string) *Node {
	return &Node{ID: uuid.NewString(), Name: name, Level: LevelCategory}
}

// AddChild appends a new child one level below n and returns it.
func (n *Node) AddChild(name string) *Node {
	child := &Node{
		ID:     uuid.NewString(),
		Name:   name,
		Level:  n.Level + 1,
		Parent: n.ID,
	}
	n.Children = append(n.Children, child)
	return child
}

// Child returns the direct child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Path derives the requirement path a node represents: a bare category for a
// root node, category/subcategory for an inner node, the full tag path for a
// leaf. Ancestry names are supplied by the caller walking down from the
// root. A two-segment path names a subcategory when the node still has
// children and a direct tag otherwise.
func (n *Node) Path(ancestors ...string) Path {
	segments := append(append([]string{}, ancestors...), n.Name)
	path := Path{Category: segments[0], Tag: segments[len(segments)-1]}
	switch {
	case len(segments) == 3:
		path.Subcategory = segments[1]
	case len(segments) == 2 && len(n.Children) > 0:
		path.Subcategory = segments[1]
	}
	path.FullPath = strings.Join(segments, Separator)
	return path
}

// Clone returns a deep copy of the node and everything beneath it,
// preserving identifiers.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	copied := &Node{ID: n.ID, Name: n.Name, Level: n.Level, Parent: n.Parent}
	if len(n.Children) > 0 {
		copied.Children = make([]*Node, 0, len(n.Children))
		for _, child := range n.Children {
			copied.Children = append(copied.Children, child.Clone())
		}
	}
	return copied
}

// CloneTree deep-copies a forest of root nodes.
func CloneTree(nodes []*Node) []*Node {
	if nodes == nil {
		return nil
	}
	copied := make([]*Node, 0, len(nodes))
	for _, node := range nodes {
		copied = append(copied, node.Clone())
	}
	return copied
}

// CountNodes returns the total number of nodes in a forest, children
// included.
func CountNodes(nodes []*Node) int {
	total := 0
	for _, node := range nodes {
		total++
		total += CountNodes(node.Children)
	}
	return total
}

// Grouped is the browse/autocomplete view of the flat tag list: category to
// bucket to sorted tag names. Tags without a subcategory land in the
// synthetic RootBucket bucket.
type Grouped map[string]map[string][]string

// Group builds the Grouped view from a flat list of tag paths. Tag names are
// deduplicated within each bucket and sorted lexicographically. The view is
// rebuilt from scratch on every call; it is never incrementally maintained.
func Group(paths []Path) Grouped {
	grouped := make(Grouped)
	for _, path := range paths {
		if path.IsZero() {
			continue
		}
		bucket := path.Subcategory
		if bucket == "" {
			bucket = RootBucket
		}
		buckets, ok := grouped[path.Category]
		if !ok {
			buckets = make(map[string][]string)
			grouped[path.Category] = buckets
		}
		buckets[bucket] = append(buckets[bucket], path.Tag)
	}

	for _, buckets := range grouped {
		for name, entries := range buckets {
			buckets[name] = dedupeSorted(entries)
		}
	}
	return grouped
}

// Categories lists the category names in sorted order for deterministic
// rendering.
func (g Grouped) Categories() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Buckets lists a category's bucket names sorted, with RootBucket first when
// present.
func (g Grouped) Buckets(category string) []string {
	buckets, ok := g[category]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(buckets))
	hasRoot := false
	for name := range buckets {
		if name == RootBucket {
			hasRoot = true
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if hasRoot {
		names = append([]string{RootBucket}, names...)
	}
	return names
}

func dedupeSorted(entries []string) []string {
	seen := make(map[string]struct{}, len(entries))
	unique := entries[:0]
	for _, entry := range entries {
		if _, ok := seen[entry]; ok {
			continue
		}
		seen[entry] = struct{}{}
		unique = append(unique, entry)
	}
	sort.Strings(unique)
	return unique
}

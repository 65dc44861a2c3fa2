package tags

// MergeResult carries the outcome of a structural hierarchy merge. Nodes is
// a freshly built tree; neither input is mutated. Created counts nodes that
// exist in the result but not in the target. Collisions lists the names of
// target categories a source category merged into, one entry per colliding
// category regardless of how much it contained.
type MergeResult struct {
	Nodes      []*Node
	Created    int
	Collisions []string
}

// Merge folds source into target by node name, category by category. A
// source category with no name match in target is appended whole; a matched
// category is merged recursively, with unmatched subcategories appended and
// matched subcategories' tag leaves unioned (duplicates dropped by name).
// Both inputs are treated as immutable.
func Merge(target, source []*Node) MergeResult {
	result := MergeResult{Nodes: CloneTree(target)}

	for _, incoming := range source {
		existing := findByName(result.Nodes, incoming.Name)
		if existing == nil {
			appended := incoming.Clone()
			result.Nodes = append(result.Nodes, appended)
			result.Created += 1 + CountNodes(appended.Children)
			continue
		}
		result.Collisions = append(result.Collisions, incoming.Name)
		result.Created += mergeChildren(existing, incoming)
	}
	return result
}

// mergeChildren unions incoming's children into existing, recursing until
// the leaf level. Returns the number of nodes created under existing.
func mergeChildren(existing, incoming *Node) int {
	created := 0
	for _, child := range incoming.Children {
		match := existing.Child(child.Name)
		if match == nil {
			appended := child.Clone()
			appended.Parent = existing.ID
			existing.Children = append(existing.Children, appended)
			created += 1 + CountNodes(appended.Children)
			continue
		}
		if child.Level < LevelTag {
			created += mergeChildren(match, child)
		}
		// Same-named leaves are duplicates; the target's copy wins.
	}
	return created
}

func findByName(nodes []*Node, name string) *Node {
	for _, node := range nodes {
		if node.Name == name {
			return node
		}
	}
	return nil
}

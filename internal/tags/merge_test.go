package tags

import (
	"reflect"
	"testing"
)

func buildHierarchy(t *testing.T, categories map[string]map[string][]string) []*Node {
	t.Helper()
	var nodes []*Node
	for category, buckets := range categories {
		root := NewCategory(category)
		for subcategory, leaves := range buckets {
			parent := root
			if subcategory != "" {
				parent = root.AddChild(subcategory)
			}
			for _, leaf := range leaves {
				parent.AddChild(leaf)
			}
		}
		nodes = append(nodes, root)
	}
	return nodes
}

func TestMergeAppendsUnmatchedCategory(t *testing.T) {
	target := buildHierarchy(t, map[string]map[string][]string{
		"Nature": {"Landscape": {"Mountains"}},
	})
	source := buildHierarchy(t, map[string]map[string][]string{
		"Travel": {"Asia": {"Japan", "Vietnam"}},
	})

	result := Merge(target, source)

	if len(result.Collisions) != 0 {
		t.Fatalf("expected no collisions, got %v", result.Collisions)
	}
	if len(result.Nodes) != 2 {
		t.Fatalf("expected 2 categories after merge, got %d", len(result.Nodes))
	}
	// Travel + Asia + 2 leaves.
	if result.Created != 4 {
		t.Errorf("Created = %d, want 4", result.Created)
	}
}

func TestMergeCollidingCategoryUnionsChildren(t *testing.T) {
	target := buildHierarchy(t, map[string]map[string][]string{
		"Nature": {"Landscape": {"Mountains"}},
	})
	source := buildHierarchy(t, map[string]map[string][]string{
		"Nature": {
			"Landscape": {"Mountains", "Beaches"},
			"Wildlife":  {"Deer"},
		},
	})

	result := Merge(target, source)

	if !reflect.DeepEqual(result.Collisions, []string{"Nature"}) {
		t.Fatalf("Collisions = %v, want [Nature]", result.Collisions)
	}
	if len(result.Nodes) != 1 {
		t.Fatalf("expected a single category, got %d", len(result.Nodes))
	}

	nature := result.Nodes[0]
	landscape := nature.Child("Landscape")
	if landscape == nil {
		t.Fatal("Landscape subcategory missing after merge")
	}
	names := childNames(landscape)
	if !reflect.DeepEqual(names, []string{"Mountains", "Beaches"}) {
		t.Errorf("Landscape leaves = %v, want [Mountains Beaches]", names)
	}
	if nature.Child("Wildlife") == nil {
		t.Error("Wildlife subcategory not appended")
	}
	// Beaches + Wildlife + Deer.
	if result.Created != 3 {
		t.Errorf("Created = %d, want 3", result.Created)
	}
}

func TestMergeRecordsOneCollisionPerCategory(t *testing.T) {
	target := buildHierarchy(t, map[string]map[string][]string{
		"Nature": {
			"Landscape": {"Mountains"},
			"Wildlife":  {"Deer"},
		},
	})
	source := buildHierarchy(t, map[string]map[string][]string{
		"Nature": {
			"Landscape": {"Beaches", "Rivers"},
			"Wildlife":  {"Foxes"},
			"Macro":     {"Insects"},
		},
	})

	result := Merge(target, source)
	if len(result.Collisions) != 1 {
		t.Fatalf("expected one collision regardless of contents, got %v", result.Collisions)
	}
}

func TestMergeLeavesInputsUntouched(t *testing.T) {
	target := buildHierarchy(t, map[string]map[string][]string{
		"Nature": {"Landscape": {"Mountains"}},
	})
	source := buildHierarchy(t, map[string]map[string][]string{
		"Nature": {"Landscape": {"Beaches"}},
	})
	targetBefore := CountNodes(target)
	sourceBefore := CountNodes(source)

	result := Merge(target, source)

	if CountNodes(target) != targetBefore || CountNodes(source) != sourceBefore {
		t.Error("merge mutated its inputs")
	}
	if CountNodes(result.Nodes) != targetBefore+1 {
		t.Errorf("merged tree has %d nodes, want %d", CountNodes(result.Nodes), targetBefore+1)
	}
}

func TestMergeNewSubtreeAdoptsParent(t *testing.T) {
	target := buildHierarchy(t, map[string]map[string][]string{
		"Nature": {"Landscape": {"Mountains"}},
	})
	source := buildHierarchy(t, map[string]map[string][]string{
		"Nature": {"Wildlife": {"Deer"}},
	})

	result := Merge(target, source)
	nature := result.Nodes[0]
	wildlife := nature.Child("Wildlife")
	if wildlife == nil {
		t.Fatal("Wildlife not appended")
	}
	if wildlife.Parent != nature.ID {
		t.Errorf("appended subtree parent = %q, want %q", wildlife.Parent, nature.ID)
	}
}

func childNames(n *Node) []string {
	names := make([]string, 0, len(n.Children))
	for _, child := range n.Children {
		names = append(names, child.Name)
	}
	return names
}

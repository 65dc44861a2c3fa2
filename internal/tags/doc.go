// Package tags models the hierarchical tag domain: the Path value type with
// its parsing and matching rules, the editable hierarchy tree, and the
// structural merge used when reconciling two independently edited
// hierarchies.
//
// A canonical tag path has two or three segments (category/tag or
// category/subcategory/tag). Requirement paths used by the search filter may
// additionally be a bare category or a category/subcategory prefix; Matches
// implements the descent rules that make a broad requirement match every tag
// underneath it.
//
// Parse is the single normalization boundary. Ingest raw strings through it
// once and pass Path values everywhere else; nothing downstream should ever
// re-split a path string.
package tags

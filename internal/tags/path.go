package tags

import (
	"fmt"
	"strings"
)

// Separator joins path segments in the canonical string form.
const Separator = "/"

// Path is a normalized hierarchical tag identifier. FullPath is the joined
// form category[/subcategory]/tag; Tag is always the last segment. Two paths
// are identical iff their FullPath strings are equal, case-sensitively.
type Path struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Tag         string `json:"tag"`
	FullPath    string `json:"fullPath"`
}

// Parse normalizes a raw tag string into a Path. Canonical tags carry two or
// three non-empty segments; a single segment is accepted so category-wide
// requirements ("Nature") can be expressed. Empty segments and deeper nesting
// are rejected.
func Parse(raw string) (Path, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Path{}, fmt.Errorf("parse tag path: empty path")
	}
	segments := strings.Split(trimmed, Separator)
	if len(segments) > 3 {
		return Path{}, fmt.Errorf("parse tag path %q: more than three segments", raw)
	}
	for _, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			return Path{}, fmt.Errorf("parse tag path %q: empty segment", raw)
		}
	}

	path := Path{Category: segments[0], Tag: segments[len(segments)-1]}
	if len(segments) == 3 {
		path.Subcategory = segments[1]
	}
	path.FullPath = strings.Join(segments, Separator)
	return path, nil
}

// MustParse is Parse for compile-time-known paths; it panics on error.
func MustParse(raw string) Path {
	path, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return path
}

// ParseAll normalizes a batch of raw tag strings, dropping entries that fail
// to parse. Use it at ingestion boundaries where partial input is expected.
func ParseAll(raw []string) []Path {
	paths := make([]Path, 0, len(raw))
	for _, entry := range raw {
		path, err := Parse(entry)
		if err != nil {
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

// String returns the canonical joined form.
func (p Path) String() string {
	return p.FullPath
}

// IsZero reports whether the path is the empty value.
func (p Path) IsZero() bool {
	return p.FullPath == ""
}

// Matches reports whether candidate satisfies the required path. Any one of
// these rules suffices:
//
//  1. Exact FullPath equality.
//  2. Hierarchical descent: candidate sits anywhere under required
//     (candidate.FullPath begins with required.FullPath + "/").
//  3. A category-only requirement matches any candidate in that category.
//  4. A category+subcategory requirement matches any candidate sharing both.
func Matches(required, candidate Path) bool {
	if required.FullPath == candidate.FullPath {
		return true
	}
	if strings.HasPrefix(candidate.FullPath, required.FullPath+Separator) {
		return true
	}
	if required.FullPath == required.Category && required.Category == candidate.Category {
		return true
	}
	if required.Subcategory != "" && required.FullPath == required.Category+Separator+required.Subcategory {
		if required.Category == candidate.Category && required.Subcategory == candidate.Subcategory {
			return true
		}
	}
	return false
}

// MatchesAny reports whether candidate satisfies at least one required path.
func MatchesAny(required []Path, candidate Path) bool {
	for _, req := range required {
		if Matches(req, candidate) {
			return true
		}
	}
	return false
}

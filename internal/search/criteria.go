package search

import (
	"strings"
	"time"

	"curator/internal/library"
	"curator/internal/tags"
)

// TagMatchMode selects how multiple required tags combine.
type TagMatchMode int

const (
	// TagMatchAll keeps a file only when every required tag matches.
	TagMatchAll TagMatchMode = iota
	// TagMatchAny keeps a file when at least one required tag matches.
	TagMatchAny
)

// SizeRange bounds file sizes in bytes, inclusive. A Max of zero means
// unbounded.
type SizeRange struct {
	Min int64
	Max int64
}

// DateRange bounds capture or modification times, inclusive.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Camera identifies the device that captured a file.
type Camera struct {
	Make  string
	Model string
}

// Criteria captures every filter dimension the engine accepts.
//
// Tags and Rating are applied through the wired MetadataResolver; DateRange
// and Camera describe EXIF-derived dimensions whose evaluation belongs to an
// external metadata collaborator, so the engine carries them without
// applying them. All dimensions still count toward the active-filter flags.
type Criteria struct {
	FileTypes map[library.FileType]struct{}
	Tags      []tags.Path
	TagMatch  TagMatchMode
	DateRange *DateRange
	SizeRange *SizeRange
	Rating    *int
	Camera    *Camera
}

// HasActiveSearch reports whether the query is non-empty after trimming.
func HasActiveSearch(query string) bool {
	return strings.TrimSpace(query) != ""
}

// HasActiveFilters reports whether any filter dimension is engaged. A full
// FileTypes set selects everything and therefore does not count.
func (c Criteria) HasActiveFilters() bool {
	if len(c.Tags) > 0 || c.DateRange != nil || c.Rating != nil || c.SizeRange != nil || c.Camera != nil {
		return true
	}
	return len(c.FileTypes) > 0 && len(c.FileTypes) < library.KnownFileTypes
}

// ActiveFilterCount counts the engaged filter dimensions, using the same
// rules as HasActiveFilters.
func (c Criteria) ActiveFilterCount() int {
	count := 0
	if len(c.Tags) > 0 {
		count++
	}
	if c.DateRange != nil {
		count++
	}
	if c.Rating != nil {
		count++
	}
	if c.SizeRange != nil {
		count++
	}
	if c.Camera != nil {
		count++
	}
	if len(c.FileTypes) > 0 && len(c.FileTypes) < library.KnownFileTypes {
		count++
	}
	return count
}

// IsFiltered reports whether the query or any criteria narrow the listing.
func (c Criteria) IsFiltered(query string) bool {
	return HasActiveSearch(query) || c.HasActiveFilters()
}

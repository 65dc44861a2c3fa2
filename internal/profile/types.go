package profile

import (
	"fmt"
	"strings"
	"time"

	"curator/internal/tags"
)

// Favorite is a bookmarked folder. Its identity for conflict purposes is
// Path, not ID: two favorites pointing at the same directory are the same
// favorite no matter who created them.
type Favorite struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	DateAdded time.Time `json:"dateAdded"`
	Order     int       `json:"order"`
}

// Settings is the live profile document. The scalar fields travel inside
// export bundles; Favorites and TagHierarchy are embedded here on disk but
// hoisted to top-level bundle fields on export.
type Settings struct {
	Theme         string `json:"theme"`
	Language      string `json:"language"`
	ViewMode      string `json:"viewMode"`
	SortBy        string `json:"sortBy"`
	SortOrder     string `json:"sortOrder"`
	ShowHidden    bool   `json:"showHidden"`
	ThumbnailSize int    `json:"thumbnailSize"`

	Favorites    []Favorite   `json:"favorites,omitempty"`
	TagHierarchy []*tags.Node `json:"tagHierarchy,omitempty"`
}

// DefaultSettings returns the profile used before anything is persisted.
func DefaultSettings() Settings {
	return Settings{
		Theme:         "system",
		Language:      "en",
		ViewMode:      "grid",
		SortBy:        "name",
		SortOrder:     "asc",
		ThumbnailSize: 160,
	}
}

func (s Settings) clone() Settings {
	out := s
	out.Favorites = cloneFavorites(s.Favorites)
	out.TagHierarchy = tags.CloneTree(s.TagHierarchy)
	return out
}

func cloneFavorites(favorites []Favorite) []Favorite {
	if favorites == nil {
		return nil
	}
	out := make([]Favorite, len(favorites))
	copy(out, favorites)
	return out
}

// applyScalarSettings overwrites every scalar field of dst from src, leaving
// the embedded collections alone. Export bundles always carry a complete
// scalar set, so the overwrite is unconditional.
func applyScalarSettings(dst *Settings, src Settings) {
	dst.Theme = src.Theme
	dst.Language = src.Language
	dst.ViewMode = src.ViewMode
	dst.SortBy = src.SortBy
	dst.SortOrder = src.SortOrder
	dst.ShowHidden = src.ShowHidden
	dst.ThumbnailSize = src.ThumbnailSize
}

// Export is a versioned configuration bundle: the flat document written by
// ExportToFile and consumed by Import. Bundles are value snapshots; import
// never mutates one in place.
type Export struct {
	Version        string       `json:"version"`
	ExportDate     time.Time    `json:"exportDate"`
	Settings       Settings     `json:"settings"`
	TagDefinitions []*tags.Node `json:"tagDefinitions,omitempty"`
	Favorites      []Favorite   `json:"favorites,omitempty"`
}

// ImportMode selects how bundle sections reconcile against live state.
type ImportMode string

const (
	// ImportReplace discards the live section and installs the bundle's.
	ImportReplace ImportMode = "replace"
	// ImportMerge unions the bundle into live state, recording conflicts.
	ImportMerge ImportMode = "merge"
)

// ParseImportMode validates a raw mode string from a flag or file.
func ParseImportMode(raw string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(raw))) {
	case ImportReplace:
		return ImportReplace, nil
	case ImportMerge:
		return ImportMerge, nil
	default:
		return "", fmt.Errorf("unknown import mode %q (use replace or merge)", raw)
	}
}

// ImportOptions selects the bundle sections to apply and the merge policy.
type ImportOptions struct {
	Mode         ImportMode
	Favorites    bool
	TagHierarchy bool
	Settings     bool
}

// ImportEverything is the options set used by full-profile restores.
func ImportEverything(mode ImportMode) ImportOptions {
	return ImportOptions{Mode: mode, Favorites: true, TagHierarchy: true, Settings: true}
}

// ConflictType names the kind of item a merge collision involved.
type ConflictType string

const (
	ConflictFavorite ConflictType = "favorite"
	ConflictTag      ConflictType = "tag"
)

// Resolution records how a conflict was settled.
type Resolution string

const (
	ResolutionKeep    Resolution = "keep"
	ResolutionMerge   Resolution = "merge"
	ResolutionReplace Resolution = "replace"
)

// Conflict is a recorded collision during import. Conflicts are result data
// for the caller to display, never errors: the operation that produced them
// completed.
type Conflict struct {
	Type       ConflictType `json:"type"`
	Item       string       `json:"item"`
	Resolution Resolution   `json:"resolution"`
}

// Imported counts what an import actually applied.
type Imported struct {
	Favorites       int  `json:"favorites"`
	TagNodes        int  `json:"tagNodes"`
	SettingsUpdated bool `json:"settingsUpdated"`
}

// ImportReport aggregates the outcome of one import operation.
type ImportReport struct {
	Success   bool       `json:"success"`
	Imported  Imported   `json:"imported"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

package profile

import (
	"encoding/json"
	"fmt"
	"os"

	"curator/internal/logging"
	"curator/internal/tags"
)

// Stable user-facing prefix; callers and tooling match on it.
const importFailurePrefix = "Failed to import configuration from file"

// Import reconciles a bundle against the live profile per the options. The
// reconciled state is persisted once at the end. Conflicts are result data,
// not errors: an import that records conflicts still succeeded.
func (r *Repository) Import(bundle Export, opts ImportOptions) (ImportReport, error) {
	if opts.Mode != ImportReplace && opts.Mode != ImportMerge {
		return ImportReport{}, fmt.Errorf("unknown import mode %q", opts.Mode)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoadedLocked(); err != nil {
		return ImportReport{}, err
	}

	report := ImportReport{}
	if opts.Favorites {
		r.importFavoritesLocked(bundle.Favorites, opts.Mode, &report)
	}
	if opts.TagHierarchy {
		r.importHierarchyLocked(bundle.TagDefinitions, opts.Mode, &report)
	}
	if opts.Settings {
		applyScalarSettings(&r.settings, bundle.Settings)
		report.Imported.SettingsUpdated = true
	}

	if err := r.saveLocked(); err != nil {
		return report, err
	}
	report.Success = true
	r.logger.Info("profile import applied",
		logging.String("mode", string(opts.Mode)),
		logging.Int("favorites", report.Imported.Favorites),
		logging.Int("tagNodes", report.Imported.TagNodes),
		logging.Int("conflicts", len(report.Conflicts)))
	return report, nil
}

func (r *Repository) importFavoritesLocked(incoming []Favorite, mode ImportMode, report *ImportReport) {
	if mode == ImportReplace {
		r.settings.Favorites = cloneFavorites(incoming)
		report.Imported.Favorites = len(incoming)
		return
	}

	existing := make(map[string]struct{}, len(r.settings.Favorites))
	for _, favorite := range r.settings.Favorites {
		existing[favorite.Path] = struct{}{}
	}
	for _, favorite := range incoming {
		if _, ok := existing[favorite.Path]; ok {
			// Path collision: the current favorite wins, the import drops.
			report.Conflicts = append(report.Conflicts, Conflict{
				Type:       ConflictFavorite,
				Item:       favorite.Name,
				Resolution: ResolutionKeep,
			})
			continue
		}
		existing[favorite.Path] = struct{}{}
		r.settings.Favorites = append(r.settings.Favorites, favorite)
		report.Imported.Favorites++
	}
}

func (r *Repository) importHierarchyLocked(incoming []*tags.Node, mode ImportMode, report *ImportReport) {
	if mode == ImportReplace {
		r.settings.TagHierarchy = tags.CloneTree(incoming)
		report.Imported.TagNodes = tags.CountNodes(r.settings.TagHierarchy)
		return
	}

	merged := tags.Merge(r.settings.TagHierarchy, incoming)
	r.settings.TagHierarchy = merged.Nodes
	report.Imported.TagNodes += merged.Created
	for _, name := range merged.Collisions {
		report.Conflicts = append(report.Conflicts, Conflict{
			Type:       ConflictTag,
			Item:       name,
			Resolution: ResolutionMerge,
		})
	}
}

// ImportFromFile reads a bundle file and applies it with Import.
func (r *Repository) ImportFromFile(path string, opts ImportOptions) (ImportReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportReport{}, fmt.Errorf("%s: %w", importFailurePrefix, err)
	}
	var bundle Export
	if err := json.Unmarshal(data, &bundle); err != nil {
		return ImportReport{}, fmt.Errorf("%s: %w", importFailurePrefix, err)
	}
	return r.Import(bundle, opts)
}

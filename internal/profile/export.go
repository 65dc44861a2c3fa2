package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"curator/internal/logging"
	"curator/internal/tags"
)

// SchemaVersion identifies the export bundle layout.
const SchemaVersion = "1.0.0"

// Stable user-facing prefix; callers and tooling match on it.
const exportFailurePrefix = "Failed to export configuration to file"

// Export builds a configuration bundle from the live profile. Favorites and
// tag definitions are hoisted out of the embedded settings so the bundle
// stays flat; the live state is never touched.
func (r *Repository) Export() (Export, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoadedLocked(); err != nil {
		return Export{}, err
	}

	snapshot := r.settings.clone()
	favorites := snapshot.Favorites
	definitions := snapshot.TagHierarchy
	snapshot.Favorites = nil
	snapshot.TagHierarchy = nil

	return Export{
		Version:        SchemaVersion,
		ExportDate:     time.Now().UTC(),
		Settings:       snapshot,
		TagDefinitions: definitions,
		Favorites:      favorites,
	}, nil
}

// ExportToFile writes the export bundle to path as indented JSON.
func (r *Repository) ExportToFile(path string) error {
	bundle, err := r.Export()
	if err != nil {
		return fmt.Errorf("%s: %w", exportFailurePrefix, err)
	}
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", exportFailurePrefix, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%s: %w", exportFailurePrefix, err)
	}
	r.logger.Info("profile exported",
		logging.String("path", path),
		logging.Int("favorites", len(bundle.Favorites)),
		logging.Int("tagNodes", tags.CountNodes(bundle.TagDefinitions)))
	return nil
}

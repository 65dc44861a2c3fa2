package profile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"curator/internal/config"
	"curator/internal/logging"
	"curator/internal/tags"
)

const settingsKey = "settings"

// Repository owns the live profile. The document is read on first use,
// mutated in memory, and written back whole after every change. Writes are
// serialized with an in-process mutex plus an exclusive file lock so a
// second curator process cannot interleave its own whole-file overwrite.
type Repository struct {
	backend Backend
	dir     string
	lock    *flock.Flock
	logger  *slog.Logger

	mu       sync.Mutex
	loaded   bool
	settings Settings
}

// NewRepository builds a repository over the config's profile directory.
func NewRepository(cfg *config.Config, logger *slog.Logger) *Repository {
	dir := cfg.ProfileDir()
	return NewRepositoryWithBackend(NewDirBackend(dir), filepath.Join(dir, ".lock"), logger)
}

// NewRepositoryWithBackend is the injection point for tests and alternate
// storage layouts.
func NewRepositoryWithBackend(backend Backend, lockPath string, logger *slog.Logger) *Repository {
	return &Repository{
		backend: backend,
		dir:     filepath.Dir(lockPath),
		lock:    flock.New(lockPath),
		logger:  logging.NewComponentLogger(logger, "profile"),
	}
}

// Load reads the profile immediately rather than on first use.
func (r *Repository) Load() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ensureLoadedLocked()
}

func (r *Repository) ensureLoadedLocked() error {
	if r.loaded {
		return nil
	}
	settings := DefaultSettings()
	found, err := r.backend.ReadJSON(settingsKey, &settings)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	if !found {
		r.logger.Debug("no stored profile, starting from defaults", logging.String("dir", r.dir))
	}
	r.settings = settings
	r.loaded = true
	return nil
}

func (r *Repository) saveLocked() error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create profile dir: %w", err)
	}
	if err := r.lock.Lock(); err != nil {
		return fmt.Errorf("acquire profile lock: %w", err)
	}
	defer func() {
		if err := r.lock.Unlock(); err != nil {
			r.logger.Warn("failed to release profile lock", logging.Error(err))
		}
	}()
	return r.backend.WriteJSON(settingsKey, r.settings)
}

// Snapshot returns a deep copy of the live profile.
func (r *Repository) Snapshot() (Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoadedLocked(); err != nil {
		return Settings{}, err
	}
	return r.settings.clone(), nil
}

// Favorites lists favorite folders ordered by their Order field.
func (r *Repository) Favorites() ([]Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoadedLocked(); err != nil {
		return nil, err
	}
	favorites := cloneFavorites(r.settings.Favorites)
	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].Order < favorites[j].Order
	})
	return favorites, nil
}

// AddFavorite records a new favorite folder and persists the profile. The
// path is the favorite's identity; adding an already-present path fails.
func (r *Repository) AddFavorite(name, path string) (Favorite, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Favorite{}, errors.New("favorite path is required")
	}
	if name = strings.TrimSpace(name); name == "" {
		name = filepath.Base(path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoadedLocked(); err != nil {
		return Favorite{}, err
	}
	for _, existing := range r.settings.Favorites {
		if existing.Path == path {
			return Favorite{}, fmt.Errorf("favorite already exists for %s", path)
		}
	}

	favorite := Favorite{
		ID:        uuid.NewString(),
		Name:      name,
		Path:      path,
		DateAdded: time.Now().UTC(),
		Order:     nextOrder(r.settings.Favorites),
	}
	r.settings.Favorites = append(r.settings.Favorites, favorite)
	if err := r.saveLocked(); err != nil {
		return Favorite{}, err
	}
	return favorite, nil
}

func nextOrder(favorites []Favorite) int {
	next := 0
	for _, favorite := range favorites {
		if favorite.Order >= next {
			next = favorite.Order + 1
		}
	}
	return next
}

// RemoveFavorite deletes a favorite by ID or path and reports whether one
// was removed.
func (r *Repository) RemoveFavorite(ref string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoadedLocked(); err != nil {
		return false, err
	}
	kept := r.settings.Favorites[:0]
	removed := false
	for _, favorite := range r.settings.Favorites {
		if favorite.ID == ref || favorite.Path == ref {
			removed = true
			continue
		}
		kept = append(kept, favorite)
	}
	if !removed {
		return false, nil
	}
	r.settings.Favorites = kept
	if err := r.saveLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateSettings applies fn to the scalar settings and persists the result.
// Favorites and the tag hierarchy have their own methods; fn receives a copy
// with both stripped so it cannot reach them.
func (r *Repository) UpdateSettings(fn func(*Settings)) error {
	if fn == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoadedLocked(); err != nil {
		return err
	}
	scalars := r.settings
	scalars.Favorites = nil
	scalars.TagHierarchy = nil
	fn(&scalars)
	applyScalarSettings(&r.settings, scalars)
	return r.saveLocked()
}

// TagHierarchy returns a deep copy of the editable tag tree.
func (r *Repository) TagHierarchy() ([]*tags.Node, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoadedLocked(); err != nil {
		return nil, err
	}
	return tags.CloneTree(r.settings.TagHierarchy), nil
}

// ReplaceTagHierarchy installs a new tag tree wholesale and persists it.
func (r *Repository) ReplaceTagHierarchy(nodes []*tags.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoadedLocked(); err != nil {
		return err
	}
	r.settings.TagHierarchy = tags.CloneTree(nodes)
	return r.saveLocked()
}

package testsupport

import (
	"testing"

	"curator/internal/config"
	"curator/internal/profile"
)

// NewProfileRepository builds a repository rooted in the test config's
// profile directory. Opening a second repository over the same config reads
// whatever the first one persisted.
func NewProfileRepository(t testing.TB, cfg *config.Config) *profile.Repository {
	t.Helper()
	return profile.NewRepository(cfg, nil)
}

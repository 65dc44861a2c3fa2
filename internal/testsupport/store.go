package testsupport

import (
	"context"
	"testing"

	"curator/internal/config"
	"curator/internal/library"
	"curator/internal/tags"
)

// MustOpenLibrary opens a library.Store for tests and registers cleanup.
func MustOpenLibrary(t testing.TB, cfg *config.Config) *library.Store {
	t.Helper()

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// TagFile assigns the given raw tag paths to a file using the provided store.
func TagFile(t testing.TB, store *library.Store, path string, raw ...string) {
	t.Helper()

	assigned := make([]tags.Path, 0, len(raw))
	for _, r := range raw {
		parsed, err := tags.Parse(r)
		if err != nil {
			t.Fatalf("parse tag %q: %v", r, err)
		}
		assigned = append(assigned, parsed)
	}
	if _, err := store.AddTags(context.Background(), path, assigned); err != nil {
		t.Fatalf("store.AddTags: %v", err)
	}
}

package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"curator/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckDatabase_OK(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	result := CheckDatabase(context.Background(), cfg)
	if !result.Passed {
		t.Fatalf("expected pass for fresh database, got: %s", result.Detail)
	}
}

func TestCheckDatabase_ReportsOpenFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)
	dbPath := store.Path()
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := os.Remove(dbPath); err != nil {
		t.Fatalf("remove db: %v", err)
	}
	if err := os.Mkdir(dbPath, 0o755); err != nil {
		t.Fatalf("mkdir over db path: %v", err)
	}

	result := CheckDatabase(context.Background(), cfg)
	if result.Passed {
		t.Fatal("expected failure when database path is a directory")
	}
}

func TestCheckProfileStore_MissingProfileIsHealthy(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	result := CheckProfileStore(cfg)
	if !result.Passed {
		t.Fatalf("expected pass for absent profile, got: %s", result.Detail)
	}
}

func TestCheckProfileStore_StoredProfile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	repo := testsupport.NewProfileRepository(t, cfg)
	if _, err := repo.AddFavorite("Trips", filepath.Join(cfg.Paths.LibraryDir, "trips")); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}

	result := CheckProfileStore(cfg)
	if !result.Passed {
		t.Fatalf("expected pass for stored profile, got: %s", result.Detail)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil)
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_HealthyConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	results := RunAll(context.Background(), cfg)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.Passed {
			t.Errorf("check %q failed: %s", r.Name, r.Detail)
		}
	}
	if !AllPassed(results) {
		t.Fatal("AllPassed should report true for a healthy config")
	}
}

func TestRunAll_SurfacesMissingDirectory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.RemoveAll(cfg.Paths.LibraryDir); err != nil {
		t.Fatalf("remove library dir: %v", err)
	}

	results := RunAll(context.Background(), cfg)
	if AllPassed(results) {
		t.Fatal("expected at least one failing check")
	}
	found := false
	for _, r := range results {
		if r.Name == "Library directory" {
			found = true
			if r.Passed {
				t.Errorf("library directory check should fail, got: %s", r.Detail)
			}
		}
	}
	if !found {
		t.Fatal("expected a library directory check in results")
	}
}

func TestCheckDatabase_UsesLibraryStorePath(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	result := CheckDatabase(context.Background(), cfg)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if want := store.Path(); !strings.Contains(result.Detail, want) {
		t.Fatalf("detail %q should reference database path %q", result.Detail, want)
	}
}

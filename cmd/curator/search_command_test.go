package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"curator/internal/search"
	"curator/internal/testsupport"
)

func TestSearchCommandRanksAndFilters(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.SeedLibrary(t, env.cfg.Paths.LibraryDir,
		"vacation.jpg",
		"mountain_sunset.png",
		"family_trip.mp4",
		"Vacation Photos/",
		"Receipts/",
	)

	out, _, err := runCLI(t, []string{"search", "vacation", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	var results search.Results
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if results.Query != "vacation" {
		t.Fatalf("Query = %q, want %q", results.Query, "vacation")
	}
	if len(results.Files) != 1 || results.Files[0].Name != "vacation.jpg" {
		t.Fatalf("unexpected files: %+v", results.Files)
	}
	if len(results.Folders) != 1 || results.Folders[0].Name != "Vacation Photos" {
		t.Fatalf("unexpected folders: %+v", results.Folders)
	}
	if results.TotalCount != 2 {
		t.Fatalf("TotalCount = %d, want 2", results.TotalCount)
	}
}

func TestSearchCommandTypeFilter(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.SeedLibrary(t, env.cfg.Paths.LibraryDir, "vacation.jpg", "family_trip.mp4")

	out, _, err := runCLI(t, []string{"search", "--type", "video", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}

	var results search.Results
	if err := json.Unmarshal([]byte(out), &results); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(results.Files) != 1 || results.Files[0].Name != "family_trip.mp4" {
		t.Fatalf("unexpected files: %+v", results.Files)
	}
}

func TestSearchCommandMetadataCriteria(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.SeedLibrary(t, env.cfg.Paths.LibraryDir, "peak.jpg", "rome.jpg")
	peakPath := filepath.Join(env.cfg.Paths.LibraryDir, "peak.jpg")

	store := testsupport.MustOpenLibrary(t, env.cfg)
	testsupport.TagFile(t, store, peakPath, "Nature/Landscape/Mountains")
	if err := store.WriteRating(context.Background(), peakPath, 5); err != nil {
		t.Fatalf("WriteRating: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out, _, err := runCLI(t, []string{"search", "--tag", "Nature", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("search --tag: %v", err)
	}
	var byTag search.Results
	if err := json.Unmarshal([]byte(out), &byTag); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(byTag.Files) != 1 || byTag.Files[0].Name != "peak.jpg" {
		t.Fatalf("tag criteria matched %+v", byTag.Files)
	}

	out, _, err = runCLI(t, []string{"search", "--min-rating", "4", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("search --min-rating: %v", err)
	}
	var byRating search.Results
	if err := json.Unmarshal([]byte(out), &byRating); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(byRating.Files) != 1 || byRating.Files[0].Name != "peak.jpg" {
		t.Fatalf("rating criteria matched %+v", byRating.Files)
	}

	out, _, err = runCLI(t, []string{"search", "--tag", "Travel", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("search --tag Travel: %v", err)
	}
	var none search.Results
	if err := json.Unmarshal([]byte(out), &none); err != nil {
		t.Fatalf("decode results: %v", err)
	}
	if len(none.Files) != 0 {
		t.Fatalf("expected no files for unmatched tag, got %+v", none.Files)
	}
}

func TestSearchCommandRendersTable(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.SeedLibrary(t, env.cfg.Paths.LibraryDir, "vacation.jpg")

	out, _, err := runCLI(t, []string{"search", "vacation"}, env.configPath)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	requireContains(t, out, "vacation.jpg")
	requireContains(t, out, "matches in")
}

func TestSearchCommandRejectsBadFlags(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"search", "--type", "audio"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown file type")
	}
	if _, _, err := runCLI(t, []string{"search", "--tag", "a/b/c/d"}, env.configPath); err == nil {
		t.Fatal("expected error for oversized tag path")
	}
	if _, _, err := runCLI(t, []string{"search", "--min-rating", "9"}, env.configPath); err == nil {
		t.Fatal("expected error for out-of-range rating")
	}
	if _, _, err := runCLI(t, []string{"search", "--min-size", "10", "--max-size", "5"}, env.configPath); err == nil {
		t.Fatal("expected error for inverted size bounds")
	}
}

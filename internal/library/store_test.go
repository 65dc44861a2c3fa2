package library_test

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"curator/internal/library"
	"curator/internal/tags"
	"curator/internal/testsupport"
)

func TestOpenInitializesSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	if !strings.HasPrefix(store.Path(), cfg.Paths.DataDir) {
		t.Fatalf("database path %q not under data dir %q", store.Path(), cfg.Paths.DataDir)
	}

	health, err := store.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth failed: %v", err)
	}
	if !health.DatabaseExists || !health.DatabaseReadable {
		t.Fatalf("unexpected health: %+v", health)
	}
	if len(health.MissingTables) != 0 {
		t.Fatalf("missing tables after open: %v", health.MissingTables)
	}
	if !health.IntegrityCheck {
		t.Fatal("integrity check reported failure on fresh database")
	}
}

func TestTagRoundTrip(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	path := "/library/vacation.jpg"
	assigned := []tags.Path{
		tags.MustParse("Travel"),
		tags.MustParse("Nature/Landscape"),
	}

	added, err := store.AddTags(ctx, path, assigned)
	if err != nil {
		t.Fatalf("AddTags failed: %v", err)
	}
	if added != 2 {
		t.Fatalf("expected 2 tags added, got %d", added)
	}

	got, err := store.ReadTags(ctx, path)
	if err != nil {
		t.Fatalf("ReadTags failed: %v", err)
	}
	if len(got) != 2 || got[0].String() != "Nature/Landscape" || got[1].String() != "Travel" {
		t.Fatalf("unexpected tags: %+v", got)
	}
}

func TestAddTagsIgnoresDuplicates(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	path := "/library/clip.mp4"
	testsupport.TagFile(t, store, path, "Events/Birthday")

	added, err := store.AddTags(ctx, path, []tags.Path{tags.MustParse("Events/Birthday")})
	if err != nil {
		t.Fatalf("AddTags failed: %v", err)
	}
	if added != 0 {
		t.Fatalf("duplicate assignment reported %d added rows", added)
	}

	got, err := store.ReadTags(ctx, path)
	if err != nil {
		t.Fatalf("ReadTags failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected a single assignment, got %+v", got)
	}
}

func TestRemoveTags(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	path := "/library/sunset.png"
	testsupport.TagFile(t, store, path, "Nature/Landscape/Mountains", "Travel")

	removed, err := store.RemoveTags(ctx, path, []tags.Path{tags.MustParse("Travel")})
	if err != nil {
		t.Fatalf("RemoveTags failed: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 tag removed, got %d", removed)
	}

	got, err := store.ReadTags(ctx, path)
	if err != nil {
		t.Fatalf("ReadTags failed: %v", err)
	}
	if len(got) != 1 || got[0].String() != "Nature/Landscape/Mountains" {
		t.Fatalf("unexpected remaining tags: %+v", got)
	}
}

func TestWriteTagsReplacesAssignments(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	path := "/library/family.mp4"
	testsupport.TagFile(t, store, path, "Events/Birthday", "People")

	if err := store.WriteTags(ctx, path, []tags.Path{tags.MustParse("Events/Wedding")}); err != nil {
		t.Fatalf("WriteTags failed: %v", err)
	}
	got, err := store.ReadTags(ctx, path)
	if err != nil {
		t.Fatalf("ReadTags failed: %v", err)
	}
	if len(got) != 1 || got[0].String() != "Events/Wedding" {
		t.Fatalf("unexpected tags after replace: %+v", got)
	}

	if err := store.WriteTags(ctx, path, nil); err != nil {
		t.Fatalf("WriteTags clear failed: %v", err)
	}
	got, err = store.ReadTags(ctx, path)
	if err != nil {
		t.Fatalf("ReadTags failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no tags after clearing, got %+v", got)
	}
}

func TestDistinctTagsAcrossFiles(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	testsupport.TagFile(t, store, "/library/a.jpg", "Travel", "Nature/Landscape")
	testsupport.TagFile(t, store, "/library/b.jpg", "Travel", "Events/Birthday")

	distinct, err := store.DistinctTags(context.Background())
	if err != nil {
		t.Fatalf("DistinctTags failed: %v", err)
	}
	want := []string{"Events/Birthday", "Nature/Landscape", "Travel"}
	if len(distinct) != len(want) {
		t.Fatalf("expected %d distinct tags, got %+v", len(want), distinct)
	}
	for i, w := range want {
		if distinct[i].String() != w {
			t.Fatalf("distinct[%d] = %q, want %q", i, distinct[i].String(), w)
		}
	}
}

func TestRatingLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	path := "/library/best.jpg"

	if _, ok, err := store.ReadRating(ctx, path); err != nil || ok {
		t.Fatalf("expected no rating, got ok=%v err=%v", ok, err)
	}

	if err := store.WriteRating(ctx, path, 4); err != nil {
		t.Fatalf("WriteRating failed: %v", err)
	}
	rating, ok, err := store.ReadRating(ctx, path)
	if err != nil || !ok || rating != 4 {
		t.Fatalf("unexpected rating: %d ok=%v err=%v", rating, ok, err)
	}

	if err := store.WriteRating(ctx, path, 5); err != nil {
		t.Fatalf("WriteRating update failed: %v", err)
	}
	rating, ok, err = store.ReadRating(ctx, path)
	if err != nil || !ok || rating != 5 {
		t.Fatalf("unexpected rating after update: %d ok=%v err=%v", rating, ok, err)
	}

	cleared, err := store.ClearRating(ctx, path)
	if err != nil || !cleared {
		t.Fatalf("ClearRating failed: cleared=%v err=%v", cleared, err)
	}
	cleared, err = store.ClearRating(ctx, path)
	if err != nil {
		t.Fatalf("ClearRating second pass failed: %v", err)
	}
	if cleared {
		t.Fatal("clearing an absent rating reported a removed row")
	}
}

func TestRemovePathDropsAllMetadata(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	path := "/library/old.mp4"
	testsupport.TagFile(t, store, path, "Events/Birthday")
	if err := store.WriteRating(ctx, path, 3); err != nil {
		t.Fatalf("WriteRating failed: %v", err)
	}

	removed, err := store.RemovePath(ctx, path)
	if err != nil || !removed {
		t.Fatalf("RemovePath failed: removed=%v err=%v", removed, err)
	}

	tagsAfter, err := store.ReadTags(ctx, path)
	if err != nil {
		t.Fatalf("ReadTags failed: %v", err)
	}
	if len(tagsAfter) != 0 {
		t.Fatalf("tags survived removal: %+v", tagsAfter)
	}
	if _, ok, err := store.ReadRating(ctx, path); err != nil || ok {
		t.Fatalf("rating survived removal: ok=%v err=%v", ok, err)
	}

	removed, err = store.RemovePath(ctx, path)
	if err != nil {
		t.Fatalf("RemovePath second pass failed: %v", err)
	}
	if removed {
		t.Fatal("removing an absent path reported affected rows")
	}
}

func TestClearAndStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenLibrary(t, cfg)

	ctx := context.Background()
	testsupport.TagFile(t, store, "/library/a.jpg", "Travel", "Nature/Landscape")
	testsupport.TagFile(t, store, "/library/b.jpg", "Travel")
	if err := store.WriteRating(ctx, "/library/a.jpg", 5); err != nil {
		t.Fatalf("WriteRating failed: %v", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TaggedFiles != 2 || stats.RatedFiles != 1 || stats.DistinctTags != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	removed, err := store.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 4 {
		t.Fatalf("expected 4 rows cleared, got %d", removed)
	}

	stats, err = store.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats after clear failed: %v", err)
	}
	if stats.TaggedFiles != 0 || stats.RatedFiles != 0 || stats.DistinctTags != 0 {
		t.Fatalf("expected zeroed stats, got %+v", stats)
	}
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	store, err := library.Open(cfg)
	if err != nil {
		t.Fatalf("library.Open: %v", err)
	}
	dbPath := store.Path()
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open raw database: %v", err)
	}
	if _, err := db.Exec(`UPDATE schema_version SET version = 99`); err != nil {
		t.Fatalf("bump schema version: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close raw database: %v", err)
	}

	if _, err := library.Open(cfg); !errors.Is(err, library.ErrSchemaMismatch) {
		t.Fatalf("expected schema mismatch, got %v", err)
	}
}

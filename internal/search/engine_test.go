package search_test

import (
	"context"
	"errors"
	"testing"

	"curator/internal/library"
	"curator/internal/search"
	"curator/internal/tags"
)

type stubResolver struct {
	tags    map[string][]tags.Path
	ratings map[string]int
	err     error
}

func (s *stubResolver) ReadTags(_ context.Context, path string) ([]tags.Path, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.tags[path], nil
}

func (s *stubResolver) ReadRating(_ context.Context, path string) (int, bool, error) {
	if s.err != nil {
		return 0, false, s.err
	}
	rating, ok := s.ratings[path]
	return rating, ok, nil
}

type panicResolver struct{}

func (panicResolver) ReadTags(context.Context, string) ([]tags.Path, error) {
	panic("resolver exploded")
}

func (panicResolver) ReadRating(context.Context, string) (int, bool, error) {
	panic("resolver exploded")
}

func sampleFiles() []library.MediaFile {
	return []library.MediaFile{
		{Name: "vacation.jpg", Path: "/media/vacation.jpg", Type: library.FileTypeImage, Size: 2048},
		{Name: "mountain_sunset.png", Path: "/media/mountain_sunset.png", Type: library.FileTypeImage, Size: 4096},
		{Name: "family_trip.mp4", Path: "/media/family_trip.mp4", Type: library.FileTypeVideo, Size: 1 << 20},
	}
}

func fileNames(files []library.MediaFile) []string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	return names
}

func TestSearchRanksMatchingFiles(t *testing.T) {
	engine := search.NewEngine(nil, nil)

	results := engine.Search(context.Background(), sampleFiles(), nil, "vacation", search.Criteria{})
	if got := fileNames(results.Files); len(got) != 1 || got[0] != "vacation.jpg" {
		t.Fatalf("unexpected files: %v", got)
	}
	if results.TotalCount != 1 {
		t.Fatalf("TotalCount = %d, want 1", results.TotalCount)
	}
	if results.Query != "vacation" {
		t.Fatalf("Query = %q, want %q", results.Query, "vacation")
	}
}

func TestSearchCombinesQueryAndTypeFilter(t *testing.T) {
	engine := search.NewEngine(nil, nil)
	criteria := search.Criteria{
		FileTypes: map[library.FileType]struct{}{library.FileTypeImage: {}},
	}

	results := engine.Search(context.Background(), sampleFiles(), nil, "mountain", criteria)
	if got := fileNames(results.Files); len(got) != 1 || got[0] != "mountain_sunset.png" {
		t.Fatalf("unexpected files: %v", got)
	}
}

func TestSearchEmptyQueryKeepsEverything(t *testing.T) {
	engine := search.NewEngine(nil, nil)
	files := sampleFiles()
	folders := []library.Folder{{Name: "Trips", Path: "/media/Trips"}}

	results := engine.Search(context.Background(), files, folders, "   ", search.Criteria{})
	if len(results.Files) != len(files) {
		t.Fatalf("got %d files, want %d", len(results.Files), len(files))
	}
	if len(results.Folders) != 1 {
		t.Fatalf("got %d folders, want 1", len(results.Folders))
	}
	if results.TotalCount != len(files)+1 {
		t.Fatalf("TotalCount = %d, want %d", results.TotalCount, len(files)+1)
	}
}

func TestSearchFiltersFoldersWithoutRanking(t *testing.T) {
	engine := search.NewEngine(nil, nil)
	folders := []library.Folder{
		{Name: "Vacation Photos", Path: "/media/Vacation Photos"},
		{Name: "Receipts", Path: "/media/Receipts"},
	}

	results := engine.Search(context.Background(), nil, folders, "vacation", search.Criteria{})
	if len(results.Folders) != 1 || results.Folders[0].Name != "Vacation Photos" {
		t.Fatalf("unexpected folders: %+v", results.Folders)
	}
}

func TestSearchKeepsInputOrderOnTiedScores(t *testing.T) {
	engine := search.NewEngine(nil, nil)
	files := []library.MediaFile{
		{Name: "xx", Path: "/a/xx", Type: library.FileTypeImage},
		{Name: "xy", Path: "/a/xy", Type: library.FileTypeImage},
	}

	results := engine.Search(context.Background(), files, nil, "x", search.Criteria{})
	if got := fileNames(results.Files); len(got) != 2 || got[0] != "xx" || got[1] != "xy" {
		t.Fatalf("tied scores reordered: %v", got)
	}
}

func TestSearchSizeRangeIsInclusive(t *testing.T) {
	engine := search.NewEngine(nil, nil)
	files := []library.MediaFile{
		{Name: "small.jpg", Path: "/m/small.jpg", Type: library.FileTypeImage, Size: 100},
		{Name: "medium.jpg", Path: "/m/medium.jpg", Type: library.FileTypeImage, Size: 5000},
		{Name: "large.jpg", Path: "/m/large.jpg", Type: library.FileTypeImage, Size: 20000},
	}

	tests := []struct {
		name  string
		bound search.SizeRange
		want  []string
	}{
		{name: "window", bound: search.SizeRange{Min: 1000, Max: 10000}, want: []string{"medium.jpg"}},
		{name: "zero max is unbounded", bound: search.SizeRange{Min: 1000}, want: []string{"medium.jpg", "large.jpg"}},
		{name: "bounds included", bound: search.SizeRange{Min: 100, Max: 100}, want: []string{"small.jpg"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			criteria := search.Criteria{SizeRange: &tc.bound}
			results := engine.Search(context.Background(), files, nil, "", criteria)
			got := fileNames(results.Files)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestSearchTagCriteria(t *testing.T) {
	files := []library.MediaFile{
		{Name: "peak.jpg", Path: "/m/peak.jpg", Type: library.FileTypeImage},
		{Name: "rome.jpg", Path: "/m/rome.jpg", Type: library.FileTypeImage},
	}
	resolver := &stubResolver{tags: map[string][]tags.Path{
		"/m/peak.jpg": {tags.MustParse("Nature/Landscape/Mountains")},
		"/m/rome.jpg": {tags.MustParse("Travel")},
	}}
	engine := search.NewEngine(resolver, nil)

	tests := []struct {
		name     string
		required []tags.Path
		mode     search.TagMatchMode
		want     []string
	}{
		{
			name:     "ancestor matches descendants",
			required: []tags.Path{tags.MustParse("Nature")},
			want:     []string{"peak.jpg"},
		},
		{
			name:     "all mode needs every tag",
			required: []tags.Path{tags.MustParse("Nature"), tags.MustParse("Travel")},
			want:     nil,
		},
		{
			name:     "any mode needs one tag",
			required: []tags.Path{tags.MustParse("Nature"), tags.MustParse("Travel")},
			mode:     search.TagMatchAny,
			want:     []string{"peak.jpg", "rome.jpg"},
		},
		{
			name:     "sibling does not match",
			required: []tags.Path{tags.MustParse("Nature/Wildlife")},
			want:     nil,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			criteria := search.Criteria{Tags: tc.required, TagMatch: tc.mode}
			results := engine.Search(context.Background(), files, nil, "", criteria)
			got := fileNames(results.Files)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestSearchRatingIsMinimum(t *testing.T) {
	files := []library.MediaFile{
		{Name: "best.jpg", Path: "/m/best.jpg", Type: library.FileTypeImage},
		{Name: "okay.jpg", Path: "/m/okay.jpg", Type: library.FileTypeImage},
		{Name: "unrated.jpg", Path: "/m/unrated.jpg", Type: library.FileTypeImage},
	}
	resolver := &stubResolver{ratings: map[string]int{
		"/m/best.jpg": 5,
		"/m/okay.jpg": 3,
	}}
	engine := search.NewEngine(resolver, nil)

	minimum := 4
	results := engine.Search(context.Background(), files, nil, "", search.Criteria{Rating: &minimum})
	if got := fileNames(results.Files); len(got) != 1 || got[0] != "best.jpg" {
		t.Fatalf("unexpected files: %v", got)
	}
}

func TestSearchWithoutResolverIgnoresMetadataCriteria(t *testing.T) {
	engine := search.NewEngine(nil, nil)
	minimum := 2
	criteria := search.Criteria{
		Tags:   []tags.Path{tags.MustParse("Nature")},
		Rating: &minimum,
	}

	results := engine.Search(context.Background(), sampleFiles(), nil, "", criteria)
	if len(results.Files) != 3 {
		t.Fatalf("got %d files, want all 3", len(results.Files))
	}
}

func TestSearchResolverFailureReturnsEmptyResults(t *testing.T) {
	resolver := &stubResolver{err: errors.New("database locked")}
	engine := search.NewEngine(resolver, nil)
	criteria := search.Criteria{Tags: []tags.Path{tags.MustParse("Nature")}}

	results := engine.Search(context.Background(), sampleFiles(), nil, "vacation", criteria)
	if len(results.Files) != 0 || len(results.Folders) != 0 || results.TotalCount != 0 {
		t.Fatalf("expected empty results, got %+v", results)
	}
	if results.Query != "vacation" {
		t.Fatalf("Query = %q, want %q", results.Query, "vacation")
	}
}

func TestSearchRecoversFromPanicingResolver(t *testing.T) {
	engine := search.NewEngine(panicResolver{}, nil)
	criteria := search.Criteria{Tags: []tags.Path{tags.MustParse("Nature")}}

	results := engine.Search(context.Background(), sampleFiles(), nil, "trip", criteria)
	if len(results.Files) != 0 || results.TotalCount != 0 {
		t.Fatalf("expected empty results after panic, got %+v", results)
	}
	if results.Query != "trip" {
		t.Fatalf("Query = %q, want %q", results.Query, "trip")
	}
}

func TestSearchDoesNotMutateInputs(t *testing.T) {
	engine := search.NewEngine(nil, nil)
	files := []library.MediaFile{
		{Name: "zz_vacation.jpg", Path: "/m/zz.jpg", Type: library.FileTypeImage},
		{Name: "vacation.jpg", Path: "/m/vacation.jpg", Type: library.FileTypeImage},
	}

	engine.Search(context.Background(), files, nil, "vacation", search.Criteria{})
	if files[0].Name != "zz_vacation.jpg" || files[1].Name != "vacation.jpg" {
		t.Fatalf("input slice mutated: %v", fileNames(files))
	}
}

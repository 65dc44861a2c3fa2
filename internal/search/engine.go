package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"curator/internal/library"
	"curator/internal/logging"
	"curator/internal/tags"
)

const (
	// fileScoreThreshold is the minimum fuzzy score for a file to rank.
	fileScoreThreshold = 0.1
	// folderScoreThreshold is the minimum fuzzy score for a folder to show.
	// Folders are filtered, never ranked.
	folderScoreThreshold = 0.3
)

// MetadataResolver supplies persisted per-file metadata during filtering.
// internal/library's Store satisfies it.
type MetadataResolver interface {
	ReadTags(ctx context.Context, path string) ([]tags.Path, error)
	ReadRating(ctx context.Context, path string) (int, bool, error)
}

// Results carries the outcome of one search pass. Query echoes the input so
// callers can discard responses that no longer match the live query.
type Results struct {
	Files      []library.MediaFile `json:"files"`
	Folders    []library.Folder    `json:"folders"`
	TotalCount int                 `json:"totalCount"`
	SearchTime time.Duration       `json:"searchTime"`
	Query      string              `json:"query"`
}

// Engine applies fuzzy queries and filter criteria over directory listings.
type Engine struct {
	resolver MetadataResolver
	logger   *slog.Logger
}

// NewEngine builds an engine. The resolver may be nil, in which case tag and
// rating criteria pass through without filtering.
func NewEngine(resolver MetadataResolver, logger *slog.Logger) *Engine {
	return &Engine{
		resolver: resolver,
		logger:   logging.NewComponentLogger(logger, "search"),
	}
}

// Search filters and ranks the provided listings. Inputs are never mutated.
// Any failure mid-pass degrades to an empty Results with a log line rather
// than an error or panic reaching the caller.
func (e *Engine) Search(ctx context.Context, files []library.MediaFile, folders []library.Folder, query string, criteria Criteria) (results Results) {
	started := time.Now()
	defer func() {
		if cause := recover(); cause != nil {
			e.logger.Error("search panic recovered",
				logging.Any("cause", cause),
				logging.String("query", query))
			results = Results{Query: query, SearchTime: time.Since(started)}
		}
	}()

	matchedFiles, matchedFolders, err := e.apply(ctx, files, folders, query, criteria)
	if err != nil {
		e.logger.Error("search degraded to empty results",
			logging.Error(err),
			logging.String("query", query))
		return Results{Query: query, SearchTime: time.Since(started)}
	}

	return Results{
		Files:      matchedFiles,
		Folders:    matchedFolders,
		TotalCount: len(matchedFiles) + len(matchedFolders),
		SearchTime: time.Since(started),
		Query:      query,
	}
}

func (e *Engine) apply(ctx context.Context, files []library.MediaFile, folders []library.Folder, query string, criteria Criteria) ([]library.MediaFile, []library.Folder, error) {
	matchedFiles := append([]library.MediaFile(nil), files...)
	matchedFolders := append([]library.Folder(nil), folders...)

	if trimmed := strings.TrimSpace(query); trimmed != "" {
		normalized := strings.ToLower(trimmed)
		matchedFiles = rankFiles(matchedFiles, normalized)
		matchedFolders = filterFolders(matchedFolders, normalized)
	}

	if len(criteria.FileTypes) > 0 {
		kept := matchedFiles[:0]
		for _, file := range matchedFiles {
			if _, ok := criteria.FileTypes[file.Type]; ok {
				kept = append(kept, file)
			}
		}
		matchedFiles = kept
	}

	if criteria.SizeRange != nil {
		minSize := criteria.SizeRange.Min
		maxSize := criteria.SizeRange.Max
		if maxSize <= 0 {
			maxSize = math.MaxInt64
		}
		kept := matchedFiles[:0]
		for _, file := range matchedFiles {
			if file.Size >= minSize && file.Size <= maxSize {
				kept = append(kept, file)
			}
		}
		matchedFiles = kept
	}

	if len(criteria.Tags) > 0 && e.resolver != nil {
		kept := matchedFiles[:0]
		for _, file := range matchedFiles {
			assigned, err := e.resolver.ReadTags(ctx, file.Path)
			if err != nil {
				return nil, nil, fmt.Errorf("read tags for %s: %w", file.Path, err)
			}
			if matchesTagCriteria(criteria, assigned) {
				kept = append(kept, file)
			}
		}
		matchedFiles = kept
	}

	if criteria.Rating != nil && e.resolver != nil {
		kept := matchedFiles[:0]
		for _, file := range matchedFiles {
			rating, ok, err := e.resolver.ReadRating(ctx, file.Path)
			if err != nil {
				return nil, nil, fmt.Errorf("read rating for %s: %w", file.Path, err)
			}
			if ok && rating >= *criteria.Rating {
				kept = append(kept, file)
			}
		}
		matchedFiles = kept
	}

	// DateRange and Camera stay unapplied: EXIF evaluation belongs to an
	// external collaborator this engine does not own.

	return matchedFiles, matchedFolders, nil
}

func rankFiles(files []library.MediaFile, query string) []library.MediaFile {
	type ranked struct {
		file  library.MediaFile
		score float64
	}
	kept := make([]ranked, 0, len(files))
	for _, file := range files {
		if score := Score(query, file.Name); score > fileScoreThreshold {
			kept = append(kept, ranked{file: file, score: score})
		}
	}
	// Ties keep their original relative order.
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].score > kept[j].score })

	out := make([]library.MediaFile, len(kept))
	for i, entry := range kept {
		out[i] = entry.file
	}
	return out
}

func filterFolders(folders []library.Folder, query string) []library.Folder {
	kept := folders[:0]
	for _, folder := range folders {
		if Score(query, folder.Name) > folderScoreThreshold {
			kept = append(kept, folder)
		}
	}
	return kept
}

func matchesTagCriteria(criteria Criteria, assigned []tags.Path) bool {
	if criteria.TagMatch == TagMatchAny {
		for _, required := range criteria.Tags {
			for _, candidate := range assigned {
				if tags.Matches(required, candidate) {
					return true
				}
			}
		}
		return false
	}

	for _, required := range criteria.Tags {
		found := false
		for _, candidate := range assigned {
			if tags.Matches(required, candidate) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"curator/internal/config"
	"curator/internal/library"
	"curator/internal/search"
	"curator/internal/tags"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		dirFlag   string
		recursive bool
		typeNames []string
		tagSpecs  []string
		anyTag    bool
		minRating int
		minSize   int64
		maxSize   int64
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search and filter the media library",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}

			criteria, err := buildSearchCriteria(typeNames, tagSpecs, anyTag, minRating, minSize, maxSize)
			if err != nil {
				return err
			}

			dir := strings.TrimSpace(dirFlag)
			if dir == "" {
				dir = cfg.Paths.LibraryDir
			} else {
				expanded, err := config.ExpandPath(dir)
				if err != nil {
					return fmt.Errorf("resolve search directory: %w", err)
				}
				dir = expanded
			}

			files, folders, err := library.List(dir, library.ListOptions{
				ImageExtensions: cfg.Library.ImageExtensions,
				VideoExtensions: cfg.Library.VideoExtensions,
				Recursive:       recursive,
			})
			if err != nil {
				return err
			}

			return ctx.withLibrary(func(store *library.Store) error {
				logger, err := ctx.commandLogger(cfg)
				if err != nil {
					return fmt.Errorf("setup logging: %w", err)
				}

				engine := search.NewEngine(store, logger)
				results := engine.Search(cmd.Context(), files, folders, query, criteria)

				if ctx.JSONMode() {
					return writeJSON(cmd, results)
				}
				renderSearchResults(cmd.OutOrStdout(), results)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&dirFlag, "dir", "d", "", "Directory to search (default: library root)")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	cmd.Flags().StringSliceVarP(&typeNames, "type", "t", nil, "Limit results to a file type: image, video, folder (repeatable)")
	cmd.Flags().StringSliceVar(&tagSpecs, "tag", nil, "Require a tag path such as Nature/Landscape/Mountains (repeatable)")
	cmd.Flags().BoolVar(&anyTag, "any-tag", false, "Match files carrying any required tag instead of all of them")
	cmd.Flags().IntVar(&minRating, "min-rating", 0, "Minimum star rating 1-5 (0 disables the filter)")
	cmd.Flags().Int64Var(&minSize, "min-size", 0, "Minimum file size in bytes")
	cmd.Flags().Int64Var(&maxSize, "max-size", 0, "Maximum file size in bytes (0 for no limit)")

	return cmd
}

func buildSearchCriteria(typeNames, tagSpecs []string, anyTag bool, minRating int, minSize, maxSize int64) (search.Criteria, error) {
	var criteria search.Criteria

	if len(typeNames) > 0 {
		criteria.FileTypes = make(map[library.FileType]struct{}, len(typeNames))
		for _, raw := range typeNames {
			fileType, ok := library.ParseFileType(strings.ToLower(strings.TrimSpace(raw)))
			if !ok {
				return search.Criteria{}, fmt.Errorf("unknown file type %q (use image, video, or folder)", raw)
			}
			criteria.FileTypes[fileType] = struct{}{}
		}
	}

	for _, spec := range tagSpecs {
		parsed, err := tags.Parse(spec)
		if err != nil {
			return search.Criteria{}, err
		}
		criteria.Tags = append(criteria.Tags, parsed)
	}
	if anyTag {
		criteria.TagMatch = search.TagMatchAny
	}

	if minRating != 0 {
		if minRating < 1 || minRating > 5 {
			return search.Criteria{}, fmt.Errorf("rating %d out of range (1-5)", minRating)
		}
		rating := minRating
		criteria.Rating = &rating
	}

	if minSize < 0 || maxSize < 0 {
		return search.Criteria{}, errors.New("size bounds must not be negative")
	}
	if maxSize > 0 && minSize > maxSize {
		return search.Criteria{}, fmt.Errorf("minimum size %d exceeds maximum size %d", minSize, maxSize)
	}
	if minSize > 0 || maxSize > 0 {
		criteria.SizeRange = &search.SizeRange{Min: minSize, Max: maxSize}
	}

	return criteria, nil
}

func renderSearchResults(out io.Writer, results search.Results) {
	if results.TotalCount == 0 {
		fmt.Fprintln(out, "No matches")
		return
	}

	if len(results.Files) > 0 {
		rows := make([][]string, 0, len(results.Files))
		for _, file := range results.Files {
			rows = append(rows, []string{file.Name, string(file.Type), formatBytes(file.Size), file.Path})
		}
		table := renderTable(
			[]string{"Name", "Type", "Size", "Path"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
		)
		fmt.Fprintln(out, table)
	}

	if len(results.Folders) > 0 {
		rows := make([][]string, 0, len(results.Folders))
		for _, folder := range results.Folders {
			rows = append(rows, []string{folder.Name, folder.Path})
		}
		table := renderTable(
			[]string{"Folder", "Path"},
			rows,
			[]columnAlignment{alignLeft, alignLeft},
		)
		fmt.Fprintln(out, table)
	}

	fmt.Fprintf(out, "%d matches in %s\n", results.TotalCount, results.SearchTime)
}

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"curator/internal/config"
	"curator/internal/library"
	"curator/internal/search"
	"curator/internal/tags"
)

// tagFilterThreshold is the cutoff for the optional browse filter. It matches
// the folder cutoff used by the search engine so filtering feels consistent.
const tagFilterThreshold = 0.3

func newTagsCommand(ctx *commandContext) *cobra.Command {
	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "Browse and inspect the tag vocabulary",
	}

	tagsCmd.AddCommand(newTagsBrowseCommand(ctx))
	tagsCmd.AddCommand(newTagsShowCommand(ctx))

	return tagsCmd
}

func newTagsBrowseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "browse [filter]",
		Short: "Show every assigned tag grouped by category and subcategory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) > 0 {
				filter = args[0]
			}
			return ctx.withLibrary(func(store *library.Store) error {
				paths, err := store.DistinctTags(cmd.Context())
				if err != nil {
					return err
				}
				grouped := tags.Group(filterTagPaths(paths, filter))
				if ctx.JSONMode() {
					return writeJSON(cmd, grouped)
				}
				renderGroupedTags(cmd.OutOrStdout(), grouped)
				return nil
			})
		},
	}
}

func newTagsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file>",
		Short: "Show the tags and rating recorded for a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			return ctx.withLibrary(func(store *library.Store) error {
				assigned, err := store.ReadTags(cmd.Context(), path)
				if err != nil {
					return err
				}
				rating, rated, err := store.ReadRating(cmd.Context(), path)
				if err != nil {
					return err
				}

				if ctx.JSONMode() {
					report := struct {
						Path   string      `json:"path"`
						Tags   []tags.Path `json:"tags"`
						Rating *int        `json:"rating,omitempty"`
					}{Path: path, Tags: assigned}
					if rated {
						report.Rating = &rating
					}
					return writeJSON(cmd, report)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Path: %s\n", path)
				if len(assigned) == 0 {
					fmt.Fprintln(out, "Tags: none")
				} else {
					names := make([]string, 0, len(assigned))
					for _, tag := range assigned {
						names = append(names, tag.FullPath)
					}
					fmt.Fprintf(out, "Tags: %s\n", strings.Join(names, ", "))
				}
				if rated {
					fmt.Fprintf(out, "Rating: %d/5\n", rating)
				} else {
					fmt.Fprintln(out, "Rating: unrated")
				}
				return nil
			})
		},
	}
}

func newTagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tag <file> <tag>...",
		Short: "Assign hierarchical tags to a file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			parsed, err := parseAssignableTags(args[1:])
			if err != nil {
				return err
			}
			return ctx.withLibrary(func(store *library.Store) error {
				added, err := store.AddTags(cmd.Context(), path, parsed)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %d tag(s) to %s\n", added, path)
				return nil
			})
		},
	}
}

func newUntagCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "untag <file> <tag>...",
		Short: "Remove tags from a file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			parsed, err := parseAssignableTags(args[1:])
			if err != nil {
				return err
			}
			return ctx.withLibrary(func(store *library.Store) error {
				removed, err := store.RemoveTags(cmd.Context(), path, parsed)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d tag(s) from %s\n", removed, path)
				return nil
			})
		},
	}
}

func newRateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rate <file> <rating>",
		Short: "Set a star rating from 1 to 5 (0 clears it)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			rating, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid rating %q: expected a number from 0 to 5", args[1])
			}
			if rating < 0 || rating > 5 {
				return fmt.Errorf("rating %d out of range (0-5)", rating)
			}
			return ctx.withLibrary(func(store *library.Store) error {
				out := cmd.OutOrStdout()
				if rating == 0 {
					cleared, err := store.ClearRating(cmd.Context(), path)
					if err != nil {
						return err
					}
					if cleared {
						fmt.Fprintf(out, "Cleared rating for %s\n", path)
					} else {
						fmt.Fprintf(out, "No rating recorded for %s\n", path)
					}
					return nil
				}
				if err := store.WriteRating(cmd.Context(), path, rating); err != nil {
					return err
				}
				fmt.Fprintf(out, "Rated %s %d/5\n", path, rating)
				return nil
			})
		},
	}
}

// parseAssignableTags parses raw tag arguments and rejects bare categories,
// which are valid search requirements but not assignable tags.
func parseAssignableTags(raw []string) ([]tags.Path, error) {
	parsed := make([]tags.Path, 0, len(raw))
	for _, entry := range raw {
		tag, err := tags.Parse(entry)
		if err != nil {
			return nil, err
		}
		if tag.FullPath == tag.Category {
			return nil, fmt.Errorf("tag %q needs a category and a tag name (e.g. Nature/Sunset)", entry)
		}
		parsed = append(parsed, tag)
	}
	return parsed, nil
}

func filterTagPaths(paths []tags.Path, filter string) []tags.Path {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return paths
	}
	kept := make([]tags.Path, 0, len(paths))
	for _, path := range paths {
		if search.Score(filter, path.Tag) > tagFilterThreshold ||
			search.Score(filter, path.Category) > tagFilterThreshold ||
			(path.Subcategory != "" && search.Score(filter, path.Subcategory) > tagFilterThreshold) {
			kept = append(kept, path)
		}
	}
	return kept
}

func renderGroupedTags(out io.Writer, grouped tags.Grouped) {
	if len(grouped) == 0 {
		fmt.Fprintln(out, "No tags assigned yet")
		return
	}
	colorize := shouldColorize(out)
	for _, category := range grouped.Categories() {
		for _, line := range renderSectionHeader(displayTitle(category), colorize) {
			fmt.Fprintln(out, line)
		}
		for _, bucket := range grouped.Buckets(category) {
			label := displayTitle(bucket)
			if bucket == tags.RootBucket {
				label = "(no subcategory)"
			}
			fmt.Fprintf(out, "%s%s: %s\n", statusIndent, label, strings.Join(grouped[category][bucket], ", "))
		}
		fmt.Fprintln(out)
	}
}

package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"curator/internal/config"
	"curator/internal/library"
)

func newLibraryCommand(ctx *commandContext) *cobra.Command {
	libraryCmd := &cobra.Command{
		Use:   "library",
		Short: "Inspect and maintain the media library",
	}

	libraryCmd.AddCommand(newLibraryListCommand(ctx))
	libraryCmd.AddCommand(newLibraryStatsCommand(ctx))
	libraryCmd.AddCommand(newLibraryHealthCommand(ctx))
	libraryCmd.AddCommand(newLibraryForgetCommand(ctx))
	libraryCmd.AddCommand(newLibraryClearCommand(ctx))

	return libraryCmd
}

func newLibraryListCommand(ctx *commandContext) *cobra.Command {
	var recursive bool

	cmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List media files and folders in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			dir := cfg.Paths.LibraryDir
			if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
				expanded, err := config.ExpandPath(args[0])
				if err != nil {
					return err
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

			if ctx.JSONMode() {
				return writeJSON(cmd, struct {
					Files   []library.MediaFile `json:"files"`
					Folders []library.Folder    `json:"folders"`
				}{Files: files, Folders: folders})
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 && len(folders) == 0 {
				fmt.Fprintln(out, "Directory is empty")
				return nil
			}
			if len(folders) > 0 {
				rows := make([][]string, 0, len(folders))
				for _, folder := range folders {
					rows = append(rows, []string{folder.Name, folder.Path})
				}
				table := renderTable([]string{"Folder", "Path"}, rows, []columnAlignment{alignLeft, alignLeft})
				fmt.Fprintln(out, table)
			}
			if len(files) > 0 {
				rows := make([][]string, 0, len(files))
				for _, file := range files {
					rows = append(rows, []string{
						file.Name,
						string(file.Type),
						formatBytes(file.Size),
						file.ModTime.Local().Format(time.DateTime),
					})
				}
				table := renderTable(
					[]string{"Name", "Type", "Size", "Modified"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
				)
				fmt.Fprintln(out, table)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Descend into subdirectories")
	return cmd
}

func newLibraryStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show metadata counts for the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(store *library.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, struct {
						TaggedFiles  int `json:"taggedFiles"`
						RatedFiles   int `json:"ratedFiles"`
						DistinctTags int `json:"distinctTags"`
					}{stats.TaggedFiles, stats.RatedFiles, stats.DistinctTags})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database path: %s\n", store.Path())
				fmt.Fprintf(out, "Tagged files: %d\n", stats.TaggedFiles)
				fmt.Fprintf(out, "Rated files: %d\n", stats.RatedFiles)
				fmt.Fprintf(out, "Distinct tags: %d\n", stats.DistinctTags)
				return nil
			})
		},
	}
}

type databaseHealthReport struct {
	DBPath           string   `json:"dbPath"`
	DatabaseExists   bool     `json:"databaseExists"`
	DatabaseReadable bool     `json:"databaseReadable"`
	TablesPresent    []string `json:"tablesPresent,omitempty"`
	MissingTables    []string `json:"missingTables,omitempty"`
	IntegrityCheck   bool     `json:"integrityCheck"`
	Error            string   `json:"error,omitempty"`
}

func newLibraryHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check library database health (schema, integrity, tables)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(store *library.Store) error {
				health, healthErr := store.CheckHealth(cmd.Context())
				if healthErr != nil && health.Error == "" {
					health.Error = healthErr.Error()
				}
				if ctx.JSONMode() {
					return writeJSON(cmd, databaseHealthReport{
						DBPath:           health.DBPath,
						DatabaseExists:   health.DatabaseExists,
						DatabaseReadable: health.DatabaseReadable,
						TablesPresent:    health.TablesPresent,
						MissingTables:    health.MissingTables,
						IntegrityCheck:   health.IntegrityCheck,
						Error:            health.Error,
					})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database path: %s\n", health.DBPath)
				fmt.Fprintf(out, "Database exists: %s\n", yesNo(health.DatabaseExists))
				fmt.Fprintf(out, "Readable: %s\n", yesNo(health.DatabaseReadable))
				if len(health.TablesPresent) > 0 {
					tables := append([]string(nil), health.TablesPresent...)
					sort.Strings(tables)
					fmt.Fprintf(out, "Tables: %s\n", strings.Join(tables, ", "))
				}
				if len(health.MissingTables) > 0 {
					missing := append([]string(nil), health.MissingTables...)
					sort.Strings(missing)
					fmt.Fprintf(out, "Missing tables: %s\n", strings.Join(missing, ", "))
				} else {
					fmt.Fprintln(out, "Missing tables: none")
				}
				fmt.Fprintf(out, "Integrity check: %s\n", yesNo(health.IntegrityCheck))
				if health.Error != "" {
					fmt.Fprintf(out, "Error: %s\n", health.Error)
				}
				return nil
			})
		},
	}
}

func newLibraryForgetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "forget <path>",
		Short: "Drop all recorded metadata for a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			return ctx.withLibrary(func(store *library.Store) error {
				removed, err := store.RemovePath(cmd.Context(), path)
				if err != nil {
					return err
				}
				if removed {
					fmt.Fprintf(cmd.OutOrStdout(), "Forgot metadata for %s\n", path)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "No metadata recorded for %s\n", path)
				}
				return nil
			})
		},
	}
}

func newLibraryClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all tags and ratings from the library database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withLibrary(func(store *library.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %d metadata rows\n", removed)
				return nil
			})
		},
	}
}

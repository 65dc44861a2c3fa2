package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/config"
	"curator/internal/profile"
	"curator/internal/tags"
)

func newProfileCommand(ctx *commandContext) *cobra.Command {
	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Inspect and move user configuration",
	}

	profileCmd.AddCommand(newProfileShowCommand(ctx))
	profileCmd.AddCommand(newProfileExportCommand(ctx))
	profileCmd.AddCommand(newProfileImportCommand(ctx))
	profileCmd.AddCommand(newProfileValidateCommand(ctx))

	return profileCmd
}

func newProfileShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active profile settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := ctx.openProfile()
			if err != nil {
				return err
			}
			settings, err := repo.Snapshot()
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, settings)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Theme: %s\n", settings.Theme)
			fmt.Fprintf(out, "Language: %s\n", settings.Language)
			fmt.Fprintf(out, "View mode: %s\n", settings.ViewMode)
			fmt.Fprintf(out, "Sort: %s (%s)\n", settings.SortBy, settings.SortOrder)
			fmt.Fprintf(out, "Show hidden: %s\n", yesNo(settings.ShowHidden))
			fmt.Fprintf(out, "Thumbnail size: %d\n", settings.ThumbnailSize)
			fmt.Fprintf(out, "Favorites: %d\n", len(settings.Favorites))
			fmt.Fprintf(out, "Tag nodes: %d\n", tags.CountNodes(settings.TagHierarchy))
			return nil
		},
	}
}

func newProfileExportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "export <file>",
		Short: "Export settings, favorites, and tag definitions to a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			repo, err := ctx.openProfile()
			if err != nil {
				return err
			}
			if err := repo.ExportToFile(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported configuration to %s\n", target)
			return nil
		},
	}
}

func newProfileImportCommand(ctx *commandContext) *cobra.Command {
	var (
		modeFlag     string
		skipFavs     bool
		skipTags     bool
		skipSettings bool
	)

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a configuration bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			mode, err := profile.ParseImportMode(modeFlag)
			if err != nil {
				return err
			}
			opts := profile.ImportEverything(mode)
			opts.Favorites = opts.Favorites && !skipFavs
			opts.TagHierarchy = opts.TagHierarchy && !skipTags
			opts.Settings = opts.Settings && !skipSettings

			repo, err := ctx.openProfile()
			if err != nil {
				return err
			}
			report, err := repo.ImportFromFile(source, opts)
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, report)
			}
			renderImportReport(cmd, report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", string(profile.ImportMerge), "Import mode: merge or replace")
	cmd.Flags().BoolVar(&skipFavs, "skip-favorites", false, "Leave current favorites untouched")
	cmd.Flags().BoolVar(&skipTags, "skip-tags", false, "Leave the current tag hierarchy untouched")
	cmd.Flags().BoolVar(&skipSettings, "skip-settings", false, "Leave current display settings untouched")
	return cmd
}

func renderImportReport(cmd *cobra.Command, report profile.ImportReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Import succeeded: %s\n", yesNo(report.Success))
	fmt.Fprintf(out, "Favorites imported: %d\n", report.Imported.Favorites)
	fmt.Fprintf(out, "Tag nodes imported: %d\n", report.Imported.TagNodes)
	fmt.Fprintf(out, "Settings updated: %s\n", yesNo(report.Imported.SettingsUpdated))
	if len(report.Conflicts) == 0 {
		fmt.Fprintln(out, "Conflicts: none")
		return
	}
	rows := make([][]string, 0, len(report.Conflicts))
	for _, conflict := range report.Conflicts {
		rows = append(rows, []string{string(conflict.Type), conflict.Item, string(conflict.Resolution)})
	}
	table := renderTable(
		[]string{"Conflict", "Item", "Resolution"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	)
	fmt.Fprintln(out, table)
}

func newProfileValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a configuration bundle without importing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			result := profile.ValidateImportFile(target)
			if ctx.JSONMode() {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Valid: %s\n", yesNo(result.Valid))
			if result.Version != "" {
				fmt.Fprintf(out, "Version: %s\n", result.Version)
			}
			if result.Error != "" {
				fmt.Fprintf(out, "Error: %s\n", result.Error)
			}
			return nil
		},
	}
}

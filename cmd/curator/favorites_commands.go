package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"curator/internal/config"
)

func newFavoritesCommand(ctx *commandContext) *cobra.Command {
	favoritesCmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite folders",
	}

	favoritesCmd.AddCommand(newFavoritesListCommand(ctx))
	favoritesCmd.AddCommand(newFavoritesAddCommand(ctx))
	favoritesCmd.AddCommand(newFavoritesRemoveCommand(ctx))

	return favoritesCmd
}

func newFavoritesListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List favorite folders in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := ctx.openProfile()
			if err != nil {
				return err
			}
			favorites, err := repo.Favorites()
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, favorites)
			}
			if len(favorites) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet")
				return nil
			}
			rows := make([][]string, 0, len(favorites))
			for _, favorite := range favorites {
				rows = append(rows, []string{
					favorite.Name,
					favorite.Path,
					favorite.DateAdded.Local().Format(time.DateOnly),
					favorite.ID,
				})
			}
			table := renderTable(
				[]string{"Name", "Path", "Added", "ID"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			)
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
}

func newFavoritesAddCommand(ctx *commandContext) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add <path>",
		Short: "Add a folder to favorites",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return err
			}
			repo, err := ctx.openProfile()
			if err != nil {
				return err
			}
			favorite, err := repo.AddFavorite(strings.TrimSpace(name), path)
			if err != nil {
				return err
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, favorite)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added favorite %q (%s)\n", favorite.Name, favorite.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name (default: folder name)")
	return cmd
}

func newFavoritesRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id-or-path>",
		Short: "Remove a favorite by ID or path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := ctx.openProfile()
			if err != nil {
				return err
			}
			ref := strings.TrimSpace(args[0])
			removed, err := repo.RemoveFavorite(ref)
			if err != nil {
				return err
			}
			if !removed {
				if expanded, expandErr := config.ExpandPath(ref); expandErr == nil && expanded != ref {
					removed, err = repo.RemoveFavorite(expanded)
					if err != nil {
						return err
					}
				}
			}
			if !removed {
				return fmt.Errorf("no favorite matches %q", ref)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed favorite %s\n", ref)
			return nil
		},
	}
}

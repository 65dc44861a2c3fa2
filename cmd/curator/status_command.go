package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Run readiness checks against directories and stores",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), cfg)

			if ctx.JSONMode() {
				return writeJSON(cmd, struct {
					Healthy bool               `json:"healthy"`
					Checks  []preflight.Result `json:"checks"`
				}{Healthy: preflight.AllPassed(results), Checks: results})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Curator status", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, result := range results {
				kind := statusError
				if result.Passed {
					kind = statusOK
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			fmt.Fprintln(out)
			if preflight.AllPassed(results) {
				fmt.Fprintln(out, "All checks passed")
			} else {
				fmt.Fprintln(out, "One or more checks failed")
			}
			return nil
		},
	}
}

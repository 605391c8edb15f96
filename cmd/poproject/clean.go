package main

import (
	"github.com/spf13/cobra"

	"github.com/loopcontext/poproject"
)

func newCleanCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clean",
		Short:   "Remove a project's tags and project catalogs",
		Example: "  poproject clean -l de -p jdoe_20220101 --dry-run",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.bind(cmd); err != nil {
				return err
			}
			if err := c.require(localeKey, projectKey); err != nil {
				return err
			}
			w, err := c.workflow()
			if err != nil {
				return err
			}
			report, err := w.Clean(cmd.Context(), poproject.CleanOptions{
				Locale:  c.v.GetString(localeKey),
				Project: c.v.GetString(projectKey),
				DryRun:  c.v.GetBool(dryRunKey),
			})
			if err != nil {
				return err
			}
			return c.print(report)
		},
	}
	addTargetFlags(cmd.Flags(), "clean", "Project name, e.g. jdoe_20220101")
	cmd.Flags().Bool(dryRunKey, false, "Report what would be cleaned without writing or removing")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/loopcontext/poproject"
)

const appKey = "app"

func newMergeCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [flags] FILE",
		Short: "Merge a translated project catalog back into an app catalog",
		Long: `Merge the translations of a project catalog into the main catalog of one app.
Only entries tagged with the project on both sides are merged. Use --app locale
to address the general locale directory.`,
		Example: "  poproject merge -a app1 -l de -p jdoe_20220101 translated.po",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.bind(cmd); err != nil {
				return err
			}
			if err := c.require(appKey, localeKey, projectKey); err != nil {
				return err
			}
			w, err := c.workflow()
			if err != nil {
				return err
			}
			report, err := w.Merge(cmd.Context(), poproject.MergeOptions{
				App:     c.v.GetString(appKey),
				Locale:  c.v.GetString(localeKey),
				Project: c.v.GetString(projectKey),
				File:    args[0],
				DryRun:  c.v.GetBool(dryRunKey),
			})
			if err != nil {
				return err
			}
			return c.print(report)
		},
	}
	cmd.Flags().StringP(appKey, "a", "", "App to merge into, or \"locale\" for the general locale directory")
	addTargetFlags(cmd.Flags(), "merge", "Project name, e.g. jdoe_20220101")
	cmd.Flags().Bool(dryRunKey, false, "Report what would be merged without writing")
	return cmd
}

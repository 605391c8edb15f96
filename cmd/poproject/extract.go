package main

import (
	"github.com/spf13/cobra"

	"github.com/loopcontext/poproject"
)

const forceKey = "force"

func newExtractCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "extract",
		Short:   "Write a project's entries into standalone catalogs",
		Long:    "Write the entries tagged with a project into po_project_<name>.po beside each catalog. Catalogs without such entries produce no file.",
		Example: "  poproject extract -l de -p jdoe_20220101",
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
			report, err := w.Extract(cmd.Context(), poproject.ExtractOptions{
				Locale:  c.v.GetString(localeKey),
				Project: c.v.GetString(projectKey),
				Force:   c.v.GetBool(forceKey),
			})
			if err != nil {
				return err
			}
			return c.print(report)
		},
	}
	addTargetFlags(cmd.Flags(), "extract", "Project name, e.g. jdoe_20220101")
	cmd.Flags().Bool(forceKey, false, "Overwrite existing project catalogs")
	return cmd
}

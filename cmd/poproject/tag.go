package main

import (
	"github.com/spf13/cobra"

	"github.com/loopcontext/poproject"
)

const fileNameKey = "file-name"

func newTagCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Tag untranslated and fuzzy entries with a project",
		Long: `Tag untranslated and fuzzy entries of every catalog of a locale with a
project. Entries that already carry a comment are left alone, so running tag
twice tags nothing the second time.

With --file-name only the app named by the first path segment is processed,
and only entries referenced from a file containing the given name.`,
		Example: "  poproject tag -l de -p jdoe_20220101\n  poproject tag -l de -f app1/templates/index.html --dry-run",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.bind(cmd); err != nil {
				return err
			}
			if err := c.require(localeKey); err != nil {
				return err
			}
			w, err := c.workflow()
			if err != nil {
				return err
			}
			report, err := w.Tag(cmd.Context(), poproject.TagOptions{
				Locale:   c.v.GetString(localeKey),
				Project:  c.v.GetString(projectKey),
				FileName: c.v.GetString(fileNameKey),
				DryRun:   c.v.GetBool(dryRunKey),
			})
			if err != nil {
				return err
			}
			return c.print(report)
		},
	}
	addTargetFlags(cmd.Flags(), "tag", "Project name (default auto_<unix time>)")
	cmd.Flags().StringP(fileNameKey, "f", "", "Only tag entries referenced from this source file, e.g. app1/templates/index.html")
	cmd.Flags().Bool(dryRunKey, false, "Report what would be tagged without writing")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/loopcontext/poproject"
)

const (
	allKey           = "all"
	allowObsoleteKey = "allow-obsolete"
)

func newMakeMessagesCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "makemessages",
		Short: "Regenerate catalogs with the extract command, keeping project tags",
		Long: `Run the extract_command from the settings file for the given locales and
restore the extracted comments, including project tags, that regeneration
dropped. Obsolete entries are removed unless --allow-obsolete is set.`,
		Example: "  poproject makemessages -l de -l es\n  poproject makemessages --all --allow-obsolete",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.bind(cmd); err != nil {
				return err
			}
			w, err := c.workflow()
			if err != nil {
				return err
			}
			report, err := w.Refresh(cmd.Context(), poproject.RefreshOptions{
				Locales:       c.v.GetStringSlice(localeKey),
				All:           c.v.GetBool(allKey),
				AllowObsolete: c.v.GetBool(allowObsoleteKey),
			})
			if err != nil {
				return err
			}
			return c.print(report)
		},
	}
	cmd.Flags().StringSliceP(localeKey, "l", nil, "Locales to regenerate (repeatable, default all supported)")
	cmd.Flags().BoolP(allKey, "a", false, "Regenerate every supported locale")
	cmd.Flags().Bool(allowObsoleteKey, false, "Keep obsolete entries")
	return cmd
}

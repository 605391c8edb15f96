package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/loopcontext/poproject"
)

func (c *cli) print(r *poproject.Report) error {
	switch format := c.v.GetString(outputKey); format {
	case "yaml":
		enc := yaml.NewEncoder(c.out)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		return printText(c.out, r)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func printText(w io.Writer, r *poproject.Report) error {
	title := r.Operation
	if r.Locale != "" {
		title += " " + r.Locale
	}
	if r.Project != "" {
		title += " project=" + r.Project
	}
	if r.DryRun {
		title += " (dry run)"
	}
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	for _, c := range r.Catalogs {
		status := "unchanged"
		switch {
		case c.Skipped:
			status = "skipped"
		case c.Saved:
			status = "saved"
		}
		fmt.Fprintf(w, "  %s: %d entries, %s\n", c.Path, c.Count, status)
		if r.DryRun {
			for i, id := range c.Entries {
				fmt.Fprintf(w, "    %d> %s\n", i, id)
			}
		}
		if c.ProjectFile != "" && r.Operation == "clean" {
			verb := "would remove"
			if c.Removed {
				verb = "removed"
			}
			fmt.Fprintf(w, "  %s %s\n", verb, c.ProjectFile)
		}
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	if len(r.AffectedFiles) > 0 {
		fmt.Fprintln(w, "affected files:")
		for _, f := range r.AffectedFiles {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
	if len(r.Unmatched) > 0 {
		fmt.Fprintf(w, "%d entries had no tagged counterpart\n", len(r.Unmatched))
	}
	_, err := fmt.Fprintf(w, "total: %d\n", r.Total())
	return err
}

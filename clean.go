package poproject

import (
	"context"
)

func (w *DefaultWorkflow) Clean(ctx context.Context, opts CleanOptions) (*Report, error) {
	if err := w.cfg.checkLocale(opts.Locale); err != nil {
		return nil, err
	}
	project := Project(opts.Project)
	if err := project.Validate(); err != nil {
		return nil, err
	}
	logger := w.opLogger("clean", opts.Locale, project)

	report := &Report{Operation: "clean", Locale: opts.Locale, Project: string(project), DryRun: opts.DryRun}
	for _, t := range w.targets(opts.Locale) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		path := w.catalogPath(t)
		out := w.projectPath(t, project)
		cr := CatalogReport{Path: path}
		found := false

		if w.store.Exists(path) {
			found = true
			f, err := w.load(path)
			if err != nil {
				return report, err
			}
			for _, e := range f.Entries {
				if project.Detach(e) {
					cr.Entries = append(cr.Entries, e.MsgID)
				}
			}
			cr.Count = len(cr.Entries)
			if cr.Count > 0 && !opts.DryRun {
				if err := w.save(path, f); err != nil {
					return report, err
				}
				cr.Saved = true
			}
			logger.Info().Str("catalog", path).Int("cleaned", cr.Count).Msg("processed")
		}

		if w.store.Exists(out) {
			found = true
			cr.ProjectFile = out
			if !opts.DryRun {
				if err := w.remove(out); err != nil {
					return report, err
				}
				cr.Removed = true
			}
			logger.Info().Str("file", out).Bool("dry_run", opts.DryRun).Msg("removed project catalog")
		}

		if found {
			report.Catalogs = append(report.Catalogs, cr)
		}
	}
	return report, nil
}

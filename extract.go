package poproject

import (
	"context"

	"github.com/loopcontext/poproject/internal/po"
)

// projectCatalog builds a catalog holding copies of src's entries tagged with
// p, under src's header fields.
func projectCatalog(src *po.File, p Project) *po.File {
	out := po.NewFile()
	out.CopyHeader(src)
	for _, e := range src.Entries {
		if p.In(e) {
			out.Append(e.Clone())
		}
	}
	return out
}

func (w *DefaultWorkflow) Extract(ctx context.Context, opts ExtractOptions) (*Report, error) {
	if err := w.cfg.checkLocale(opts.Locale); err != nil {
		return nil, err
	}
	project := Project(opts.Project)
	if err := project.Validate(); err != nil {
		return nil, err
	}
	logger := w.opLogger("extract", opts.Locale, project)

	report := &Report{Operation: "extract", Locale: opts.Locale, Project: string(project)}
	for _, t := range w.targets(opts.Locale) {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		path := w.catalogPath(t)
		if !w.store.Exists(path) {
			continue
		}
		out := w.projectPath(t, project)
		cr := CatalogReport{Path: path, ProjectFile: out}

		if w.store.Exists(out) && !opts.Force {
			msg := "project catalog exists: " + out + ", use force to overwrite"
			logger.Warn().Str("catalog", path).Msg(msg)
			report.warn(msg)
			cr.Skipped = true
			report.Catalogs = append(report.Catalogs, cr)
			continue
		}

		f, err := w.load(path)
		if err != nil {
			return report, err
		}
		pf := projectCatalog(f, project)
		for _, e := range pf.Entries {
			cr.Entries = append(cr.Entries, e.MsgID)
		}
		cr.Count = pf.Len()

		if cr.Count > 0 {
			if err := w.save(out, pf); err != nil {
				return report, err
			}
			cr.Saved = true
			logger.Info().Str("catalog", path).Int("entries", cr.Count).Str("file", out).Msg("wrote project catalog")
		} else {
			logger.Debug().Str("catalog", path).Msg("no project entries")
		}
		report.Catalogs = append(report.Catalogs, cr)
	}
	return report, nil
}

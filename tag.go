package poproject

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/loopcontext/poproject/internal/po"
)

// Taggable reports whether e may join a project: it needs a translation
// (fuzzy or missing), is still current and carries no comment yet. The last
// condition keeps a second Tag run from touching entries the first one
// tagged.
func Taggable(e *po.Entry) bool {
	return (e.Fuzzy() || !e.Translated()) && !e.Obsolete && e.Comment == ""
}

func occursIn(e *po.Entry, fileName string) bool {
	for _, o := range e.Occurrences {
		if strings.Contains(o.File, fileName) {
			return true
		}
	}
	return false
}

// appOfFileName is the first path segment of a source file name.
func appOfFileName(fileName string) string {
	return strings.SplitN(filepath.ToSlash(fileName), "/", 2)[0]
}

func (w *DefaultWorkflow) Tag(ctx context.Context, opts TagOptions) (*Report, error) {
	if err := w.cfg.checkLocale(opts.Locale); err != nil {
		return nil, err
	}
	project := Project(opts.Project)
	if project == "" {
		project = DefaultProjectName(w.cfg.NowFn())
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	logger := w.opLogger("tag", opts.Locale, project)

	targets := w.targets(opts.Locale)
	if opts.FileName != "" {
		name := appOfFileName(opts.FileName)
		app, ok := w.cfg.app(name)
		if !ok {
			return nil, newError(KindValidation, "", fmt.Sprintf(
				"%s is not a valid app, the file name must start with the app directory", name), ErrUnknownApp)
		}
		t := w.appTarget(app, opts.Locale)
		if path := w.catalogPath(t); !w.store.Exists(path) {
			return nil, newError(KindValidation, path, "not found: "+path, ErrCatalogNotFound)
		}
		targets = []target{t}
	}
	if opts.DryRun {
		logger.Info().Msg("dry run, no catalog will be written")
	}

	report := &Report{Operation: "tag", Locale: opts.Locale, Project: string(project), DryRun: opts.DryRun}
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		path := w.catalogPath(t)
		if !w.store.Exists(path) {
			logger.Debug().Str("catalog", path).Msg("no catalog")
			continue
		}
		f, err := w.load(path)
		if err != nil {
			return report, err
		}

		cr := CatalogReport{Path: path}
		for _, e := range f.Entries {
			if !Taggable(e) {
				continue
			}
			if opts.FileName != "" && !occursIn(e, opts.FileName) {
				continue
			}
			if opts.DryRun {
				logger.Info().Str("catalog", path).Int("n", len(cr.Entries)).Msg(e.MsgID)
			} else {
				project.Attach(e)
			}
			cr.Entries = append(cr.Entries, e.MsgID)
		}
		cr.Count = len(cr.Entries)

		if cr.Count > 0 && !opts.DryRun {
			if err := w.save(path, f); err != nil {
				return report, err
			}
			cr.Saved = true
		}
		logger.Info().Str("catalog", path).Int("tagged", cr.Count).Msg("processed")
		report.Catalogs = append(report.Catalogs, cr)
	}
	return report, nil
}

package poproject

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/loopcontext/poproject/internal/plural"
	"github.com/loopcontext/poproject/internal/po"
)

// mergeTarget resolves the app argument of a merge to the directory that must
// exist and the catalog target inside it.
func (w *DefaultWorkflow) mergeTarget(app, locale string) (string, target) {
	if app == RootApp {
		return filepath.Join(w.cfg.BaseDir, w.cfg.LocaleDir), w.generalTarget(locale)
	}
	a, ok := w.cfg.app(app)
	if !ok {
		a = App{Name: app, Path: app}
	}
	return w.cfg.appDir(a), w.appTarget(a, locale)
}

// checkMerge validates the merge inputs in order: app directory, locale
// directory, main catalog and input file.
func (w *DefaultWorkflow) checkMerge(opts MergeOptions) (target, error) {
	if opts.App == "" {
		return target{}, newError(KindUsage, "", "an app is required", ErrAppRequired)
	}
	if opts.File == "" {
		return target{}, newError(KindUsage, "", "an input file is required", ErrInputRequired)
	}
	appDir, t := w.mergeTarget(opts.App, opts.Locale)
	if !w.store.Exists(appDir) {
		return t, newError(KindValidation, appDir, fmt.Sprintf("the app '%s' does not exist: %s", opts.App, appDir), ErrAppNotFound)
	}
	if dir := filepath.Dir(t.dir); !w.store.Exists(dir) {
		return t, newError(KindValidation, dir, fmt.Sprintf("the locale '%s' does not exist in the app '%s': %s", opts.Locale, opts.App, dir), ErrLocaleNotFound)
	}
	if path := w.catalogPath(t); !w.store.Exists(path) {
		return t, newError(KindValidation, path, fmt.Sprintf("the app '%s' does not contain a %s.po translation file: %s", opts.App, w.cfg.Domain, path), ErrCatalogNotFound)
	}
	if !w.store.Exists(opts.File) {
		return t, newError(KindValidation, opts.File, fmt.Sprintf("unable to find the specified file [%s]", opts.File), ErrInputNotFound)
	}
	return t, nil
}

// pluralCount is the number of forms main's plural entries must carry.
func pluralCount(main *po.File, locale string) int {
	if n, ok := plural.NPlurals(main.PluralForms()); ok {
		return n
	}
	return plural.Count(locale)
}

func projectNames(ps []Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}

func (w *DefaultWorkflow) Merge(ctx context.Context, opts MergeOptions) (*Report, error) {
	if err := w.cfg.checkLocale(opts.Locale); err != nil {
		return nil, err
	}
	project := Project(opts.Project)
	if err := project.Validate(); err != nil {
		return nil, err
	}
	t, err := w.checkMerge(opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := w.catalogPath(t)
	logger := w.opLogger("merge", opts.Locale, project).With().Str("catalog", path).Logger()
	main, err := w.load(path)
	if err != nil {
		return nil, err
	}
	in, err := w.load(opts.File)
	if err != nil {
		return nil, err
	}

	report := &Report{Operation: "merge", Locale: opts.Locale, Project: string(project), DryRun: opts.DryRun}
	cr := CatalogReport{Path: path, ProjectFile: opts.File}
	nplurals := pluralCount(main, opts.Locale)
	affected := map[string]struct{}{}
	var merged []*po.Entry

	for _, ie := range in.Entries {
		if ie.Obsolete {
			logger.Debug().Str("msgid", ie.MsgID).Msg("skipping obsolete entry")
			continue
		}
		if !project.In(ie) {
			msg := fmt.Sprintf("Entry [%s] is not part of this project, so it will be ignored!", ie.MsgID)
			logger.Warn().Strs("projects", projectNames(Projects(ie))).Msg(msg)
			report.warn(msg)
			continue
		}
		if ie.MsgIDPlural != "" && len(ie.MsgStrPlural) != nplurals {
			msg := fmt.Sprintf("Entry [%s] has %d plural forms, the catalog expects %d", ie.MsgID, len(ie.MsgStrPlural), nplurals)
			logger.Warn().Msg(msg)
			report.warn(msg)
		}

		matched := false
		for _, e := range main.Entries {
			if e.Obsolete || e.MsgID != ie.MsgID || e.MsgCtxt != ie.MsgCtxt || !project.In(e) {
				continue
			}
			matched = true
			if e.HasMsgStr() {
				msg := fmt.Sprintf("Overwriting current translation of [%s]", e.MsgID)
				logger.Warn().Msg(msg)
				report.warn(msg)
			}
			e.MsgStr = ie.MsgStr
			e.MsgStrPlural = append([]string(nil), ie.MsgStrPlural...)
			for _, o := range e.Occurrences {
				if _, seen := affected[o.File]; !seen {
					affected[o.File] = struct{}{}
					report.AffectedFiles = append(report.AffectedFiles, o.File)
				}
			}
			merged = append(merged, e)
			cr.Entries = append(cr.Entries, e.MsgID)
		}
		if !matched {
			logger.Debug().Str("msgid", ie.MsgID).Msg("no tagged entry to merge into")
			report.Unmatched = append(report.Unmatched, ie.MsgID)
		}
	}
	cr.Count = len(cr.Entries)

	if opts.DryRun {
		logger.Info().Int("merged", cr.Count).Msg("dry run complete, no changes were written")
		report.Catalogs = append(report.Catalogs, cr)
		return report, nil
	}

	if err := w.save(path, main); err != nil {
		return report, err
	}
	cr.Saved = true
	report.Catalogs = append(report.Catalogs, cr)
	logger.Info().Int("merged", cr.Count).Int("affected_files", len(report.AffectedFiles)).Msg("merged")

	saved, err := w.store.ReadFile(path)
	if err != nil {
		return report, newError(KindIO, path, fmt.Sprintf("read %s: %v", path, err), err)
	}
	for _, msg := range verifySaved(saved, merged) {
		logger.Warn().Msg(msg)
		report.warn(msg)
	}
	return report, nil
}

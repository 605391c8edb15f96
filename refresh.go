package poproject

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

const localePlaceholder = "{locale}"

// ExecRunner runs argv as a child process in dir. The combined output is
// attached to the error when the process fails.
func ExecRunner(ctx context.Context, dir string, argv []string) error {
	if len(argv) == 0 {
		return ErrNoExtractCommand
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(out.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", argv[0], err, msg)
		}
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}

// commentBackup is the extracted comment of one message.
type commentBackup struct {
	msgid   string
	msgctxt string
	comment string
}

// extractCommands expands the configured command into one argv per run. A
// command mentioning {locale} runs once per locale, any other command once.
func (w *DefaultWorkflow) extractCommands(locales []string, allowObsolete bool) [][]string {
	base := append([]string(nil), w.cfg.ExtractCommand...)
	if !allowObsolete && w.cfg.NoObsoleteArg != "" {
		base = append(base, w.cfg.NoObsoleteArg)
	}
	perLocale := false
	for _, arg := range base {
		if strings.Contains(arg, localePlaceholder) {
			perLocale = true
			break
		}
	}
	if !perLocale {
		return [][]string{base}
	}
	out := make([][]string, 0, len(locales))
	for _, locale := range locales {
		argv := make([]string, len(base))
		for i, arg := range base {
			argv[i] = strings.ReplaceAll(arg, localePlaceholder, ToLocale(locale))
		}
		out = append(out, argv)
	}
	return out
}

func (w *DefaultWorkflow) refreshLocales(opts RefreshOptions) ([]string, error) {
	if opts.All || len(opts.Locales) == 0 {
		return w.cfg.SupportedLocales(), nil
	}
	for _, locale := range opts.Locales {
		if err := w.cfg.checkLocale(locale); err != nil {
			return nil, err
		}
	}
	return opts.Locales, nil
}

func (w *DefaultWorkflow) Refresh(ctx context.Context, opts RefreshOptions) (*Report, error) {
	if len(w.cfg.ExtractCommand) == 0 {
		return nil, newError(KindUsage, "", "no extract command configured", ErrNoExtractCommand)
	}
	locales, err := w.refreshLocales(opts)
	if err != nil {
		return nil, err
	}
	logger := w.opLogger("refresh", "", "")

	// Catalog paths in backup order, so restoring is deterministic.
	var paths []string
	backups := map[string][]commentBackup{}
	for _, locale := range locales {
		for _, t := range w.targets(locale) {
			path := w.catalogPath(t)
			if !w.store.Exists(path) {
				continue
			}
			f, err := w.load(path)
			if err != nil {
				return nil, err
			}
			var saved []commentBackup
			for _, e := range f.Entries {
				if e.Comment != "" {
					saved = append(saved, commentBackup{msgid: e.MsgID, msgctxt: e.MsgCtxt, comment: e.Comment})
				}
			}
			if len(saved) > 0 {
				paths = append(paths, path)
				backups[path] = saved
			}
		}
	}
	logger.Info().Int("catalogs", len(paths)).Msg("comments backed up")

	for _, argv := range w.extractCommands(locales, opts.AllowObsolete) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Info().Strs("argv", argv).Msg("running extract command")
		if err := w.run(ctx, w.cfg.BaseDir, argv); err != nil {
			return nil, newError(KindIO, "", fmt.Sprintf("extract command failed: %v", err), err)
		}
	}

	report := &Report{Operation: "refresh"}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		cr := CatalogReport{Path: path}
		if !w.store.Exists(path) {
			msg := "catalog disappeared during refresh, comments not restored: " + path
			logger.Warn().Msg(msg)
			report.warn(msg)
			cr.Skipped = true
			report.Catalogs = append(report.Catalogs, cr)
			continue
		}
		f, err := w.load(path)
		if err != nil {
			return report, err
		}
		for _, b := range backups[path] {
			if e := f.Find(b.msgid, b.msgctxt); e != nil && e.Comment != b.comment {
				e.Comment = b.comment
				cr.Entries = append(cr.Entries, b.msgid)
			}
		}
		cr.Count = len(cr.Entries)
		if cr.Count > 0 {
			if err := w.save(path, f); err != nil {
				return report, err
			}
			cr.Saved = true
		}
		logger.Info().Str("catalog", path).Int("restored", cr.Count).Msg("comments restored")
		report.Catalogs = append(report.Catalogs, cr)
	}
	return report, nil
}

// Package poproject runs translation-project workflows over the gettext
// catalogs of a multi-application source tree.
//
// A project is a batch of untranslated or fuzzy messages marked with a
// "project=<name>" extracted comment. Tag marks them, Extract copies them into
// a standalone catalog for a translator, Merge copies the translations back
// and Clean removes the marks again. Refresh regenerates the catalogs with an
// external extraction command without losing the marks.
package poproject

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/loopcontext/poproject/internal/po"
)

type Workflow interface {
	// Tag marks eligible entries of every catalog of a locale with a project.
	Tag(ctx context.Context, opts TagOptions) (*Report, error)
	// Extract writes each catalog's project entries to a standalone catalog.
	Extract(ctx context.Context, opts ExtractOptions) (*Report, error)
	// Merge copies translations from a project catalog into one app catalog.
	Merge(ctx context.Context, opts MergeOptions) (*Report, error)
	// Clean removes a project's marks and its standalone catalogs.
	Clean(ctx context.Context, opts CleanOptions) (*Report, error)
	// Refresh regenerates catalogs while keeping their extracted comments.
	Refresh(ctx context.Context, opts RefreshOptions) (*Report, error)
}

var _ Workflow = (*DefaultWorkflow)(nil)

type DefaultWorkflow struct {
	cfg   Config
	store Store
	run   Runner
	log   zerolog.Logger
}

// NewWorkflow validates cfg and fills in defaults: the filesystem store, the
// process runner, time.Now and the global zerolog logger.
func NewWorkflow(cfg Config) (*DefaultWorkflow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, newError(KindUsage, "", err.Error(), err)
	}
	cfg = cfg.withDefaults()
	if cfg.NowFn == nil {
		cfg.NowFn = time.Now
	}
	w := &DefaultWorkflow{
		cfg:   cfg,
		store: cfg.Store,
		run:   cfg.Runner,
	}
	if w.store == nil {
		w.store = FileStore{}
	}
	if w.run == nil {
		w.run = ExecRunner
	}
	if cfg.Logger != nil {
		w.log = *cfg.Logger
	} else {
		w.log = log.With().Str("sys", "poproject").Logger()
	}
	return w, nil
}

// target is one place catalogs live for a locale: an app's or the general
// locale directory.
type target struct {
	app string
	// dir is the LC_MESSAGES directory.
	dir string
}

func (w *DefaultWorkflow) catalogPath(t target) string {
	return filepath.Join(t.dir, w.cfg.Domain+".po")
}

func (w *DefaultWorkflow) projectPath(t target, p Project) string {
	return filepath.Join(t.dir, p.FileName())
}

func (w *DefaultWorkflow) localeDir(root, locale string) string {
	return filepath.Join(root, w.cfg.LocaleDir, ToLocale(locale))
}

func (w *DefaultWorkflow) appTarget(app App, locale string) target {
	return target{
		app: app.Name,
		dir: filepath.Join(w.localeDir(w.cfg.appDir(app), locale), "LC_MESSAGES"),
	}
}

func (w *DefaultWorkflow) generalTarget(locale string) target {
	return target{
		app: RootApp,
		dir: filepath.Join(w.localeDir(w.cfg.BaseDir, locale), "LC_MESSAGES"),
	}
}

// targets lists every app in configuration order, then the general locale
// directory.
func (w *DefaultWorkflow) targets(locale string) []target {
	out := make([]target, 0, len(w.cfg.Apps)+1)
	for _, app := range w.cfg.Apps {
		out = append(out, w.appTarget(app, locale))
	}
	return append(out, w.generalTarget(locale))
}

func (w *DefaultWorkflow) load(path string) (*po.File, error) {
	data, err := w.store.ReadFile(path)
	if err != nil {
		return nil, newError(KindIO, path, fmt.Sprintf("read %s: %v", path, err), err)
	}
	f, err := po.Parse(bytes.NewReader(data))
	if err != nil {
		var perr *po.ParseError
		if errors.As(err, &perr) {
			return nil, newError(KindParse, path, fmt.Sprintf("%s:%d: %s", path, perr.Line, perr.Msg), err)
		}
		return nil, newError(KindParse, path, fmt.Sprintf("parse %s: %v", path, err), err)
	}
	return f, nil
}

func (w *DefaultWorkflow) save(path string, f *po.File) error {
	if err := w.store.WriteFile(path, f.Bytes()); err != nil {
		return newError(KindIO, path, fmt.Sprintf("write %s: %v", path, err), err)
	}
	return nil
}

func (w *DefaultWorkflow) remove(path string) error {
	if err := w.store.Remove(path); err != nil {
		return newError(KindIO, path, fmt.Sprintf("remove %s: %v", path, err), err)
	}
	return nil
}

func (w *DefaultWorkflow) opLogger(op, locale string, project Project) zerolog.Logger {
	lc := w.log.With().Str("op", op)
	if locale != "" {
		lc = lc.Str("locale", locale)
	}
	if project != "" {
		lc = lc.Str("project", string(project))
	}
	return lc.Logger()
}

package poproject

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// App is one application owning a locale directory.
type App struct {
	Name string `yaml:"name"`
	// Path is the application directory. Relative paths resolve against
	// Config.BaseDir; empty means Name.
	Path string `yaml:"path"`
}

// Runner executes an external command in dir.
type Runner func(ctx context.Context, dir string, argv []string) error

type Config struct {
	// BaseDir is the project root: the general locale directory lives under
	// it and relative app paths resolve against it. Defaults to ".".
	BaseDir string `yaml:"base_dir"`
	// LanguageCode is the source language; it is never a supported target.
	LanguageCode string     `yaml:"language_code"`
	Languages    []Language `yaml:"languages"`
	Apps         []App      `yaml:"apps"`
	// Domain is the catalog basename, "django" unless set.
	Domain string `yaml:"domain"`
	// LocaleDir is the directory name holding locales, "locale" unless set.
	LocaleDir string `yaml:"locale_dir"`

	// ExtractCommand regenerates the catalogs for Refresh. Arguments equal
	// to or containing "{locale}" are expanded once per locale.
	ExtractCommand []string `yaml:"extract_command"`
	// NoObsoleteArg is appended to ExtractCommand unless obsolete entries
	// are allowed.
	NoObsoleteArg string `yaml:"no_obsolete_arg"`

	Store  Store            `yaml:"-"`
	Runner Runner           `yaml:"-"`
	Logger *zerolog.Logger  `yaml:"-"`
	NowFn  func() time.Time `yaml:"-"`
}

type TagOptions struct {
	Locale string
	// Project defaults to a name derived from the current time.
	Project string
	// FileName restricts tagging to one app (its first path segment) and to
	// entries with an occurrence whose file contains FileName.
	FileName string
	DryRun   bool
}

type ExtractOptions struct {
	Locale  string
	Project string
	Force   bool
}

type MergeOptions struct {
	// App is an app name, an app directory relative to BaseDir, or RootApp.
	App     string
	Locale  string
	Project string
	// File is the translated project catalog.
	File   string
	DryRun bool
}

type CleanOptions struct {
	Locale  string
	Project string
	DryRun  bool
}

type RefreshOptions struct {
	// Locales to regenerate; empty or All means every supported locale.
	Locales       []string
	All           bool
	AllowObsolete bool
}

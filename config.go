package poproject

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	// RootApp addresses the general locale directory under BaseDir instead
	// of an application.
	RootApp = "locale"

	defaultDomain     = "django"
	defaultLocaleDir  = "locale"
	defaultNoObsolete = "--no-obsolete"
)

// LoadConfig reads a YAML settings file. A relative base_dir resolves
// against the file's directory; a missing one means the file's directory.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read settings %s: %w", path, err)
	}
	if err := yaml.UnmarshalStrict(content, &cfg); err != nil {
		return cfg, fmt.Errorf("parse settings %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	switch {
	case cfg.BaseDir == "":
		cfg.BaseDir = dir
	case !filepath.IsAbs(cfg.BaseDir):
		cfg.BaseDir = filepath.Join(dir, cfg.BaseDir)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("settings %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the parts of the settings every operation relies on.
func (c Config) Validate() error {
	if len(c.Languages) == 0 {
		return fmt.Errorf("no languages configured")
	}
	seen := make(map[string]struct{}, len(c.Apps))
	for i, app := range c.Apps {
		if strings.TrimSpace(app.Name) == "" {
			return fmt.Errorf("app #%d has no name", i+1)
		}
		if app.Name == RootApp {
			return fmt.Errorf("app name %q is reserved for the general locale directory", RootApp)
		}
		if _, dup := seen[app.Name]; dup {
			return fmt.Errorf("app %q configured twice", app.Name)
		}
		seen[app.Name] = struct{}{}
	}
	for i, lang := range c.Languages {
		if strings.TrimSpace(lang.Code) == "" {
			return fmt.Errorf("language #%d has no code", i+1)
		}
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.BaseDir == "" {
		c.BaseDir = "."
	}
	if c.Domain == "" {
		c.Domain = defaultDomain
	}
	if c.LocaleDir == "" {
		c.LocaleDir = defaultLocaleDir
	}
	if c.NoObsoleteArg == "" {
		c.NoObsoleteArg = defaultNoObsolete
	}
	return c
}

// SupportedLocales lists the configured language codes except the source
// language, in configuration order.
func (c Config) SupportedLocales() []string {
	out := make([]string, 0, len(c.Languages))
	for _, lang := range c.Languages {
		if lang.Code != c.LanguageCode {
			out = append(out, lang.Code)
		}
	}
	return out
}

func (c Config) app(name string) (App, bool) {
	for _, app := range c.Apps {
		if app.Name == name {
			return app, true
		}
	}
	return App{}, false
}

// appDir resolves an app's directory.
func (c Config) appDir(app App) string {
	p := app.Path
	if p == "" {
		p = app.Name
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

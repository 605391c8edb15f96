package test

import (
	"os"
	"path/filepath"
)

// Tree is a source tree on disk laid out like a Django project: apps with
// their own locale directories plus a general one at the root.
type Tree struct {
	Root string
}

// NewTree creates an empty tree in a fresh temporary directory.
func NewTree() (*Tree, error) {
	dir, err := os.MkdirTemp("", "poproject-tree-*")
	if err != nil {
		return nil, err
	}
	return &Tree{Root: dir}, nil
}

func (t *Tree) Remove() error {
	return os.RemoveAll(t.Root)
}

func (t *Tree) Path(rel string) string {
	return filepath.Join(t.Root, rel)
}

func (t *Tree) Write(rel string, content string) error {
	path := t.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func (t *Tree) Read(rel string) (string, error) {
	b, err := os.ReadFile(t.Path(rel))
	return string(b), err
}

func (t *Tree) Exists(rel string) bool {
	_, err := os.Stat(t.Path(rel))
	return err == nil
}

// Catalog is the relative path of an app's main catalog; app "locale" is the
// general one.
func Catalog(app string, locale string) string {
	return filepath.Join(localeMessages(app, locale), "django.po")
}

// ProjectCatalog is the relative path of a project catalog beside Catalog.
func ProjectCatalog(app string, locale string, project string) string {
	return filepath.Join(localeMessages(app, locale), "po_project_"+project+".po")
}

func localeMessages(app string, locale string) string {
	if app == "locale" {
		return filepath.Join("locale", locale, "LC_MESSAGES")
	}
	return filepath.Join(app, "locale", locale, "LC_MESSAGES")
}

package poproject

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const deHeader = `msgid ""
msgstr ""
"Language: de\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"
`

const app1DE = deHeader + `
#: app1/templates/index.html:3
msgid "Hello"
msgstr ""

#: app1/views.py:10
msgid "Translated"
msgstr "Übersetzt"

#: app1/views.py:20
#, fuzzy
msgid "Fuzzy"
msgstr "Unscharf"

#. Translators: keep it short
#: app1/templates/index.html:8
msgid "Commented"
msgstr ""

#~ msgid "Gone"
#~ msgstr ""
`

const generalDE = deHeader + `
#: templates/base.html:1
msgid "Site"
msgstr ""
`

var fixedNow = time.Unix(1650000000, 0)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func catalogOf(root, app, locale string) string {
	if app == RootApp {
		return filepath.Join(root, "locale", locale, "LC_MESSAGES", "django.po")
	}
	return filepath.Join(root, app, "locale", locale, "LC_MESSAGES", "django.po")
}

func projectFileOf(root, app, locale, project string) string {
	return filepath.Join(filepath.Dir(catalogOf(root, app, locale)), "po_project_"+project+".po")
}

func testConfig(root string) Config {
	nop := zerolog.Nop()
	return Config{
		BaseDir:      root,
		LanguageCode: "en",
		Languages:    []Language{{Code: "en"}, {Code: "de"}, {Code: "es"}},
		Apps:         []App{{Name: "app1"}, {Name: "app2"}},
		Logger:       &nop,
		NowFn:        func() time.Time { return fixedNow },
	}
}

// newTestWorkflow lays out app1 and the general locale directory for "de"
// and an empty app2 directory.
func newTestWorkflow(t *testing.T) (*DefaultWorkflow, string) {
	t.Helper()
	root := t.TempDir()
	writeFile(t, catalogOf(root, "app1", "de"), app1DE)
	writeFile(t, catalogOf(root, RootApp, "de"), generalDE)
	if err := os.MkdirAll(filepath.Join(root, "app2"), 0o755); err != nil {
		t.Fatal(err)
	}
	w, err := NewWorkflow(testConfig(root))
	if err != nil {
		t.Fatal(err)
	}
	return w, root
}

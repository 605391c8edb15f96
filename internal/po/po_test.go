package po

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const djangoPO = `# SOME DESCRIPTIVE TITLE.
# Copyright (C) YEAR THE PACKAGE'S COPYRIGHT HOLDER
#
#, fuzzy
msgid ""
msgstr ""
"Project-Id-Version: PACKAGE VERSION\n"
"Language: de\n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"

#. project=jdoe_2022
#: app1/templates/index.html:3 app1/views.py:10
msgid "Hello"
msgstr ""

#: app1/views.py:20
#, fuzzy, python-format
#| msgid "Goodbye %(name)s"
msgid "Bye %(name)s"
msgstr "Tschüss %(name)s"

#: app1/models.py:5
msgctxt "menu"
msgid "Open"
msgstr "Öffnen"

#: app1/views.py:30
msgid "One file"
msgid_plural "%(count)s files"
msgstr[0] "Eine Datei"
msgstr[1] "%(count)s Dateien"

#: app1/templates/long.html:1
msgid ""
"First line\n"
"Second line"
msgstr ""

#~ msgid "Old"
#~ msgstr "Alt"
`

func parseString(t *testing.T, s string) *File {
	t.Helper()
	f, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return f
}

func TestParse(t *testing.T) {
	f := parseString(t, djangoPO)

	require.Len(t, f.Entries, 6)
	assert.Equal(t, "de", f.Language())
	assert.Equal(t, "nplurals=2; plural=(n != 1);", f.PluralForms())

	hello := f.Entries[0]
	assert.Equal(t, "Hello", hello.MsgID)
	assert.Equal(t, "project=jdoe_2022", hello.Comment)
	assert.Equal(t, []Occurrence{
		{File: "app1/templates/index.html", Line: "3"},
		{File: "app1/views.py", Line: "10"},
	}, hello.Occurrences)
	assert.False(t, hello.Translated())

	bye := f.Entries[1]
	assert.True(t, bye.Fuzzy())
	assert.True(t, bye.HasFlag("python-format"))
	assert.Equal(t, "Goodbye %(name)s", bye.PreviousMsgID)
	assert.False(t, bye.Translated())
	assert.True(t, bye.HasMsgStr())

	open := f.Find("Open", "menu")
	require.NotNil(t, open)
	assert.True(t, open.Translated())
	assert.Nil(t, f.Find("Open", ""))

	plural := f.Entries[3]
	assert.Equal(t, "%(count)s files", plural.MsgIDPlural)
	assert.Equal(t, []string{"Eine Datei", "%(count)s Dateien"}, plural.MsgStrPlural)
	assert.True(t, plural.Translated())

	assert.Equal(t, "First line\nSecond line", f.Entries[4].MsgID)

	old := f.Entries[5]
	assert.True(t, old.Obsolete)
	assert.Equal(t, "Alt", old.MsgStr)
	assert.False(t, old.Translated())
	assert.Nil(t, f.Find("Old", ""))
}

func TestWrite_roundTrip(t *testing.T) {
	f := parseString(t, djangoPO)
	assert.Equal(t, djangoPO, string(f.Bytes()))
}

func TestWrite_keepsMutations(t *testing.T) {
	f := parseString(t, djangoPO)
	f.Entries[0].Comment = "project=a\nproject=b"
	f.Entries[0].MsgStr = "Hallo Welt"

	out := string(f.Bytes())
	assert.Contains(t, out, "#. project=a\n#. project=b\n#: app1/templates/index.html:3 app1/views.py:10\nmsgid \"Hello\"\nmsgstr \"Hallo Welt\"\n")
	again := parseString(t, out)
	assert.Equal(t, "project=a\nproject=b", again.Entries[0].Comment)
	assert.Equal(t, "Hallo Welt", again.Entries[0].MsgStr)
}

const layoutPO = `msgid ""
msgstr ""
"Language: de\n"

#: app1/templates/long.html:4
msgid ""
"This is a rather long message that gettext wrapped because it does not fit "
"in seventy-nine columns"
msgstr ""
"Dies ist eine ziemlich lange Nachricht, die gettext umbrochen hat, weil sie "
"nicht in neunundsiebzig Spalten passt"

#: app1/views.py:7
msgid "Bell\a and octal \101 and hex \x41"
msgstr ""

#: app1/views.py:9
msgid "Tab\tand \"quotes\""
msgstr ""

#~ msgid "Old"
#~ msgstr "Alt"
`

func TestWrite_touchesOnlyChangedLines(t *testing.T) {
	f := parseString(t, layoutPO)
	require.Len(t, f.Entries, 4)
	assert.Equal(t, "de", f.Language())

	f.Entries[1].Comment = "project=p1"
	f.Entries[2].Comment = "project=p1"

	want := strings.Replace(layoutPO, "#: app1/views.py:7\n", "#. project=p1\n#: app1/views.py:7\n", 1)
	want = strings.Replace(want, "#: app1/views.py:9\n", "#. project=p1\n#: app1/views.py:9\n", 1)
	assert.Equal(t, want, string(f.Bytes()))

	f.Entries[1].Comment = ""
	f.Entries[2].Comment = ""
	assert.Equal(t, layoutPO, string(f.Bytes()))
}

func TestWriteString(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"empty", "", "msgstr \"\"\n"},
		{"short", "Hola", "msgstr \"Hola\"\n"},
		{"trailing newline", "Hola\n", "msgstr \"Hola\\n\"\n"},
		{"inner newline", "a\nb", "msgstr \"\"\n\"a\\n\"\n\"b\"\n"},
		{"control characters", "\a\b\f\v\x01\x7f", `msgstr "\a\b\f\v\001\177"` + "\n"},
		{"quotes and backslashes", `say "\"`, `msgstr "say \"\\\""` + "\n"},
		{
			"long",
			strings.Repeat("word ", 20),
			"msgstr \"\"\n\"" + strings.Repeat("word ", 15) + "\"\n\"" + strings.Repeat("word ", 5) + "\"\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := bufio.NewWriter(&buf)
			writeString(w, "", "msgstr", tt.value)
			require.NoError(t, w.Flush())
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestWrite_obsoleteEntry(t *testing.T) {
	f := parseString(t, layoutPO)
	old := f.Entries[3]
	old.Comment = "project=p1"
	assert.Contains(t, string(f.Bytes()), "#. project=p1\n#~ msgid \"Old\"\n#~ msgstr \"Alt\"\n")
}

func TestWrite_newEntries(t *testing.T) {
	f := NewFile()
	f.Append(&Entry{MsgID: "a", MsgStr: "A", Comment: "project=p"})
	f.Append(&Entry{MsgID: "b", MsgIDPlural: "bs", MsgStrPlural: []string{"B", "Bs"}, Flags: []string{"fuzzy"}})
	f.Append(&Entry{MsgID: "c", Obsolete: true})
	assert.Equal(t, `#. project=p
msgid "a"
msgstr "A"

#, fuzzy
msgid "b"
msgid_plural "bs"
msgstr[0] "B"
msgstr[1] "Bs"

#~ msgid "c"
#~ msgstr ""
`, string(f.Bytes()))
}

func TestParse_entriesWithoutBlankLines(t *testing.T) {
	f := parseString(t, "msgid \"a\"\nmsgstr \"A\"\n#. project=p\nmsgid \"b\"\nmsgstr \"\"\nmsgid \"c\"\nmsgstr \"C\"\n")
	require.Len(t, f.Entries, 3)
	assert.Equal(t, "project=p", f.Entries[1].Comment)
	assert.Equal(t, "", f.Entries[2].Comment)
}

func TestParse_errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		line int
	}{
		{"msgstr first", "msgstr \"x\"\n", 1},
		{"unquoted", "msgid hello\nmsgstr \"\"\n", 1},
		{"bad plural index", "msgid \"a\"\nmsgid_plural \"b\"\nmsgstr[x] \"\"\n", 3},
		{"garbage", "msgid \"a\"\nmsgstr \"\"\nwhat\n", 3},
		{"dangling escape", "msgid \"a\\\"\nmsgstr \"\"\n", 1},
		{"missing msgstr", "msgid \"a\"\n\nmsgid \"b\"\nmsgstr \"\"\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestSetFuzzy(t *testing.T) {
	e := &Entry{MsgID: "a", MsgStr: "b", Flags: []string{"python-format"}}
	e.SetFuzzy(true)
	e.SetFuzzy(true)
	assert.Equal(t, []string{"python-format", "fuzzy"}, e.Flags)
	assert.False(t, e.Translated())
	e.SetFuzzy(false)
	assert.Equal(t, []string{"python-format"}, e.Flags)
	assert.True(t, e.Translated())
}

func TestClone(t *testing.T) {
	e := &Entry{MsgID: "a", Flags: []string{"fuzzy"}, Occurrences: []Occurrence{{File: "x.py", Line: "1"}}}
	c := e.Clone()
	c.Flags[0] = "c-format"
	c.Occurrences[0].Line = "2"
	assert.Equal(t, "fuzzy", e.Flags[0])
	assert.Equal(t, "1", e.Occurrences[0].Line)
}

func TestCopyHeader(t *testing.T) {
	src := parseString(t, djangoPO)
	f := NewFile()
	f.CopyHeader(src)
	f.Append(src.Entries[0].Clone())

	assert.Equal(t, `msgid ""
msgstr ""
"Project-Id-Version: PACKAGE VERSION\n"
"Language: de\n"
"MIME-Version: 1.0\n"
"Content-Type: text/plain; charset=UTF-8\n"
"Plural-Forms: nplurals=2; plural=(n != 1);\n"

#. project=jdoe_2022
#: app1/templates/index.html:3 app1/views.py:10
msgid "Hello"
msgstr ""
`, string(f.Bytes()))
	assert.Equal(t, "de", f.Language())
	assert.Equal(t, src.PluralForms(), f.PluralForms())
}

// Package po adapts github.com/chai2010/gettext-go/po to catalogs that are
// edited in place: the library decodes every message, and each entry keeps
// the lines it was read from so saving rewrites only what was changed.
//
// Every comment kind gettext defines is kept (translator, extracted,
// references, flags, previous msgid) so a load/save cycle does not lose
// translator-relevant metadata.
package po

import (
	"strings"

	gettextpo "github.com/chai2010/gettext-go/po"
)

// Occurrence is one "#:" reference, a source file and an optional line.
type Occurrence struct {
	File string
	Line string
}

func (o Occurrence) String() string {
	if o.Line == "" {
		return o.File
	}
	return o.File + ":" + o.Line
}

// Entry is one message of a catalog.
type Entry struct {
	MsgCtxt      string
	MsgID        string
	MsgIDPlural  string
	MsgStr       string
	MsgStrPlural []string

	// Comment holds the extracted comments ("#." lines) joined with "\n".
	Comment string
	// TComment holds the translator comments ("# " lines) joined with "\n".
	TComment string

	Occurrences []Occurrence
	Flags       []string

	PreviousMsgCtxt string
	PreviousMsgID   string

	Obsolete bool

	src *source
}

// source is what an entry looked like on disk.
type source struct {
	// lead is the text between the previous entry and this one: blank lines
	// and comment blocks that belong to no message.
	lead    string
	hasLead bool
	lines   []string
	groups  [numGroups][]string
	orig    Entry
}

// Fuzzy reports whether the entry carries the fuzzy flag.
func (e *Entry) Fuzzy() bool {
	return e.HasFlag("fuzzy")
}

func (e *Entry) HasFlag(flag string) bool {
	for _, f := range e.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// SetFuzzy adds or removes the fuzzy flag.
func (e *Entry) SetFuzzy(fuzzy bool) {
	if fuzzy {
		if !e.Fuzzy() {
			e.Flags = append(e.Flags, "fuzzy")
		}
		return
	}
	kept := make([]string, 0, len(e.Flags))
	for _, f := range e.Flags {
		if f != "fuzzy" {
			kept = append(kept, f)
		}
	}
	e.Flags = kept
}

// Translated reports whether the entry holds a usable translation. Obsolete
// and fuzzy entries never count as translated; plural entries need every form.
func (e *Entry) Translated() bool {
	if e.Obsolete || e.Fuzzy() {
		return false
	}
	if e.MsgIDPlural != "" {
		if len(e.MsgStrPlural) == 0 {
			return false
		}
		for _, s := range e.MsgStrPlural {
			if s == "" {
				return false
			}
		}
		return true
	}
	return e.MsgStr != ""
}

// HasMsgStr reports whether any translated form is non-empty, regardless of
// flags.
func (e *Entry) HasMsgStr() bool {
	if e.MsgStr != "" {
		return true
	}
	for _, s := range e.MsgStrPlural {
		if s != "" {
			return true
		}
	}
	return false
}

// CommentLines splits Comment into its lines. An empty comment has none.
func (e *Entry) CommentLines() []string {
	if e.Comment == "" {
		return nil
	}
	return strings.Split(e.Comment, "\n")
}

// Clone returns a deep copy of the entry. The copy keeps the original
// layout of its lines but not its position in the source file.
func (e *Entry) Clone() *Entry {
	c := e.fields()
	if e.src != nil {
		src := *e.src
		src.lead, src.hasLead = "", false
		c.src = &src
	}
	return c
}

// fields copies the message fields without the source layout.
func (e *Entry) fields() *Entry {
	c := *e
	c.src = nil
	c.MsgStrPlural = append([]string(nil), e.MsgStrPlural...)
	c.Occurrences = append([]Occurrence(nil), e.Occurrences...)
	c.Flags = append([]string(nil), e.Flags...)
	return &c
}

// File is a parsed catalog.
type File struct {
	Entries []*Entry

	header *Entry
	meta   gettextpo.Header
	// tail is the text after the last entry.
	tail string
}

// NewFile returns an empty catalog without a header.
func NewFile() *File {
	return &File{}
}

func (f *File) Len() int {
	return len(f.Entries)
}

func (f *File) Append(e *Entry) {
	f.Entries = append(f.Entries, e)
}

// Find returns the first non-obsolete entry with the given msgid and msgctxt.
func (f *File) Find(msgid, msgctxt string) *Entry {
	for _, e := range f.Entries {
		if !e.Obsolete && e.MsgID == msgid && e.MsgCtxt == msgctxt {
			return e
		}
	}
	return nil
}

// Language is the Language header field.
func (f *File) Language() string {
	return f.meta.Language
}

// PluralForms is the Plural-Forms header field.
func (f *File) PluralForms() string {
	return f.meta.PluralForms
}

// CopyHeader gives f the header fields of src, without the header's comments.
func (f *File) CopyHeader(src *File) {
	f.meta = src.meta
	f.header = nil
	if src.header == nil || src.header.src == nil {
		return
	}
	h := &source{}
	for g := gMsgCtxt; g < numGroups; g++ {
		h.groups[g] = src.header.src.groups[g]
		h.lines = append(h.lines, h.groups[g]...)
	}
	f.header = &Entry{src: h}
}

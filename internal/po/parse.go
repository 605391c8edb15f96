package po

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	gettextpo "github.com/chai2010/gettext-go/po"
)

// ParseError reports a malformed catalog line.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// group is a run of lines holding one field of an entry. Groups are ordered
// the way gettext writes them.
type group int

const (
	gTComment group = iota
	gComment
	gRefs
	gFlags
	gPrevious
	gMsgCtxt
	gMsgID
	gMsgIDPlural
	gMsgStr
	numGroups
)

var keywordNames = [numGroups]string{
	gMsgCtxt:     "msgctxt",
	gMsgID:       "msgid",
	gMsgIDPlural: "msgid_plural",
	gMsgStr:      "msgstr",
}

var (
	keywordLine  = regexp.MustCompile(`^(msgctxt|msgid_plural|msgid|msgstr(?:\[\d+\])?)\s+(.*)$`)
	errNotQuoted = errors.New("expected a quoted string")
)

// block collects the lines of one entry before it is decoded.
type block struct {
	start    int
	lines    []string
	groups   [numGroups][]string
	seen     [numGroups]bool
	last     group
	obsolete bool
}

type parser struct {
	file *File
	cur  *block
	// pending is text not yet attached to an entry.
	pending strings.Builder
}

// Parse reads a catalog. The first entry with an empty msgid becomes the
// header. Messages are decoded by gettext-go; each entry also keeps the
// lines it came from.
func Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	p := &parser{file: &File{}}
	text := strings.TrimSuffix(string(data), "\n")
	var lines []string
	if text != "" || len(data) > 0 {
		lines = strings.Split(text, "\n")
	}
	for i, line := range lines {
		if err := p.line(i+1, line); err != nil {
			return nil, err
		}
	}
	if err := p.flush(len(lines) + 1); err != nil {
		return nil, err
	}
	p.file.tail = p.pending.String()
	return p.file, nil
}

func (p *parser) line(n int, raw string) error {
	s := strings.TrimRight(raw, "\r")
	if strings.TrimSpace(s) == "" {
		if err := p.flush(n); err != nil {
			return err
		}
		p.pending.WriteString(raw + "\n")
		return nil
	}

	g, obsolete, cont, err := classify(s)
	if err != nil {
		return &ParseError{Line: n, Msg: err.Error()}
	}
	// gettext tolerates entries that are not separated by a blank line.
	if p.cur != nil && p.cur.seen[gMsgStr] && !cont && g <= gMsgID {
		if err := p.flush(n); err != nil {
			return err
		}
	}
	if p.cur == nil {
		p.cur = &block{start: n, last: -1}
	}
	b := p.cur

	switch {
	case cont:
		if b.last < 0 {
			return &ParseError{Line: n, Msg: "string without a keyword"}
		}
		g = b.last
	case g >= gMsgCtxt:
		if b.seen[g] && (g != gMsgStr || b.last != gMsgStr) {
			return &ParseError{Line: n, Msg: "duplicate " + keywordNames[g]}
		}
		for later := g + 1; later < numGroups; later++ {
			if b.seen[later] {
				return &ParseError{Line: n, Msg: fmt.Sprintf("%s after %s", keywordNames[g], keywordNames[later])}
			}
		}
		b.last = g
		if g == gMsgID {
			b.obsolete = obsolete
		}
	}
	b.seen[g] = true
	b.groups[g] = append(b.groups[g], raw)
	b.lines = append(b.lines, raw)
	return nil
}

// classify names the group of a non-blank line. cont is set for a quoted
// string continuing the previous keyword.
func classify(s string) (g group, obsolete, cont bool, err error) {
	if strings.HasPrefix(s, "#~") {
		rest := s[2:]
		if strings.HasPrefix(rest, "|") {
			return gPrevious, true, false, nil
		}
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return gTComment, false, false, nil
		}
		g, cont, err = keyword(rest)
		return g, true, cont, err
	}
	if strings.HasPrefix(s, "#") {
		if len(s) > 1 {
			switch s[1] {
			case '.':
				return gComment, false, false, nil
			case ':':
				return gRefs, false, false, nil
			case ',':
				return gFlags, false, false, nil
			case '|':
				return gPrevious, false, false, nil
			}
		}
		return gTComment, false, false, nil
	}
	g, cont, err = keyword(s)
	return g, false, cont, err
}

func keyword(s string) (group, bool, error) {
	s = strings.TrimLeft(s, " \t")
	if strings.HasPrefix(s, `"`) {
		if !quoted(s) {
			return 0, false, errNotQuoted
		}
		return 0, true, nil
	}
	m := keywordLine.FindStringSubmatch(s)
	if m == nil {
		if len(s) > 20 {
			s = s[:20] + "..."
		}
		return 0, false, fmt.Errorf("unexpected %q", s)
	}
	if !quoted(m[2]) {
		return 0, false, errNotQuoted
	}
	switch m[1] {
	case "msgctxt":
		return gMsgCtxt, false, nil
	case "msgid":
		return gMsgID, false, nil
	case "msgid_plural":
		return gMsgIDPlural, false, nil
	}
	return gMsgStr, false, nil
}

// quoted reports whether s is one complete C string literal.
func quoted(s string) bool {
	s = strings.TrimRight(s, " \t")
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return false
	}
	for i := 1; i < len(s)-1; i++ {
		switch s[i] {
		case '\\':
			i++
			if i == len(s)-1 {
				return false
			}
		case '"':
			return false
		}
	}
	return true
}

// flush decodes the current block. next is the line number after it.
func (p *parser) flush(next int) error {
	b := p.cur
	if b == nil {
		return nil
	}
	p.cur = nil

	if !b.seen[gMsgID] {
		for g := gMsgCtxt; g < numGroups; g++ {
			if b.seen[g] {
				return &ParseError{Line: b.start, Msg: keywordNames[g] + " without msgid"}
			}
		}
		p.keep(b.lines)
		return nil
	}
	if !b.seen[gMsgStr] {
		return &ParseError{Line: next, Msg: "missing msgstr"}
	}

	decoded, err := decode(b)
	if err != nil {
		return &ParseError{Line: b.start, Msg: err.Error()}
	}
	src := &source{lead: p.pending.String(), hasLead: true, lines: b.lines, groups: b.groups}

	if len(decoded.Messages) == 0 || decoded.Messages[0].MsgId == "" && decoded.Messages[0].MsgContext == "" {
		if p.file.header == nil && len(p.file.Entries) == 0 && !b.obsolete {
			p.pending.Reset()
			p.file.header = &Entry{src: src}
			p.file.meta = decoded.MimeHeader
			return nil
		}
		// A second header belongs to nothing; keep its text in place.
		p.keep(b.lines)
		return nil
	}
	p.pending.Reset()

	e := entryOf(&decoded.Messages[0], b.obsolete)
	src.orig = *e.fields()
	e.src = src
	p.file.Entries = append(p.file.Entries, e)
	return nil
}

func (p *parser) keep(lines []string) {
	for _, l := range lines {
		p.pending.WriteString(l + "\n")
	}
}

// decode hands one entry to gettext-go, with obsolete lines unmarked.
func decode(b *block) (*gettextpo.File, error) {
	var buf strings.Builder
	for _, l := range b.lines {
		buf.WriteString(unobsolete(strings.TrimRight(l, "\r")))
		buf.WriteByte('\n')
	}
	return gettextpo.Load([]byte(buf.String()))
}

func unobsolete(l string) string {
	if !strings.HasPrefix(l, "#~") {
		return l
	}
	rest := l[2:]
	if strings.HasPrefix(rest, "|") {
		return "#" + rest
	}
	if rest = strings.TrimLeft(rest, " \t"); rest == "" {
		return "#"
	}
	return rest
}

func entryOf(m *gettextpo.Message, obsolete bool) *Entry {
	e := &Entry{
		MsgCtxt:         m.MsgContext,
		MsgID:           m.MsgId,
		MsgIDPlural:     m.MsgIdPlural,
		MsgStr:          m.MsgStr,
		MsgStrPlural:    append([]string(nil), m.MsgStrPlural...),
		Comment:         trimLines(m.ExtractedComment),
		TComment:        trimLines(m.TranslatorComment),
		PreviousMsgCtxt: m.PrevMsgContext,
		PreviousMsgID:   m.PrevMsgId,
		Obsolete:        obsolete,
	}
	for _, f := range m.Flags {
		if f = strings.TrimSpace(f); f != "" {
			e.Flags = append(e.Flags, f)
		}
	}
	for i, file := range m.ReferenceFile {
		o := Occurrence{File: file}
		if i < len(m.ReferenceLine) && m.ReferenceLine[i] > 0 {
			o.Line = strconv.Itoa(m.ReferenceLine[i])
		}
		e.Occurrences = append(e.Occurrences, o)
	}
	return e
}

// trimLines strips every line of a multi-line comment.
func trimLines(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.Join(lines, "\n")
}

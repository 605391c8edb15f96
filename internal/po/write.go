package po

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// wrapWidth is the column gettext wraps references and strings at.
const wrapWidth = 79

// Write serialises the catalog. Entries read from a file are written back
// from their original lines; only the fields that changed since parsing are
// re-encoded.
func (f *File) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	n := 0
	if h := f.header; h != nil && h.src != nil {
		writeLead(bw, h, n)
		writeLines(bw, h.src.lines)
		n++
	}
	for _, e := range f.Entries {
		writeLead(bw, e, n)
		writeEntry(bw, e)
		n++
	}
	bw.WriteString(f.tail)
	return bw.Flush()
}

// Bytes returns the serialised catalog.
func (f *File) Bytes() []byte {
	var buf bytes.Buffer
	_ = f.Write(&buf)
	return buf.Bytes()
}

func writeLead(w *bufio.Writer, e *Entry, n int) {
	switch {
	case e.src != nil && e.src.hasLead:
		w.WriteString(e.src.lead)
	case n > 0:
		w.WriteString("\n")
	}
}

func writeLines(w *bufio.Writer, lines []string) {
	for _, l := range lines {
		w.WriteString(l)
		w.WriteByte('\n')
	}
}

func writeEntry(w *bufio.Writer, e *Entry) {
	s := e.src
	if s != nil && e.unchanged() {
		writeLines(w, s.lines)
		return
	}
	for g := group(0); g < numGroups; g++ {
		if s != nil && e.sameGroup(g, &s.orig) {
			writeLines(w, s.groups[g])
			continue
		}
		e.writeGroup(w, g)
	}
}

func (e *Entry) unchanged() bool {
	for g := group(0); g < numGroups; g++ {
		if !e.sameGroup(g, &e.src.orig) {
			return false
		}
	}
	return true
}

// sameGroup reports whether the fields written by g equal those in o.
func (e *Entry) sameGroup(g group, o *Entry) bool {
	switch g {
	case gTComment:
		return e.TComment == o.TComment
	case gComment:
		return e.Comment == o.Comment
	case gRefs:
		return equalOccurrences(e.Occurrences, o.Occurrences)
	case gFlags:
		return equalStrings(e.Flags, o.Flags)
	}
	if e.Obsolete != o.Obsolete {
		return false
	}
	switch g {
	case gPrevious:
		return e.PreviousMsgCtxt == o.PreviousMsgCtxt && e.PreviousMsgID == o.PreviousMsgID
	case gMsgCtxt:
		return e.MsgCtxt == o.MsgCtxt
	case gMsgID:
		return e.MsgID == o.MsgID
	case gMsgIDPlural:
		return e.MsgIDPlural == o.MsgIDPlural
	default:
		return e.MsgStr == o.MsgStr && equalStrings(e.MsgStrPlural, o.MsgStrPlural)
	}
}

func (e *Entry) writeGroup(w *bufio.Writer, g group) {
	prefix, previous := "", "#| "
	if e.Obsolete {
		prefix, previous = "#~ ", "#~| "
	}
	switch g {
	case gTComment:
		writeComment(w, "#", e.TComment)
	case gComment:
		writeComment(w, "#.", e.Comment)
	case gRefs:
		writeOccurrences(w, e.Occurrences)
	case gFlags:
		if len(e.Flags) > 0 {
			w.WriteString("#, " + strings.Join(e.Flags, ", ") + "\n")
		}
	case gPrevious:
		if e.PreviousMsgCtxt != "" {
			writeString(w, previous, "msgctxt", e.PreviousMsgCtxt)
		}
		if e.PreviousMsgID != "" {
			writeString(w, previous, "msgid", e.PreviousMsgID)
		}
	case gMsgCtxt:
		if e.MsgCtxt != "" {
			writeString(w, prefix, "msgctxt", e.MsgCtxt)
		}
	case gMsgID:
		writeString(w, prefix, "msgid", e.MsgID)
	case gMsgIDPlural:
		if e.MsgIDPlural != "" {
			writeString(w, prefix, "msgid_plural", e.MsgIDPlural)
		}
	case gMsgStr:
		if e.MsgIDPlural == "" && len(e.MsgStrPlural) == 0 {
			writeString(w, prefix, "msgstr", e.MsgStr)
			return
		}
		if len(e.MsgStrPlural) == 0 {
			writeString(w, prefix, "msgstr[0]", "")
			return
		}
		for i, s := range e.MsgStrPlural {
			writeString(w, prefix, fmt.Sprintf("msgstr[%d]", i), s)
		}
	}
}

func writeComment(w *bufio.Writer, marker, text string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			w.WriteString(marker + "\n")
			continue
		}
		w.WriteString(marker + " " + line + "\n")
	}
}

func writeOccurrences(w *bufio.Writer, occurrences []Occurrence) {
	if len(occurrences) == 0 {
		return
	}
	line := "#:"
	for _, o := range occurrences {
		ref := o.String()
		if len(line) > 2 && len(line)+1+len(ref) > wrapWidth {
			w.WriteString(line + "\n")
			line = "#:"
		}
		line += " " + ref
	}
	w.WriteString(line + "\n")
}

// writeString writes keyword and value the way gettext does: on one line when
// it fits and holds no inner newline, otherwise as an empty first string
// followed by one string per line, long lines broken after a space.
func writeString(w *bufio.Writer, prefix, keyword, value string) {
	segs := segments(value, wrapWidth-len(prefix)-2)
	head := prefix + keyword + " "
	if len(segs) == 1 && len(head)+len(segs[0])+2 <= wrapWidth {
		w.WriteString(head + `"` + segs[0] + "\"\n")
		return
	}
	w.WriteString(head + "\"\"\n")
	for _, s := range segs {
		w.WriteString(prefix + `"` + s + "\"\n")
	}
}

// segments escapes value and splits it after every newline and at spaces
// so that no segment exceeds width where a space allows it.
func segments(value string, width int) []string {
	var out []string
	for _, line := range strings.SplitAfter(value, "\n") {
		if line == "" {
			continue
		}
		esc := escape(line)
		for len(esc) > width {
			cut := strings.LastIndexByte(esc[:width], ' ')
			if cut < 0 {
				break
			}
			out = append(out, esc[:cut+1])
			esc = esc[cut+1:]
		}
		if esc != "" {
			out = append(out, esc)
		}
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// escape is the inverse of C string unescaping: every control character
// comes out as an escape sequence.
func escape(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\a':
			b.WriteString(`\a`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\v':
			b.WriteString(`\v`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\%03o`, c)
				continue
			}
			b.WriteByte(c)
		}
	}
	return b.String()
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalOccurrences(a, b []Occurrence) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

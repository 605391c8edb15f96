package poproject

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/loopcontext/poproject/internal/po"
)

const tagPrefix = "project="

// Project names an extraction batch. Entries join a project through a tag
// line "project=<name>" in their extracted comment; tags of several projects
// are separate lines.
type Project string

// DefaultProjectName derives a project name from t.
func DefaultProjectName(t time.Time) Project {
	return Project(fmt.Sprintf("auto_%d", t.Unix()))
}

// Validate rejects names that would not survive as a single comment line or
// as part of a file name.
func (p Project) Validate() error {
	if p == "" {
		return newError(KindUsage, "", "a project name is required", ErrProjectRequired)
	}
	if strings.IndexFunc(string(p), func(r rune) bool {
		return unicode.IsSpace(r) || r == '/' || r == '\\'
	}) >= 0 {
		return newError(KindUsage, "", fmt.Sprintf("invalid project name %q: no whitespace or path separators allowed", string(p)), ErrInvalidProject)
	}
	return nil
}

// Tag is the comment line marking membership.
func (p Project) Tag() string {
	return tagPrefix + string(p)
}

// FileName is the name of the standalone project catalog.
func (p Project) FileName() string {
	return "po_project_" + string(p) + ".po"
}

// In reports whether e carries this project's tag.
func (p Project) In(e *po.Entry) bool {
	tag := p.Tag()
	for _, line := range e.CommentLines() {
		if line == tag {
			return true
		}
	}
	return false
}

// Attach sets e's comment to the tag. Callers only attach to entries without
// a comment, so nothing is overwritten.
func (p Project) Attach(e *po.Entry) {
	e.Comment = p.Tag()
}

// Detach removes every line equal to the tag and keeps the other lines,
// stripping surrounding whitespace. A comment left blank is cleared. It reports whether e changed.
func (p Project) Detach(e *po.Entry) bool {
	if !p.In(e) {
		return false
	}
	tag := p.Tag()
	var kept []string
	for _, line := range e.CommentLines() {
		if line != tag {
			kept = append(kept, line)
		}
	}
	e.Comment = strings.TrimSpace(strings.Join(kept, "\n"))
	return true
}

// Projects lists the project names tagged on e.
func Projects(e *po.Entry) []Project {
	var out []Project
	for _, line := range e.CommentLines() {
		if name := strings.TrimPrefix(line, tagPrefix); name != line && name != "" {
			out = append(out, Project(name))
		}
	}
	return out
}

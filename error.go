package poproject

import "errors"

// Kind classifies an Error.
type Kind string

const (
	// KindUsage is a bad or missing argument; nothing was touched.
	KindUsage Kind = "usage"
	// KindValidation is a missing app, locale directory or file.
	KindValidation Kind = "validation"
	// KindParse is a malformed catalog.
	KindParse Kind = "parse"
	// KindIO is a failed read, write or removal.
	KindIO Kind = "io"
)

var (
	ErrUnsupportedLocale = errors.New("unsupported locale")
	ErrProjectRequired   = errors.New("project name required")
	ErrInvalidProject    = errors.New("invalid project name")
	ErrAppRequired       = errors.New("app required")
	ErrInputRequired     = errors.New("input file required")
	ErrUnknownApp        = errors.New("unknown app")
	ErrAppNotFound       = errors.New("app directory not found")
	ErrLocaleNotFound    = errors.New("locale directory not found")
	ErrCatalogNotFound   = errors.New("catalog not found")
	ErrInputNotFound     = errors.New("input file not found")
	ErrNoExtractCommand  = errors.New("no extract command configured")
)

// Error is the error type every operation fails with. ErrorPath is the file
// or directory involved, empty when none is.
type Error interface {
	Error() string
	Unwrap() error
	ErrorKind() Kind
	ErrorPath() string
}

type DefaultError struct {
	err     error
	message string
	kind    Kind
	path    string
}

func (e *DefaultError) Error() string {
	return e.message
}

func (e *DefaultError) Unwrap() error {
	return e.err
}

func (e *DefaultError) ErrorKind() Kind {
	return e.kind
}

func (e *DefaultError) ErrorPath() string {
	return e.path
}

func newError(kind Kind, path string, message string, err error) error {
	return &DefaultError{kind: kind, path: path, message: message, err: err}
}

// KindOf returns the Kind of err, or "" when err is not an Error.
func KindOf(err error) Kind {
	var e Error
	if errors.As(err, &e) {
		return e.ErrorKind()
	}
	return ""
}

package filter

import (
	"errors"
	"strings"
)

var (
	// ErrMalformedFilter is returned when a filter does not match the grammar:
	// wrong shape, missing operator argument or an unsupported literal.
	ErrMalformedFilter = errors.New("malformed filter")
	// ErrInvalidOperator is returned for unknown or conflicting operator keys.
	ErrInvalidOperator = errors.New("invalid operator")
	// ErrEmptyCombinator is returned for $and/$or with zero children.
	ErrEmptyCombinator = errors.New("empty combinator")
	// ErrTypeMismatch is returned when an operator is applied to a literal
	// type it cannot support, e.g. $gt on a string.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrInvalidPattern is returned for a regular expression that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)

// ParseError describes where and why a filter was rejected.
//
// Err is always one of the sentinel errors of this package, so callers can
// classify failures with errors.Is.
type ParseError struct {
	// Path locates the offending node, e.g. "$and[1].year". Empty for the root.
	Path string
	// Op is the operator being parsed, if any.
	Op string
	// Detail is a human readable explanation.
	Detail string
	// Err is the sentinel classification.
	Err error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("filter: ")
	b.WriteString(e.Err.Error())
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.Op != "" {
		b.WriteString(" (")
		b.WriteString(e.Op)
		b.WriteString(")")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseErr(sentinel error, path, op, detail string) error {
	return &ParseError{Path: path, Op: op, Detail: detail, Err: sentinel}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

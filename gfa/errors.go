package gfa

import (
	"fmt"
	"strings"
)

const maxRawInError = 120

// ParseError describes a record line that could not be parsed.
//
// Line is the 1-based line number when the caller knows it (LineReader users such as
// the index builder fill it in), otherwise 0.
type ParseError struct {
	Line   int
	Offset int64
	Field  string
	Raw    string
	Err    error
}

func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString("gfa: ")
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d ", e.Line)
	}
	fmt.Fprintf(&b, "(offset %d)", e.Offset)
	if e.Field != "" {
		fmt.Fprintf(&b, " field %s", e.Field)
	}
	fmt.Fprintf(&b, ": %v", e.Err)
	if e.Raw != "" {
		fmt.Fprintf(&b, " in %q", e.Raw)
	}

	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(text []byte, offset int64, field string, err error) *ParseError {
	return &ParseError{
		Offset: offset,
		Field:  field,
		Raw:    rawSnippet(text),
		Err:    err,
	}
}

func rawSnippet(text []byte) string {
	if len(text) > maxRawInError {
		return string(text[:maxRawInError]) + "..."
	}

	return string(text)
}

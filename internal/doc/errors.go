package doc

import (
	"errors"
	"fmt"
)

// ErrMalformedDocument indicates the source text violates the cheat sheet
// structure: an unterminated fence, a duplicate section title, or broken
// frontmatter.
var ErrMalformedDocument = errors.New("malformed document")

// ErrSourceUnavailable indicates the source could not be read at all.
var ErrSourceUnavailable = errors.New("source unavailable")

// ParseError describes one structural fault with enough context to fix the
// source: origin name, 1-based line, and the section title when known.
type ParseError struct {
	Name    string
	Line    int
	Section string
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("%s:%d: section %q: %s", e.Name, e.Line, e.Section, e.Reason)
	}
	return fmt.Sprintf("%s:%d: %s", e.Name, e.Line, e.Reason)
}

// Unwrap yields ErrMalformedDocument so callers can match the error kind
// with errors.Is without caring about the specific fault.
func (e *ParseError) Unwrap() error { return ErrMalformedDocument }

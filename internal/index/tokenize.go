// Package index derives the immutable keyword → snippet lookup structure
// from a parsed document. Build runs once per document generation; the
// result is never mutated, so any number of readers can share it without
// locking.
package index

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// minTokenLen drops noise tokens; single characters carry no lookup value.
const minTokenLen = 2

// Tokenize NFKC-normalizes s, lowercases it, and splits on every
// non-alphanumeric boundary, discarding tokens shorter than minTokenLen
// runes. The query engine uses this same function, so queries and index
// always agree on normalization.
func Tokenize(s string) []string {
	s = strings.ToLower(norm.NFKC.String(s))
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenLen {
			out = append(out, f)
		}
	}
	return out
}

// Package query ranks indexed snippets against free-form queries.
package query

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/doc"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/index"
)

// Result is one ranked snippet. Score counts the query keywords the
// snippet matched; TitleHit marks snippets served because the query
// equals their section title.
type Result struct {
	Snippet  *doc.Snippet
	Score    int
	TitleHit bool
	Why      string
}

// Search ranks snippets for q. Snippets of a section whose title equals
// q (case-insensitive) come first in document order; the rest follow by
// descending keyword overlap, ties kept in document order. A blank query
// or one matching nothing yields an empty, non-nil slice. limit caps the
// result when positive.
func Search(idx *index.Index, q string, limit int) []Result {
	out := []Result{}
	q = strings.TrimSpace(q)
	if q == "" {
		return out
	}

	// Keyword overlap per snippet, via the posting lists.
	counts := make(map[*doc.Snippet]int)
	matched := make(map[*doc.Snippet][]string)
	for _, tok := range uniqTokens(q) {
		for _, s := range idx.Lookup(tok) {
			counts[s]++
			matched[s] = append(matched[s], tok)
		}
	}

	titleSec := idx.Section(q)
	if titleSec != nil {
		for _, s := range titleSec.Snippets {
			out = append(out, Result{
				Snippet:  s,
				Score:    counts[s],
				TitleHit: true,
				Why:      "section title",
			})
		}
	}

	// Walk the document in order so equal scores keep document order.
	var rest []Result
	for _, sec := range idx.Doc().Sections {
		if sec == titleSec {
			continue
		}
		for _, s := range sec.Snippets {
			if counts[s] == 0 {
				continue
			}
			rest = append(rest, Result{
				Snippet: s,
				Score:   counts[s],
				Why:     "keywords: " + strings.Join(matched[s], ", "),
			})
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return rest[i].Score > rest[j].Score
	})
	out = append(out, rest...)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Suggest returns up to max section titles fuzzily matching q, best
// first. Suggestions are advisory output for misses; they never feed
// into Search ranking.
func Suggest(idx *index.Index, q string, max int) []string {
	q = strings.TrimSpace(q)
	if q == "" || max <= 0 {
		return nil
	}
	matches := fuzzy.Find(q, idx.Titles())
	if len(matches) > max {
		matches = matches[:max]
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}

// uniqTokens tokenizes q the way the index does and drops duplicates
// while keeping query order.
func uniqTokens(q string) []string {
	toks := index.Tokenize(q)
	seen := make(map[string]struct{}, len(toks))
	out := toks[:0]
	for _, t := range toks {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

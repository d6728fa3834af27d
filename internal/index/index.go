package index

import (
	"sort"
	"strings"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/doc"
)

// Index maps normalized keywords to the snippets whose section title or
// content contains them. It is fully derived from its document: built once,
// read-only afterwards, rebuilt from scratch whenever the source changes.
type Index struct {
	doc      *doc.Document
	byTitle  map[string]*doc.Section
	postings map[string][]*doc.Snippet
	snippets int
}

// Stats summarizes an index for doctor and the health endpoint.
type Stats struct {
	Sections int `json:"sections"`
	Snippets int `json:"snippets"`
	Keywords int `json:"keywords"`
}

// Build derives the index for d. Keywords come from section titles and
// from snippet text and notes. A keyword maps to the set of matching
// snippets (duplicates collapse), and every posting list is in document
// order, so ranking ties resolve deterministically.
func Build(d *doc.Document) *Index {
	idx := &Index{
		doc:      d,
		byTitle:  make(map[string]*doc.Section, len(d.Sections)),
		postings: make(map[string][]*doc.Snippet),
	}

	for _, sec := range d.Sections {
		idx.byTitle[foldTitle(sec.Title)] = sec
		titleTokens := Tokenize(sec.Title)

		for _, sn := range sec.Snippets {
			idx.snippets++

			uniq := make(map[string]struct{})
			for _, tok := range titleTokens {
				uniq[tok] = struct{}{}
			}
			for _, tok := range Tokenize(sn.Text) {
				uniq[tok] = struct{}{}
			}
			for _, tok := range Tokenize(sn.Note) {
				uniq[tok] = struct{}{}
			}
			for tok := range uniq {
				idx.postings[tok] = append(idx.postings[tok], sn)
			}
		}
	}

	return idx
}

// Doc returns the document this index was built from.
func (x *Index) Doc() *doc.Document { return x.doc }

// Lookup returns the snippets containing token, in document order. The
// returned slice is shared; callers must not modify it. Unknown tokens
// yield nil.
func (x *Index) Lookup(token string) []*doc.Snippet {
	return x.postings[token]
}

// Section returns the section whose title matches (case-folded, exact),
// or nil.
func (x *Index) Section(title string) *doc.Section {
	return x.byTitle[foldTitle(title)]
}

// Titles returns the section titles in document order.
func (x *Index) Titles() []string { return x.doc.Titles() }

// Keywords returns every indexed keyword, sorted.
func (x *Index) Keywords() []string {
	out := make([]string, 0, len(x.postings))
	for tok := range x.postings {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// Stats returns the index summary counters.
func (x *Index) Stats() Stats {
	return Stats{
		Sections: len(x.doc.Sections),
		Snippets: x.snippets,
		Keywords: len(x.postings),
	}
}

func foldTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// Package doc models the cheat sheet: titled sections of tagged snippets,
// parsed once from Markdown and read-only for the rest of the process.
package doc

import (
	"sort"
	"strings"
)

// Meta holds the optional YAML frontmatter of a cheat sheet.
type Meta struct {
	Title   string   `yaml:"title,omitempty" json:"title,omitempty"`
	Version string   `yaml:"version,omitempty" json:"version,omitempty"`
	Source  string   `yaml:"source,omitempty" json:"source,omitempty"`
	Tags    []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// IsZero reports whether no frontmatter field is set.
func (m Meta) IsZero() bool {
	return m.Title == "" && m.Version == "" && m.Source == "" && len(m.Tags) == 0
}

// Document is one parsed cheat sheet.
type Document struct {
	// Name labels the origin (file path, "stdin", or the embedded copy)
	// in errors and stats output.
	Name     string     `json:"name"`
	Meta     Meta       `json:"meta"`
	Sections []*Section `json:"sections"`

	// Loose counts fenced blocks found before the first heading. They are
	// not part of any Section and are dropped from the model; doctor
	// reports them as a lint warning.
	Loose int `json:"-"`
}

// Section is a titled grouping of snippets. Ordinal preserves document
// order; Level is the ATX heading depth.
type Section struct {
	Title    string     `json:"title"`
	Ordinal  int        `json:"ordinal"`
	Level    int        `json:"level"`
	Line     int        `json:"line"`
	Snippets []*Snippet `json:"snippets"`
}

// Snippet is one fenced example block. Info preserves the verbatim fence
// tag for display and re-serialization; Lang is its canonical
// classification. Snippet text is illustrative reference material: it is
// rendered, never executed.
type Snippet struct {
	Section *Section `json:"-"`
	Seq     int      `json:"seq"`
	Line    int      `json:"line"`
	Lang    Lang     `json:"lang"`
	Info    string   `json:"info,omitempty"`
	Text    string   `json:"text"`
	Note    string   `json:"note,omitempty"`
}

// Tag returns the language tag to display: the verbatim fence tag when the
// source declared one, otherwise the canonical classification.
func (s *Snippet) Tag() string {
	if s.Info != "" {
		return s.Info
	}
	return string(s.Lang)
}

// Languages returns the distinct classified languages of the section's
// snippets, sorted.
func (s *Section) Languages() []string {
	seen := make(map[string]struct{}, 4)
	for _, sn := range s.Snippets {
		seen[string(sn.Lang)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for l := range seen {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Section returns the section whose title matches (case-folded, exact),
// or nil.
func (d *Document) Section(title string) *Section {
	want := strings.TrimSpace(title)
	for _, s := range d.Sections {
		if strings.EqualFold(s.Title, want) {
			return s
		}
	}
	return nil
}

// Titles returns the section titles in document order.
func (d *Document) Titles() []string {
	out := make([]string, len(d.Sections))
	for i, s := range d.Sections {
		out[i] = s.Title
	}
	return out
}

// SnippetCount returns the total number of snippets across all sections.
func (d *Document) SnippetCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Snippets)
	}
	return n
}

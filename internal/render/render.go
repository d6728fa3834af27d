// Package render turns sections, snippets and search results into
// terminal output. Three styles are supported: plain (raw text, safe
// for pipes), pretty (markdown rendered by glamour) and json. Snippet
// text is always emitted verbatim with its original fence tag; nothing
// in this package ever evaluates snippet content.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/glamour"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/doc"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/query"
)

// Style selects an output format.
type Style string

const (
	StylePlain  Style = "plain"
	StylePretty Style = "pretty"
	StyleJSON   Style = "json"
)

// ParseStyle maps a user-supplied style name to a Style. The empty
// string means plain.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return StylePlain, nil
	case "pretty":
		return StylePretty, nil
	case "json":
		return StyleJSON, nil
	default:
		return "", fmt.Errorf("unknown style %q (valid: plain, pretty, json)", s)
	}
}

// Renderer writes documents, sections and results to out in one style.
type Renderer struct {
	out   io.Writer
	style Style
	wrap  int
}

// New returns a Renderer writing to out.
func New(out io.Writer, style Style) *Renderer {
	return &Renderer{out: out, style: style, wrap: 100}
}

// Section writes one section with all of its snippets.
func (r *Renderer) Section(sec *doc.Section) error {
	switch r.style {
	case StyleJSON:
		return r.encode(snippetsJSON(sec.Snippets))
	case StylePretty:
		return r.glamour(markdownSnippets(sec.Title, sec.Snippets))
	default:
		fmt.Fprintf(r.out, "=== %s ===\n", sec.Title)
		for _, sn := range sec.Snippets {
			r.plainSnippet(sn)
		}
		return nil
	}
}

// Results writes ranked search results. An empty slice still produces
// valid output in the json style ("[]") and nothing in the others.
func (r *Renderer) Results(results []query.Result) error {
	switch r.style {
	case StyleJSON:
		out := make([]resultJSON, 0, len(results))
		for _, res := range results {
			out = append(out, resultJSON{
				snippetJSON: oneSnippetJSON(res.Snippet),
				Score:       res.Score,
				TitleMatch:  res.TitleHit,
				Why:         res.Why,
			})
		}
		return r.encode(out)
	case StylePretty:
		return r.glamour(markdownResults(results))
	default:
		for _, res := range results {
			fmt.Fprintf(r.out, "\n● %s (%s)\n", res.Snippet.Section.Title, res.Why)
			r.plainSnippet(res.Snippet)
		}
		return nil
	}
}

// Overview writes the section table of a document: title, snippet count
// and the languages present per section.
func (r *Renderer) Overview(d *doc.Document) error {
	switch r.style {
	case StyleJSON:
		type row struct {
			Title     string   `json:"title"`
			Level     int      `json:"level"`
			Line      int      `json:"line"`
			Snippets  int      `json:"snippets"`
			Languages []string `json:"languages"`
		}
		rows := make([]row, 0, len(d.Sections))
		for _, sec := range d.Sections {
			rows = append(rows, row{
				Title:     sec.Title,
				Level:     sec.Level,
				Line:      sec.Line,
				Snippets:  len(sec.Snippets),
				Languages: sec.Languages(),
			})
		}
		return r.encode(rows)
	case StylePretty:
		var sb strings.Builder
		sb.WriteString("| Section | Snippets | Languages |\n")
		sb.WriteString("|---|---|---|\n")
		for _, sec := range d.Sections {
			fmt.Fprintf(&sb, "| %s | %d | %s |\n",
				sec.Title, len(sec.Snippets), strings.Join(sec.Languages(), ", "))
		}
		return r.glamour(sb.String())
	default:
		tw := tabwriter.NewWriter(r.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "TITLE\tSNIPPETS\tLANGUAGES")
		for _, sec := range d.Sections {
			fmt.Fprintf(tw, "%s\t%d\t%s\n",
				sec.Title, len(sec.Snippets), strings.Join(sec.Languages(), ", "))
		}
		return tw.Flush()
	}
}

func (r *Renderer) plainSnippet(sn *doc.Snippet) {
	if sn.Note != "" {
		fmt.Fprintf(r.out, "\n[%s] %s\n", sn.Tag(), sn.Note)
	} else {
		fmt.Fprintf(r.out, "\n[%s]\n", sn.Tag())
	}
	if sn.Text != "" {
		fmt.Fprintln(r.out, sn.Text)
	}
}

func (r *Renderer) encode(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) glamour(md string) error {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(r.wrap),
	)
	if err != nil {
		return fmt.Errorf("cannot initialize markdown renderer: %w", err)
	}
	rendered, err := tr.Render(md)
	if err != nil {
		return fmt.Errorf("cannot render markdown: %w", err)
	}
	_, err = io.WriteString(r.out, rendered)
	return err
}

// markdownSnippets rebuilds a markdown fragment for one section, keeping
// each snippet's original fence tag.
func markdownSnippets(title string, snips []*doc.Snippet) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n", title)
	for _, sn := range snips {
		sb.WriteString("\n")
		if sn.Note != "" {
			fmt.Fprintf(&sb, "%s\n\n", sn.Note)
		}
		fmt.Fprintf(&sb, "```%s\n", sn.Tag())
		if sn.Text != "" {
			sb.WriteString(sn.Text)
			sb.WriteString("\n")
		}
		sb.WriteString("```\n")
	}
	return sb.String()
}

func markdownResults(results []query.Result) string {
	var sb strings.Builder
	for i, res := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "## %s\n\n_%s_\n", res.Snippet.Section.Title, res.Why)
		if res.Snippet.Note != "" {
			fmt.Fprintf(&sb, "\n%s\n", res.Snippet.Note)
		}
		fmt.Fprintf(&sb, "\n```%s\n", res.Snippet.Tag())
		if res.Snippet.Text != "" {
			sb.WriteString(res.Snippet.Text)
			sb.WriteString("\n")
		}
		sb.WriteString("```\n")
	}
	return sb.String()
}

type snippetJSON struct {
	Section string `json:"section"`
	Seq     int    `json:"seq"`
	Line    int    `json:"line"`
	Lang    string `json:"lang"`
	Info    string `json:"info,omitempty"`
	Note    string `json:"note,omitempty"`
	Text    string `json:"text"`
}

type resultJSON struct {
	snippetJSON
	Score      int    `json:"score"`
	TitleMatch bool   `json:"title_match"`
	Why        string `json:"why"`
}

func oneSnippetJSON(sn *doc.Snippet) snippetJSON {
	return snippetJSON{
		Section: sn.Section.Title,
		Seq:     sn.Seq,
		Line:    sn.Line,
		Lang:    string(sn.Lang),
		Info:    sn.Info,
		Note:    sn.Note,
		Text:    sn.Text,
	}
}

func snippetsJSON(snips []*doc.Snippet) []snippetJSON {
	out := make([]snippetJSON, 0, len(snips))
	for _, sn := range snips {
		out = append(out, oneSnippetJSON(sn))
	}
	return out
}

package doc

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// WriteMarkdown re-serializes the document: frontmatter, headings, snippet
// notes and fenced blocks, in original order and with each snippet's
// original fence tag. Parsing the output yields the same section ordering,
// titles and tags as the input.
func (d *Document) WriteMarkdown(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if !d.Meta.IsZero() {
		data, err := yaml.Marshal(d.Meta)
		if err != nil {
			return fmt.Errorf("cannot marshal frontmatter: %w", err)
		}
		fmt.Fprintf(bw, "---\n%s---\n", data)
	}

	for i, sec := range d.Sections {
		if i > 0 || !d.Meta.IsZero() {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "%s %s\n", strings.Repeat("#", sec.Level), sec.Title)
		for _, sn := range sec.Snippets {
			fmt.Fprintln(bw)
			if sn.Note != "" {
				fmt.Fprintf(bw, "%s\n\n", sn.Note)
			}
			fmt.Fprintf(bw, "```%s\n", sn.Info)
			if sn.Text != "" {
				fmt.Fprintln(bw, sn.Text)
			}
			fmt.Fprintln(bw, "```")
		}
	}

	return bw.Flush()
}

// Markdown returns the re-serialized document as a string.
func (d *Document) Markdown() string {
	var sb strings.Builder
	_ = d.WriteMarkdown(&sb)
	return sb.String()
}

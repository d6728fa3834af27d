package doc

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var patterns = struct {
	heading   *regexp.Regexp
	fenceOpen *regexp.Regexp
}{
	heading:   regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`),
	fenceOpen: regexp.MustCompile("^```([\\w.+-]*)(?:\\s+title:\"([^\"]*)\")?\\s*$"),
}

// ParseFile opens and parses a cheat sheet from disk. A file that cannot be
// opened or read reports ErrSourceUnavailable; structural faults come back
// as *ParseError wrapping ErrMalformedDocument.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open %s: %v", ErrSourceUnavailable, path, err)
	}
	defer f.Close()
	return Parse(f, path)
}

// Parse reads one cheat sheet from r. name labels the origin in errors and
// stats output. Parsing is a pure transformation: it either returns a
// complete document or an error, never a partial model.
func Parse(r io.Reader, name string) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read %s: %v", ErrSourceUnavailable, name, err)
	}

	content := strings.TrimPrefix(string(raw), "﻿")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")

	d := &Document{Name: name}

	body, offset, err := splitFrontmatter(lines, &d.Meta)
	if err != nil {
		return nil, &ParseError{Name: name, Line: 1, Reason: fmt.Sprintf("invalid frontmatter: %v", err)}
	}

	// seen maps the folded title of every section to the line of its
	// heading, to reject duplicates with a pointer to the first use.
	seen := make(map[string]int)

	var (
		current *Section

		inFence    bool
		fenceLine  int
		fenceInfo  string
		fenceTitle string
		fenceBody  []string

		// lastProse is the nearest preceding non-empty prose line; it
		// becomes the next snippet's note unless the fence carries an
		// explicit title:"..." attribute.
		lastProse string
	)

	for i, line := range body {
		n := offset + i

		if inFence {
			if strings.TrimRight(line, " \t") == "```" {
				snip := &Snippet{
					Seq:  -1,
					Line: fenceLine,
					Lang: ClassifyLang(fenceInfo),
					Info: fenceInfo,
					Text: strings.Join(fenceBody, "\n"),
					Note: fenceTitle,
				}
				if snip.Note == "" {
					snip.Note = lastProse
				}
				if current == nil {
					d.Loose++
				} else {
					snip.Section = current
					snip.Seq = len(current.Snippets)
					current.Snippets = append(current.Snippets, snip)
				}
				inFence = false
				fenceBody = nil
				lastProse = ""
				continue
			}
			fenceBody = append(fenceBody, line)
			continue
		}

		if m := patterns.heading.FindStringSubmatch(line); m != nil {
			title := strings.TrimSpace(m[2])
			key := strings.ToLower(title)
			if first, dup := seen[key]; dup {
				return nil, &ParseError{Name: name, Line: n, Section: title,
					Reason: fmt.Sprintf("duplicate section title (first defined at line %d)", first)}
			}
			seen[key] = n
			current = &Section{Title: title, Ordinal: len(d.Sections), Level: len(m[1]), Line: n}
			d.Sections = append(d.Sections, current)
			lastProse = ""
			continue
		}

		if strings.HasPrefix(line, "```") {
			inFence = true
			fenceLine = n
			fenceInfo, fenceTitle = parseFenceInfo(line)
			fenceBody = nil
			continue
		}

		if t := strings.TrimSpace(line); t != "" {
			lastProse = t
		}
	}

	if inFence {
		pe := &ParseError{Name: name, Line: fenceLine, Reason: "unterminated code fence"}
		if current != nil {
			pe.Section = current.Title
		}
		return nil, pe
	}

	return d, nil
}

// splitFrontmatter strips an optional leading YAML frontmatter block
// (delimited by --- lines) and unmarshals it into meta. It returns the
// remaining lines and the 1-based line number of the first one. A lone
// opening --- with no closing delimiter is not frontmatter; the document
// is returned untouched.
func splitFrontmatter(lines []string, meta *Meta) ([]string, int, error) {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return lines, 1, nil
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t") != "---" {
			continue
		}
		text := strings.Join(lines[1:i], "\n")
		if err := yaml.Unmarshal([]byte(text), meta); err != nil {
			return nil, 0, err
		}
		return lines[i+1:], i + 2, nil
	}
	return lines, 1, nil
}

// parseFenceInfo extracts the info word and the optional title:"..."
// attribute from a fence opening line. Lines with attributes the pattern
// does not know keep their first word as the info tag so that an exotic
// fence still opens (and closes) as a fence.
func parseFenceInfo(line string) (info, title string) {
	if m := patterns.fenceOpen.FindStringSubmatch(line); m != nil {
		return m[1], m[2]
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, "```"))
	if fields := strings.Fields(rest); len(fields) > 0 {
		return fields[0], ""
	}
	return "", ""
}

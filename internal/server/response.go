package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/doc"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/index"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/query"
)

// envelope wraps every response body. Exactly one of Data and Error is
// set.
type envelope struct {
	Data  any        `json:"data,omitempty"`
	Error *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Kind        string   `json:"kind"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

func applySuccess(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(envelope{Data: data})
}

func applyError(c *fiber.Ctx, status int, kind, message string, suggestions ...string) error {
	return c.Status(status).JSON(envelope{Error: &errorBody{
		Kind:        kind,
		Message:     message,
		Suggestions: suggestions,
	}})
}

type sectionDTO struct {
	Title     string   `json:"title"`
	Level     int      `json:"level"`
	Line      int      `json:"line"`
	Snippets  int      `json:"snippets"`
	Languages []string `json:"languages"`
}

type snippetDTO struct {
	Section string `json:"section"`
	Seq     int    `json:"seq"`
	Line    int    `json:"line"`
	Lang    string `json:"lang"`
	Info    string `json:"info,omitempty"`
	Note    string `json:"note,omitempty"`
	Text    string `json:"text"`
}

type resultDTO struct {
	snippetDTO
	Score      int    `json:"score"`
	TitleMatch bool   `json:"title_match"`
	Why        string `json:"why"`
}

type statsDTO struct {
	Source   string `json:"source"`
	Sheet    string `json:"sheet,omitempty"`
	Version  string `json:"version,omitempty"`
	BuiltAt  string `json:"built_at"`
	Sections int    `json:"sections"`
	Snippets int    `json:"snippets"`
	Keywords int    `json:"keywords"`
}

func toSectionDTOs(d *doc.Document) []sectionDTO {
	out := make([]sectionDTO, 0, len(d.Sections))
	for _, sec := range d.Sections {
		out = append(out, sectionDTO{
			Title:     sec.Title,
			Level:     sec.Level,
			Line:      sec.Line,
			Snippets:  len(sec.Snippets),
			Languages: sec.Languages(),
		})
	}
	return out
}

func toSnippetDTO(sn *doc.Snippet) snippetDTO {
	return snippetDTO{
		Section: sn.Section.Title,
		Seq:     sn.Seq,
		Line:    sn.Line,
		Lang:    string(sn.Lang),
		Info:    sn.Info,
		Note:    sn.Note,
		Text:    sn.Text,
	}
}

func toSnippetDTOs(snips []*doc.Snippet) []snippetDTO {
	out := make([]snippetDTO, 0, len(snips))
	for _, sn := range snips {
		out = append(out, toSnippetDTO(sn))
	}
	return out
}

func toResultDTOs(results []query.Result) []resultDTO {
	out := make([]resultDTO, 0, len(results))
	for _, r := range results {
		out = append(out, resultDTO{
			snippetDTO: toSnippetDTO(r.Snippet),
			Score:      r.Score,
			TitleMatch: r.TitleHit,
			Why:        r.Why,
		})
	}
	return out
}

func toStatsDTO(snap *index.Snapshot) statsDTO {
	st := snap.Index.Stats()
	return statsDTO{
		Source:   snap.Source,
		Sheet:    snap.Doc.Meta.Title,
		Version:  snap.Doc.Meta.Version,
		BuiltAt:  snap.BuiltAt.UTC().Format(time.RFC3339),
		Sections: st.Sections,
		Snippets: st.Snippets,
		Keywords: st.Keywords,
	}
}

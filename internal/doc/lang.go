package doc

import "strings"

// Lang is the canonical language classification of a snippet. Source
// documents tag fences with free-form strings; Lang closes that set to the
// variants the presentation layer handles, with LangOther catching
// everything unrecognized (the verbatim tag stays in Snippet.Info).
type Lang string

const (
	LangShell  Lang = "shell"
	LangPHP    Lang = "php"
	LangBlade  Lang = "blade"
	LangHTML   Lang = "html"
	LangJS     Lang = "js"
	LangCSS    Lang = "css"
	LangSQL    Lang = "sql"
	LangJSON   Lang = "json"
	LangYAML   Lang = "yaml"
	LangConfig Lang = "config"
	LangText   Lang = "text"
	LangOther  Lang = "other"
)

// langAliases maps fence info words to their canonical Lang.
var langAliases = map[string]Lang{
	"sh": LangShell, "bash": LangShell, "zsh": LangShell, "shell": LangShell,
	"console": LangShell, "terminal": LangShell, "cmd": LangShell,
	"php": LangPHP,
	"blade": LangBlade,
	"html": LangHTML, "htm": LangHTML,
	"js": LangJS, "javascript": LangJS,
	"css": LangCSS,
	"sql": LangSQL,
	"json": LangJSON,
	"yaml": LangYAML, "yml": LangYAML,
	"ini": LangConfig, "env": LangConfig, "dotenv": LangConfig,
	"conf": LangConfig, "config": LangConfig, "toml": LangConfig,
	"": LangText, "text": LangText, "plain": LangText, "code": LangText,
	"output": LangText,
}

// ClassifyLang maps a free-form fence info word to its canonical Lang.
// Unknown non-empty tags classify as LangOther.
func ClassifyLang(info string) Lang {
	if l, ok := langAliases[strings.ToLower(strings.TrimSpace(info))]; ok {
		return l
	}
	return LangOther
}

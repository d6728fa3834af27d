package cmd

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/asset"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/config"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/doc"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/index"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/render"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run pre-flight checks on config and cheat sheet",
	Long: `Check that laracheat's configuration parses, the source sheet is
reachable and well-formed, and the index builds. Run this command when
something seems wrong, or before filing a bug report.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	allOK := true
	failD := func(format string, args ...any) {
		printErr("", fmt.Sprintf(format, args...))
		allOK = false
	}

	printSection("laracheat doctor")
	fmt.Println()

	// ── Check 1: config loads and its values make sense ──────────────────────
	fmt.Println("[ config ]")
	cfg, loadErr := config.Load()
	if loadErr != nil {
		failD("cannot load config: %v", loadErr)
	} else {
		cfgPath, _ := config.ConfigPath()
		if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
			printInfo("", "no config file yet; defaults apply (run 'laracheat init')")
		} else {
			printOK("", fmt.Sprintf("valid YAML: %s", cfgPath))
		}
		if _, err := render.ParseStyle(cfg.Style); err != nil {
			failD("%v", err)
		} else {
			style := cfg.Style
			if style == "" {
				style = "plain (default)"
			}
			printOK("", fmt.Sprintf("output style: %s", style))
		}
		if _, _, err := net.SplitHostPort(cfg.Listen); err != nil {
			failD("invalid listen address %q: %v", cfg.Listen, err)
		} else {
			printOK("", fmt.Sprintf("listen address: %s", cfg.Listen))
		}
	}
	fmt.Println()

	// ── Check 2: source resolves and is readable ──────────────────────────────
	fmt.Println("[ source ]")
	var source string
	if loadErr == nil {
		var err error
		source, err = resolveSource(cfg)
		if err != nil {
			failD("cannot resolve source: %v", err)
		} else {
			switch source {
			case asset.Name:
				printInfo("", "using the embedded sheet (run 'laracheat init' or 'laracheat pull' for a local file)")
			case "-":
				printInfo("", "source is stdin")
			default:
				if fi, err := os.Stat(source); err != nil {
					failD("source unreadable: %v", err)
				} else {
					printOK("", fmt.Sprintf("%s (%s)", source, humanBytes(fi.Size())))
				}
			}
		}
	} else {
		printWarn("", "skipped (config not loaded)")
	}
	fmt.Println()

	// ── Check 3: sheet parses ──────────────────────────────────────────────────
	fmt.Println("[ parse ]")
	var d *doc.Document
	switch {
	case source == "":
		printWarn("", "skipped (source not resolved)")
	case source == "-":
		printSkip("", "stdin source; parse check skipped")
	default:
		var err error
		d, err = loadDocument(source)
		if err != nil {
			failD("%v", err)
		} else {
			printOK("", fmt.Sprintf("%d section(s), %d snippet(s)", len(d.Sections), d.SnippetCount()))
			if d.Meta.Title != "" {
				sheet := d.Meta.Title
				if d.Meta.Version != "" {
					sheet += " (" + d.Meta.Version + ")"
				}
				printInfo("", fmt.Sprintf("sheet: %s", sheet))
			}
		}
	}
	fmt.Println()

	// ── Check 4: index builds ──────────────────────────────────────────────────
	fmt.Println("[ index ]")
	if d != nil {
		st := index.Build(d).Stats()
		printOK("", fmt.Sprintf("%d keyword(s) over %d snippet(s)", st.Keywords, st.Snippets))
		if st.Snippets == 0 {
			printWarn("", "sheet has no snippets; search will return nothing")
		}
	} else {
		printWarn("", "skipped (sheet not parsed)")
	}
	fmt.Println()

	// ── Check 5: sheet lint (warnings only) ────────────────────────────────────
	fmt.Println("[ lint ]")
	if d != nil {
		warnings := 0
		if d.Loose > 0 {
			printWarn("", fmt.Sprintf("%d fenced block(s) before the first heading are ignored", d.Loose))
			warnings++
		}
		for _, sec := range d.Sections {
			if len(sec.Snippets) == 0 {
				printInfo(sec.Title, "no snippets (prose only)")
				continue
			}
			for _, sn := range sec.Snippets {
				if sn.Info == "" {
					printWarn(sec.Title, fmt.Sprintf("untagged fence at line %d", sn.Line))
					warnings++
				} else if sn.Lang == doc.LangOther {
					printWarn(sec.Title, fmt.Sprintf("unrecognized tag %q at line %d", sn.Info, sn.Line))
					warnings++
				}
			}
		}
		if warnings == 0 {
			printOK("", "no lint warnings")
		}
	} else {
		printWarn("", "skipped (sheet not parsed)")
	}
	fmt.Println()

	// ── Summary ──────────────────────────────────────────────────────────────────
	fmt.Println("===================")
	if allOK {
		fmt.Println("✓  All checks passed. laracheat is ready to use.")
	} else {
		fmt.Fprintln(os.Stderr, "✗  One or more checks failed. See details above.")
		return fmt.Errorf("doctor found issues")
	}
	return nil
}

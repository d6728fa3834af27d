package cmd

import (
	"bytes"
	"os"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/asset"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/config"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/doc"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/index"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/render"
)

// resolveSource decides which cheat sheet a command reads, in order:
//
//  1. the --source flag ("-" means stdin)
//  2. a source set explicitly in config or environment
//  3. the default path ~/.laracheat/laravel.md, when it exists
//  4. the sheet embedded in the binary
//
// An explicitly configured file that is missing is returned as-is so the
// parser can report it unavailable instead of silently falling back.
func resolveSource(cfg *config.Config) (string, error) {
	if flagSource != "" {
		if flagSource == "-" {
			return flagSource, nil
		}
		return config.ExpandPath(flagSource)
	}

	def, err := config.DefaultConfig()
	if err != nil {
		return "", err
	}
	defSource, err := config.ExpandPath(def.Source)
	if err != nil {
		return "", err
	}
	if cfg.Source != defSource {
		return cfg.Source, nil
	}

	if _, err := os.Stat(cfg.Source); err == nil {
		return cfg.Source, nil
	}
	return asset.Name, nil
}

// loadDocument parses the resolved source into a Document.
func loadDocument(source string) (*doc.Document, error) {
	switch source {
	case "-":
		return doc.Parse(os.Stdin, "stdin")
	case asset.Name:
		return doc.Parse(bytes.NewReader(asset.Default()), asset.Name)
	default:
		return doc.ParseFile(source)
	}
}

// loadSnapshot loads configuration, parses the effective source and builds
// the immutable index most commands query.
func loadSnapshot() (*index.Snapshot, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	source, err := resolveSource(cfg)
	if err != nil {
		return nil, nil, err
	}
	d, err := loadDocument(source)
	if err != nil {
		return nil, nil, err
	}
	return index.NewSnapshot(d, source), cfg, nil
}

// resolveStyle picks the output style: --style flag first, then config.
func resolveStyle(cfg *config.Config) (render.Style, error) {
	s := flagStyle
	if s == "" {
		s = cfg.Style
	}
	return render.ParseStyle(s)
}

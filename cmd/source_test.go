package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/asset"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/config"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/doc"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/render"
)

// resetFlags clears the persistent flag globals for the duration of a test.
func resetFlags(t *testing.T) {
	t.Helper()
	oldSource, oldStyle := flagSource, flagStyle
	flagSource, flagStyle = "", ""
	t.Cleanup(func() { flagSource, flagStyle = oldSource, oldStyle })
}

func isolateTestHome(t *testing.T) string {
	t.Helper()
	oldHome := os.Getenv("HOME")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })
	return home
}

func TestResolveSourceFlagWins(t *testing.T) {
	isolateTestHome(t)
	resetFlags(t)
	flagSource = "/tmp/custom.md"

	cfg, err := config.DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	got, err := resolveSource(cfg)
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if got != "/tmp/custom.md" {
		t.Fatalf("expected flag source, got %q", got)
	}
}

func TestResolveSourceFlagStdin(t *testing.T) {
	isolateTestHome(t)
	resetFlags(t)
	flagSource = "-"

	cfg, err := config.DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	got, err := resolveSource(cfg)
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if got != "-" {
		t.Fatalf("expected stdin marker, got %q", got)
	}
}

func TestResolveSourceConfiguredKeptEvenIfMissing(t *testing.T) {
	isolateTestHome(t)
	resetFlags(t)

	cfg, err := config.DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	// Configured explicitly but absent: the parser must get to report it
	// unavailable instead of a silent fallback to the embedded sheet.
	cfg.Source = "/srv/sheets/laravel.md"

	got, err := resolveSource(cfg)
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if got != "/srv/sheets/laravel.md" {
		t.Fatalf("expected configured source, got %q", got)
	}
}

func TestResolveSourceDefaultFileExists(t *testing.T) {
	home := isolateTestHome(t)
	resetFlags(t)

	def := filepath.Join(home, ".laracheat", "laravel.md")
	if err := os.MkdirAll(filepath.Dir(def), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(def, []byte("# Sheet\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	got, err := resolveSource(cfg)
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if got != def {
		t.Fatalf("expected default path %q, got %q", def, got)
	}
}

func TestResolveSourceFallsBackToEmbedded(t *testing.T) {
	isolateTestHome(t)
	resetFlags(t)

	cfg, err := config.DefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	got, err := resolveSource(cfg)
	if err != nil {
		t.Fatalf("resolveSource: %v", err)
	}
	if got != asset.Name {
		t.Fatalf("expected embedded fallback, got %q", got)
	}
}

func TestResolveStylePrecedence(t *testing.T) {
	resetFlags(t)

	cfg := &config.Config{Style: "pretty"}

	s, err := resolveStyle(cfg)
	if err != nil {
		t.Fatalf("resolveStyle: %v", err)
	}
	if s != render.StylePretty {
		t.Fatalf("expected config style, got %v", s)
	}

	flagStyle = "json"
	s, err = resolveStyle(cfg)
	if err != nil {
		t.Fatalf("resolveStyle: %v", err)
	}
	if s != render.StyleJSON {
		t.Fatalf("expected flag style, got %v", s)
	}

	flagStyle = "sparkly"
	if _, err := resolveStyle(cfg); err == nil {
		t.Fatalf("expected error for unknown style")
	}
}

func TestLoadDocumentEmbedded(t *testing.T) {
	d, err := loadDocument(asset.Name)
	if err != nil {
		t.Fatalf("loadDocument: %v", err)
	}
	if d.Name != asset.Name {
		t.Fatalf("unexpected document name: %q", d.Name)
	}
	if len(d.Sections) == 0 {
		t.Fatalf("embedded sheet has no sections")
	}
}

func TestLoadDocumentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.md")
	body := "## Artisan\n\n```shell\nphp artisan about\n```\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	d, err := loadDocument(path)
	if err != nil {
		t.Fatalf("loadDocument: %v", err)
	}
	if len(d.Sections) != 1 || d.Sections[0].Title != "Artisan" {
		t.Fatalf("unexpected sections: %+v", d.Sections)
	}
}

func TestLoadDocumentMissingFile(t *testing.T) {
	_, err := loadDocument(filepath.Join(t.TempDir(), "nope.md"))
	if !errors.Is(err, doc.ErrSourceUnavailable) {
		t.Fatalf("expected ErrSourceUnavailable, got %v", err)
	}
}

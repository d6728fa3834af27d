package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	oldHome := os.Getenv("HOME")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Cleanup(func() { _ = os.Setenv("HOME", oldHome) })
	// Keep ambient overrides out of the test process.
	for _, k := range []string{EnvSource, EnvUpstream, EnvListen, EnvStyle} {
		t.Setenv(k, "")
	}
	return home
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := filepath.Join(home, ".laracheat", "laravel.md")
	if cfg.Source != want {
		t.Fatalf("Source = %q, want %q", cfg.Source, want)
	}
	if cfg.Style != "plain" {
		t.Fatalf("Style = %q, want plain", cfg.Style)
	}
	if cfg.Listen == "" || cfg.Upstream == "" {
		t.Fatalf("defaults incomplete: %+v", cfg)
	}
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	home := isolateHome(t)

	dir := filepath.Join(home, ".laracheat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	body := "source: ~/sheets/laravel.md\nstyle: json\n"
	if err := os.WriteFile(filepath.Join(dir, "laracheat.yaml"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(home, "sheets", "laravel.md"); cfg.Source != want {
		t.Fatalf("Source = %q, want %q (tilde expanded)", cfg.Source, want)
	}
	if cfg.Style != "json" {
		t.Fatalf("Style = %q, want json", cfg.Style)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Listen != "127.0.0.1:7340" {
		t.Fatalf("Listen = %q, want default", cfg.Listen)
	}
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	home := isolateHome(t)

	dir := filepath.Join(home, ".laracheat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "laracheat.yaml"), []byte("style: json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvListen+"=0.0.0.0:9000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvStyle, "pretty")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Style != "pretty" {
		t.Fatalf("Style = %q, want pretty (process env wins)", cfg.Style)
	}
	if cfg.Listen != "0.0.0.0:9000" {
		t.Fatalf("Listen = %q, want dotenv value", cfg.Listen)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	home := isolateHome(t)

	dir := filepath.Join(home, ".laracheat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "laracheat.yaml"), []byte("source: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error for malformed YAML")
	} else if !strings.Contains(err.Error(), "invalid YAML") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	home := isolateHome(t)

	dir := filepath.Join(home, ".laracheat")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	in := &Config{Source: "/tmp/x.md", Listen: "127.0.0.1:1", Style: "plain", Limit: 5}
	if err := Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != "/tmp/x.md" || cfg.Listen != "127.0.0.1:1" || cfg.Limit != 5 {
		t.Fatalf("round trip mismatch: %+v", cfg)
	}
}

func TestExpandPath(t *testing.T) {
	home := isolateHome(t)

	got, err := ExpandPath("~/notes/sheet.md")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if want := filepath.Join(home, "notes", "sheet.md"); got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}

	got, err = ExpandPath("/abs/path.md")
	if err != nil || got != "/abs/path.md" {
		t.Fatalf("absolute path changed: %q, %v", got, err)
	}
}

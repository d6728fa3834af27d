// Package asset carries the cheat sheet bundled into the binary, so
// queries work out of the box before any init or pull.
package asset

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed laravel.md
var sheet string

// Name labels the embedded sheet in stats and error output.
const Name = "embedded:laravel.md"

// Default returns a fresh copy of the embedded cheat sheet.
func Default() []byte {
	return []byte(sheet)
}

// Install writes the embedded sheet to path, creating parent directories
// as needed. An existing file is left alone unless force is set.
func Install(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("cannot install default sheet: %s already exists", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("cannot stat %s: %w", path, err)
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(sheet), 0o644); err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	return nil
}

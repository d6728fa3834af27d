package asset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/doc"
	"github.com/michaelsholadiran/laravel-cheat-code/internal/index"
)

func TestDefaultParses(t *testing.T) {
	d, err := doc.Parse(bytes.NewReader(Default()), Name)
	require.NoError(t, err, "the bundled sheet must always parse")

	assert.Equal(t, "Laravel Cheat Sheet", d.Meta.Title)
	assert.GreaterOrEqual(t, len(d.Sections), 15)
	assert.Zero(t, d.Loose, "every fence belongs to a section")

	routing := d.Section("Routing")
	require.NotNil(t, routing)
	require.NotEmpty(t, routing.Snippets)
	assert.Contains(t, routing.Snippets[0].Text, "php artisan route:list")
}

func TestDefaultIndexes(t *testing.T) {
	d, err := doc.Parse(bytes.NewReader(Default()), Name)
	require.NoError(t, err)

	idx := index.Build(d)
	st := idx.Stats()
	assert.Greater(t, st.Snippets, 30)
	assert.Greater(t, st.Keywords, 100)
	assert.NotEmpty(t, idx.Lookup("artisan"))
	assert.NotEmpty(t, idx.Lookup("blade"))
}

func TestInstall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheets", "laravel.md")

	require.NoError(t, Install(path, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), data)

	// A second install refuses to clobber unless forced.
	err = Install(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	assert.NoError(t, Install(path, true))
}

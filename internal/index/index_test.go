package index

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/doc"
)

func parseFixture(t *testing.T, src string) *doc.Document {
	t.Helper()
	d, err := doc.Parse(strings.NewReader(strings.ReplaceAll(src, "~~~", "```")), "fixture.md")
	require.NoError(t, err)
	return d
}

const fixture = `# Routing

List every registered route.

~~~shell
php artisan route:list
~~~

~~~php
Route::get('/users', [UserController::class, 'index']);
~~~

# Validation

~~~php
$request->validate(['title' => 'required|max:255']);
~~~
`

func TestTokenize(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"php artisan route:list", []string{"php", "artisan", "route", "list"}},
		{"Route::get('/users')", []string{"route", "get", "users"}},
		{"APP_ENV=local", []string{"app", "env", "local"}},
		{"a b c", nil},
		{"", nil},
		{"  Mixed-CASE Tokens  ", []string{"mixed", "case", "tokens"}},
		{"ﬁle", []string{"file"}}, // NFKC folds the ligature
	}
	for _, c := range cases {
		got := Tokenize(c.in)
		if len(c.want) == 0 {
			assert.Empty(t, got, "input %q", c.in)
			continue
		}
		assert.Equal(t, c.want, got, "input %q", c.in)
	}
}

func TestBuildPostings(t *testing.T) {
	d := parseFixture(t, fixture)
	idx := Build(d)

	// "route" appears in both snippet bodies and in the first snippet's
	// note; postings stay in document order.
	route := idx.Lookup("route")
	require.Len(t, route, 2)
	assert.Equal(t, 0, route[0].Section.Ordinal)
	assert.Equal(t, 0, route[0].Seq)
	assert.Equal(t, 1, route[1].Seq)

	validate := idx.Lookup("validate")
	require.Len(t, validate, 1)
	assert.Equal(t, "Validation", validate[0].Section.Title)

	// Set semantics: "list" occurs in both the body and the note of the
	// first snippet but is posted once.
	list := idx.Lookup("list")
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].Seq)

	assert.Nil(t, idx.Lookup("queue"))
	assert.Nil(t, idx.Lookup("a")) // below the minimum token length
}

func TestBuildStats(t *testing.T) {
	d := parseFixture(t, fixture)
	idx := Build(d)

	st := idx.Stats()
	assert.Equal(t, 2, st.Sections)
	assert.Equal(t, 3, st.Snippets)
	assert.Equal(t, len(idx.Keywords()), st.Keywords)
	assert.Greater(t, st.Keywords, 0)
}

func TestBuildIdempotent(t *testing.T) {
	d := parseFixture(t, fixture)
	a := Build(d)
	b := Build(d)

	require.Equal(t, a.Keywords(), b.Keywords())

	// Compare posting lists by snippet identity (ordinal:seq).
	view := func(x *Index) map[string][]string {
		out := make(map[string][]string)
		for _, tok := range x.Keywords() {
			for _, sn := range x.Lookup(tok) {
				out[tok] = append(out[tok], fmt.Sprintf("%d:%d", sn.Section.Ordinal, sn.Seq))
			}
		}
		return out
	}
	if diff := cmp.Diff(view(a), view(b)); diff != "" {
		t.Fatalf("two builds of the same document differ (-a +b):\n%s", diff)
	}
}

func TestSectionLookup(t *testing.T) {
	idx := Build(parseFixture(t, fixture))
	require.NotNil(t, idx.Section("Routing"))
	assert.Equal(t, "Routing", idx.Section(" routing ").Title)
	assert.Nil(t, idx.Section("Middleware"))
	assert.Equal(t, []string{"Routing", "Validation"}, idx.Titles())
}

func TestHolderSwap(t *testing.T) {
	first := NewSnapshot(parseFixture(t, fixture), "fixture.md")
	h := NewHolder(first)
	require.Same(t, first, h.Load())

	second := NewSnapshot(parseFixture(t, "# Only\n"), "fixture.md")

	// Concurrent readers must only ever observe complete generations.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				snap := h.Load()
				if snap != first && snap != second {
					t.Error("observed an unknown snapshot")
					return
				}
			}
		}()
	}
	h.Swap(second)
	wg.Wait()

	require.Same(t, second, h.Load())
}

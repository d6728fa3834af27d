package index

import (
	"sync/atomic"
	"time"

	"github.com/michaelsholadiran/laravel-cheat-code/internal/doc"
)

// Snapshot pairs a parsed document with the index derived from it: one
// consistent generation of the reference data.
type Snapshot struct {
	Doc     *doc.Document
	Index   *Index
	Source  string
	BuiltAt time.Time
}

// NewSnapshot builds the index for d and stamps the generation.
func NewSnapshot(d *doc.Document, source string) *Snapshot {
	return &Snapshot{
		Doc:     d,
		Index:   Build(d),
		Source:  source,
		BuiltAt: time.Now(),
	}
}

// Holder publishes the active snapshot to concurrent readers. Readers Load
// without locking; a reload builds a complete replacement off to the side
// and Swaps the reference, so in-flight queries always observe a single
// consistent generation. A failed rebuild simply never calls Swap, which
// leaves the previous snapshot active.
type Holder struct {
	cur atomic.Pointer[Snapshot]
}

// NewHolder returns a holder publishing s.
func NewHolder(s *Snapshot) *Holder {
	h := &Holder{}
	h.cur.Store(s)
	return h
}

// Load returns the active snapshot.
func (h *Holder) Load() *Snapshot { return h.cur.Load() }

// Swap publishes next as the active snapshot.
func (h *Holder) Swap(next *Snapshot) { h.cur.Store(next) }

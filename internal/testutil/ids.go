// Package testutil holds deterministic stand-ins for tests.
package testutil

import (
	"fmt"
	"sync"
)

// SequenceIDGenerator hands out predictable ids: prefix-0001, prefix-0002
// and so on. Golden output that contains journal ids stays byte-identical
// across runs.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type SequenceIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceIDGenerator creates a generator. An empty prefix means "merge".
func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	if prefix == "" {
		prefix = "merge"
	}
	return &SequenceIDGenerator{prefix: prefix}
}

// Generate returns the next id.
func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}

// Count returns how many ids have been handed out.
func (g *SequenceIDGenerator) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// Reset starts the sequence over. The next id ends in 0001.
func (g *SequenceIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}

// FixedIDGenerator returns ids from a fixed list in order.
//
// Panics when the list is exhausted, which flags a test that records more
// merges than it declared.
type FixedIDGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedIDGenerator creates a generator over ids.
func NewFixedIDGenerator(ids ...string) *FixedIDGenerator {
	return &FixedIDGenerator{ids: ids}
}

// Generate returns the next id from the list.
func (g *FixedIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.ids) {
		panic(fmt.Sprintf("FixedIDGenerator exhausted after %d ids", len(g.ids)))
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

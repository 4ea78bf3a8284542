package cache

import "sync"

// generations counts the writes seen per key. A read may only fill the cache
// when no write happened on its key since the read started.
type generations[K comparable] struct {
	mu     sync.Mutex
	values map[K]uint64
}

func newGenerations[K comparable]() *generations[K] {
	return &generations[K]{
		values: make(map[K]uint64),
	}
}

func (g *generations[K]) Current(key K) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.values[key]
}

func (g *generations[K]) Bump(keys ...K) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, k := range keys {
		g.values[k]++
	}
}

// IfCurrent runs fill while holding the lock if key is still at generation
// gen, and reports whether it did.
func (g *generations[K]) IfCurrent(key K, gen uint64, fill func()) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.values[key] != gen {
		return false
	}

	fill()

	return true
}

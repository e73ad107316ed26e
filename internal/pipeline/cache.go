package pipeline

import "sync"

// DefaultCacheSize is the number of view models kept per view kind.
const DefaultCacheSize = 64

// memo is a bounded cache that evicts its oldest entry when full.
type memo[V any] struct {
	mu     sync.Mutex
	size   int
	order  []string
	values map[string]V
	hits   int
	misses int
}

func newMemo[V any](size int) *memo[V] {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &memo[V]{size: size, values: make(map[string]V, size)}
}

func (m *memo[V]) get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if ok {
		m.hits++
	} else {
		m.misses++
	}
	return v, ok
}

func (m *memo[V]) put(key string, v V) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok {
		m.values[key] = v
		return
	}
	if len(m.order) >= m.size {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.values, oldest)
	}
	m.order = append(m.order, key)
	m.values[key] = v
}

func (m *memo[V]) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

// CacheStats reports memo hits and misses summed over all view kinds.
type CacheStats struct {
	Hits    int
	Misses  int
	Entries int
}

func (m *memo[V]) stats() CacheStats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return CacheStats{Hits: m.hits, Misses: m.misses, Entries: len(m.values)}
}

func (s CacheStats) add(o CacheStats) CacheStats {
	return CacheStats{Hits: s.Hits + o.Hits, Misses: s.Misses + o.Misses, Entries: s.Entries + o.Entries}
}

package relgraph

import "sync"

// pairKey identifies an unordered file pair; a is always the lexically smaller path.
type pairKey struct {
	a, b string
}

func makePairKey(file1, file2 string) pairKey {
	if file1 > file2 {
		file1, file2 = file2, file1
	}
	return pairKey{a: file1, b: file2}
}

// pairCache memoizes pairwise similarity keyed by the unordered file pair. It
// carries its own lock so similarity lookups stay safe under concurrent readers of
// an otherwise quiescent graph.
type pairCache struct {
	mu sync.RWMutex
	m  map[pairKey]float64
}

func newPairCache() *pairCache {
	return &pairCache{m: make(map[pairKey]float64)}
}

func (c *pairCache) get(k pairKey) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[k]
	return v, ok
}

func (c *pairCache) put(k pairKey, v float64) {
	c.mu.Lock()
	c.m[k] = v
	c.mu.Unlock()
}

// invalidatePath drops every cached pair touching the given file.
func (c *pairCache) invalidatePath(path string) {
	c.mu.Lock()
	for k := range c.m {
		if k.a == path || k.b == path {
			delete(c.m, k)
		}
	}
	c.mu.Unlock()
}

func (c *pairCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

func (c *pairCache) clear() {
	c.mu.Lock()
	c.m = make(map[pairKey]float64)
	c.mu.Unlock()
}

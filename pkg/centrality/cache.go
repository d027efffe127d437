package centrality

import "sync"

// scoreCache memoizes score lookups between mutations. It carries its own
// lock so reads can populate it while holding the engine's read lock.
type scoreCache struct {
	mu sync.RWMutex
	m  map[string]float64
}

func newScoreCache() *scoreCache {
	return &scoreCache{m: make(map[string]float64)}
}

func (c *scoreCache) get(id string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.m[id]
	return s, ok
}

func (c *scoreCache) put(id string, score float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[id] = score
}

func (c *scoreCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[string]float64)
}

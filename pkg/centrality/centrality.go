// Package centrality ranks nodes of a directed graph with the PageRank
// algorithm. Nodes are identified by strings (typically file paths), edges
// are stored as Roaring bitmaps over a dense index, and scores survive until
// the next Calculate call so lookups stay cheap.
package centrality

import (
	"math"
	"path/filepath"
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/avehn/lodestone/pkg/stats"
)

// Engine computes PageRank scores over a directed graph. All methods are safe
// for concurrent use.
type Engine struct {
	mu     sync.RWMutex
	config Config

	ids    []string          // dense index -> node id
	index  map[string]int    // node id -> dense index
	out    []*roaring.Bitmap // out[i] holds the successor indices of node i
	scores []float64

	cache *scoreCache
}

// Option is a functional option for configuring Engine.
type Option func(*Engine)

// WithConfig replaces the entire configuration.
func WithConfig(cfg Config) Option {
	return func(e *Engine) {
		e.config = cfg
	}
}

// WithDamping sets the damping factor (0-1 exclusive).
func WithDamping(d float64) Option {
	return func(e *Engine) {
		if d > 0 && d < 1 {
			e.config.DampingFactor = d
		}
	}
}

// WithMaxIterations caps the number of power iterations.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.config.MaxIterations = n
		}
	}
}

// WithConvergenceThreshold sets the stopping tolerance on the largest
// per-node score change.
func WithConvergenceThreshold(t float64) Option {
	return func(e *Engine) {
		if t > 0 {
			e.config.ConvergenceThreshold = t
		}
	}
}

// WithCaching enables or disables score lookup memoization.
func WithCaching(enabled bool) Option {
	return func(e *Engine) {
		e.config.EnableCaching = enabled
	}
}

// New creates an engine with the default configuration.
func New(opts ...Option) *Engine {
	e := &Engine{
		config: DefaultConfig(),
		index:  make(map[string]int),
		cache:  newScoreCache(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddNode registers a node with the default score of 1.0. Adding a node that
// already exists is a no-op.
func (e *Engine) AddNode(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.addNodeLocked(id)
}

// AddEdge adds a directed edge, creating either endpoint as needed.
// Duplicate edges are ignored.
func (e *Engine) AddEdge(from, to string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f := e.addNodeLocked(from)
	t := e.addNodeLocked(to)
	if e.out[f].CheckedAdd(uint32(t)) {
		e.cache.clear()
	}
}

// BuildFromDependencies loads a dependency map into the graph. Every key
// becomes a node and every listed dependency becomes an outgoing edge from
// its key. Self-references are kept as stated by the caller.
func (e *Engine) BuildFromDependencies(deps map[string][]string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	files := make([]string, 0, len(deps))
	for f := range deps {
		files = append(files, f)
	}
	sort.Strings(files)

	for _, f := range files {
		fi := e.addNodeLocked(f)
		for _, dep := range deps[f] {
			di := e.addNodeLocked(dep)
			e.out[fi].CheckedAdd(uint32(di))
		}
	}
	e.cache.clear()
}

// Calculate runs the power iteration over the current graph and returns
// metrics about the run. Afterwards scores are normalized so the strongest
// node holds exactly 1.0; the result is a relative ranking, not a probability
// distribution.
//
// Each iteration computes, for every node v:
//
//	score(v) = (1-d)/N + d * sum(score(u)/outdeg(u)) + d * danglingMass/N
//
// where the sum runs over nodes u linking to v and danglingMass is the total
// score held by nodes without outgoing edges. Iteration stops when the
// largest per-node change drops below the convergence threshold.
func (e *Engine) Calculate() Metrics {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := len(e.ids)
	if n == 0 {
		return Metrics{}
	}

	// Iterating in sorted id order keeps floating point accumulation, and
	// therefore scores, reproducible regardless of insertion order.
	order := e.sortedOrderLocked()

	outDeg := make([]int, n)
	for i := range e.out {
		outDeg[i] = int(e.out[i].GetCardinality())
	}

	d := e.config.DampingFactor
	base := (1.0 - d) / float64(n)
	initial := 1.0 / float64(n)
	for i := range e.scores {
		e.scores[i] = initial
	}

	next := make([]float64, n)
	iterations := 0
	converged := false
	for iterations < e.config.MaxIterations {
		for i := range next {
			next[i] = base
		}

		for _, u := range order {
			if outDeg[u] > 0 {
				contrib := d * e.scores[u] / float64(outDeg[u])
				it := e.out[u].Iterator()
				for it.HasNext() {
					next[int(it.Next())] += contrib
				}
			} else {
				// Dangling node: its score is shared with every node.
				contrib := d * e.scores[u] / float64(n)
				for v := range next {
					next[v] += contrib
				}
			}
		}

		maxChange := 0.0
		for i := range next {
			if change := math.Abs(next[i] - e.scores[i]); change > maxChange {
				maxChange = change
			}
		}
		e.scores, next = next, e.scores
		iterations++
		if maxChange < e.config.ConvergenceThreshold {
			converged = true
			break
		}
	}

	e.normalizeLocked()
	e.cache.clear()

	edges := e.edgeCountLocked()
	return Metrics{
		TotalNodes:   n,
		TotalEdges:   edges,
		AvgDegree:    float64(edges) / float64(n),
		GraphDensity: density(n, edges),
		Iterations:   iterations,
		Converged:    converged,
	}
}

// Score returns the most recently calculated score for a node, or 0.0 when
// the node is unknown.
func (e *Engine) Score(id string) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if e.config.EnableCaching {
		if s, ok := e.cache.get(id); ok {
			return s
		}
	}
	i, ok := e.index[id]
	if !ok {
		return 0.0
	}
	s := e.scores[i]
	if e.config.EnableCaching {
		e.cache.put(id, s)
	}
	return s
}

// FileScore is Score with path separators normalized to forward slashes, for
// callers that carry OS-specific file paths.
func (e *Engine) FileScore(path string) float64 {
	return e.Score(filepath.ToSlash(path))
}

// TopNodes returns the n highest-ranked nodes in descending score order.
func (e *Engine) TopNodes(n int) []Result {
	e.mu.RLock()
	defer e.mu.RUnlock()

	results := e.rankedLocked()
	if n < 0 {
		n = 0
	}
	if n < len(results) {
		results = results[:n]
	}
	return results
}

// AllResults returns every node ranked in descending score order.
func (e *Engine) AllResults() []Result {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.rankedLocked()
}

// Stats reports structural counts and the spread of current scores.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := len(e.ids)
	if n == 0 {
		return Stats{}
	}
	edges := e.edgeCountLocked()
	lo, hi := stats.Bounds(e.scores)
	return Stats{
		Nodes:     n,
		Edges:     edges,
		AvgDegree: float64(edges) / float64(n),
		MinScore:  lo,
		MaxScore:  hi,
		AvgScore:  stats.Mean(e.scores),
	}
}

// Clear removes all nodes, edges, and scores.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ids = nil
	e.index = make(map[string]int)
	e.out = nil
	e.scores = nil
	e.cache.clear()
}

func (e *Engine) addNodeLocked(id string) int {
	if i, ok := e.index[id]; ok {
		return i
	}
	i := len(e.ids)
	e.index[id] = i
	e.ids = append(e.ids, id)
	e.out = append(e.out, roaring.New())
	e.scores = append(e.scores, 1.0)
	e.cache.clear()
	return i
}

// rankedLocked snapshots all nodes sorted by descending score. NaN sorts
// last so a poisoned score cannot float to the top or break the ordering;
// ties fall back to the node id.
func (e *Engine) rankedLocked() []Result {
	results := make([]Result, 0, len(e.ids))
	for i, id := range e.ids {
		results = append(results, Result{NodeID: id, Score: e.scores[i]})
	}
	sort.Slice(results, func(i, j int) bool {
		si, sj := results[i].Score, results[j].Score
		switch {
		case math.IsNaN(si) && math.IsNaN(sj):
			return results[i].NodeID < results[j].NodeID
		case math.IsNaN(si):
			return false
		case math.IsNaN(sj):
			return true
		case si != sj:
			return si > sj
		default:
			return results[i].NodeID < results[j].NodeID
		}
	})

	maxScore := 1.0
	if len(results) > 0 {
		maxScore = results[0].Score
	}
	for i := range results {
		if maxScore > 0 {
			results[i].NormalizedScore = results[i].Score / maxScore
		}
		results[i].Rank = i + 1
	}
	return results
}

// sortedOrderLocked returns the dense indices ordered by node id.
func (e *Engine) sortedOrderLocked() []int {
	order := make([]int, len(e.ids))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return e.ids[order[a]] < e.ids[order[b]]
	})
	return order
}

func (e *Engine) normalizeLocked() {
	max := 0.0
	for _, s := range e.scores {
		if s > max {
			max = s
		}
	}
	if max > 0 {
		for i := range e.scores {
			e.scores[i] /= max
		}
	}
}

func (e *Engine) edgeCountLocked() int {
	total := 0
	for _, b := range e.out {
		total += int(b.GetCardinality())
	}
	return total
}

// density is edges over n*(n-1). Graphs with fewer than two nodes admit no
// edges, so their density is zero.
func density(n, edges int) float64 {
	if n <= 1 {
		return 0.0
	}
	return float64(edges) / float64(n*(n-1))
}

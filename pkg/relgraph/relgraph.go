// Package relgraph models typed, weighted relationships between the files of a
// codebase, inferred from precomputed semantic tag vectors.
package relgraph

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/avehn/lodestone/pkg/similarity"
)

// Graph owns the file nodes and their inferred relationships. Files are added
// incrementally; edges are built in one explicit batch by InferRelationships, never
// as a side effect of insertion. Mutating methods are not safe for concurrent use;
// hosts that share a Graph across goroutines wrap it in their own lock.
type Graph struct {
	backing *simple.WeightedDirectedGraph
	nodes   map[int64]*FileNode
	ids     map[string]int64
	edges   map[string]map[string]*Relationship
	cache   *pairCache
}

// New creates an empty relationship graph.
func New() *Graph {
	return &Graph{
		backing: simple.NewWeightedDirectedGraph(0, math.Inf(1)),
		nodes:   make(map[int64]*FileNode),
		ids:     make(map[string]int64),
		edges:   make(map[string]map[string]*Relationship),
		cache:   newPairCache(),
	}
}

// AddFile inserts a file with its tag vectors and opaque metadata, returning the
// node id. Re-adding a path with an unchanged vector list refreshes only its
// metadata and returns the existing id. Re-adding with different vectors behaves
// as a fresh insertion for that path: derived features and dependencies are
// recomputed and cached similarities touching the path are dropped. Existing
// edges stay until the next InferRelationships run. Inserting a new path also
// drops any zero scores cached for it while it was unknown.
func (g *Graph) AddFile(file string, vectors []string, metadata map[string]any) int64 {
	if id, ok := g.ids[file]; ok {
		node := g.nodes[id]
		node.Metadata = metadata
		if vectorsEqual(node.Vectors, vectors) {
			return id
		}
		node.Vectors = append([]string(nil), vectors...)
		node.Features = extractFeatures(vectors)
		node.Dependencies = extractDependencies(vectors)
		g.cache.invalidatePath(file)
		return id
	}

	n := g.backing.NewNode()
	g.backing.AddNode(n)
	id := n.ID()
	g.nodes[id] = &FileNode{
		Path:         file,
		Vectors:      append([]string(nil), vectors...),
		Metadata:     metadata,
		Features:     extractFeatures(vectors),
		Dependencies: extractDependencies(vectors),
	}
	g.ids[file] = id
	g.cache.invalidatePath(file)
	return id
}

// Node returns the stored entry for a file.
func (g *Graph) Node(file string) (*FileNode, bool) {
	id, ok := g.ids[file]
	if !ok {
		return nil, false
	}
	return g.nodes[id], true
}

// Files returns every known file path in sorted order.
func (g *Graph) Files() []string {
	return g.sortedPaths()
}

// CalculateSimilarity returns the vector-set similarity between two files, serving
// repeated queries from a cache keyed by the unordered pair. Unknown files score
// 0.0, and the zero is cached like any other result.
func (g *Graph) CalculateSimilarity(file1, file2 string) float64 {
	key := makePairKey(file1, file2)
	if sim, ok := g.cache.get(key); ok {
		return sim
	}

	sim := 0.0
	id1, ok1 := g.ids[file1]
	id2, ok2 := g.ids[file2]
	if ok1 && ok2 {
		sim = similarity.VectorSetSimilarity(g.nodes[id1].Vectors, g.nodes[id2].Vectors)
	}
	g.cache.put(key, sim)
	return sim
}

// InferRelationships rebuilds the edge set: every unordered pair of distinct files
// is scored, and pairs strictly above the 0.2 threshold get a typed relationship in
// both directions. The pass is O(n²) in file count and runs only when called;
// adding files never triggers it. Re-running recomputes every pair, so the edge set
// always reflects the current nodes.
func (g *Graph) InferRelationships() {
	g.removeAllEdges()

	paths := g.sortedPaths()
	for i := 0; i < len(paths); i++ {
		for j := i + 1; j < len(paths); j++ {
			sim := g.CalculateSimilarity(paths[i], paths[j])
			if sim <= relationshipThreshold {
				continue
			}
			rel := newRelationship(paths[i], paths[j], sim)
			g.insertEdge(paths[i], paths[j], &rel)
			g.insertEdge(paths[j], paths[i], &rel)
		}
	}
}

// Relationship returns the stored edge payload from one file to another.
func (g *Graph) Relationship(from, to string) (Relationship, bool) {
	rel, ok := g.edges[from][to]
	if !ok {
		return Relationship{}, false
	}
	return *rel, true
}

// RelatedFiles returns the outgoing relationships of a file ordered by similarity,
// strongest first. Unknown files yield an empty result.
func (g *Graph) RelatedFiles(file string) []RelatedFile {
	targets := g.edges[file]
	related := make([]RelatedFile, 0, len(targets))
	for to, rel := range targets {
		related = append(related, RelatedFile{Path: to, Similarity: rel.SimilarityScore})
	}
	sortRelated(related)
	return related
}

// FindSimilarFiles scores every other file against the query directly, bypassing
// inferred edges and the cache, and keeps those at or above threshold (inclusive),
// ordered strongest first. Unknown query files yield an empty result.
func (g *Graph) FindSimilarFiles(file string, threshold float64) []RelatedFile {
	id, ok := g.ids[file]
	if !ok {
		return nil
	}
	source := g.nodes[id]

	var similar []RelatedFile
	for other, otherID := range g.ids {
		if other == file {
			continue
		}
		sim := similarity.VectorSetSimilarity(source.Vectors, g.nodes[otherID].Vectors)
		if sim >= threshold {
			similar = append(similar, RelatedFile{Path: other, Similarity: sim})
		}
	}
	sortRelated(similar)
	return similar
}

// ShortestPath returns the cheapest chain of files from start to target, where
// traversing an edge costs 1.0 minus its similarity, so more similar files are
// closer. It returns nil when either endpoint is unknown or no chain connects
// them. A file reaches itself through a single-element path.
func (g *Graph) ShortestPath(start, target string) []string {
	startID, ok := g.ids[start]
	if !ok {
		return nil
	}
	targetID, ok := g.ids[target]
	if !ok {
		return nil
	}

	shortest := path.DijkstraFrom(g.backing.Node(startID), g.backing)
	nodes, weight := shortest.To(targetID)
	if len(nodes) == 0 || math.IsInf(weight, 1) {
		return nil
	}

	files := make([]string, len(nodes))
	for i, n := range nodes {
		files[i] = g.nodes[n.ID()].Path
	}
	return files
}

// Stats summarizes the graph. Relationship counts are directed, so each inferred
// pair contributes two.
func (g *Graph) Stats() Stats {
	files := len(g.ids)
	rels := 0
	for _, targets := range g.edges {
		rels += len(targets)
	}

	avg := 0.0
	if files > 0 {
		avg = float64(rels) / float64(files)
	}
	return Stats{
		TotalFiles:                  files,
		TotalRelationships:          rels,
		AverageRelationshipsPerFile: avg,
		CachedPairs:                 g.cache.len(),
	}
}

// Clear removes every node, relationship, and cached similarity.
func (g *Graph) Clear() {
	g.backing = simple.NewWeightedDirectedGraph(0, math.Inf(1))
	g.nodes = make(map[int64]*FileNode)
	g.ids = make(map[string]int64)
	g.edges = make(map[string]map[string]*Relationship)
	g.cache.clear()
}

func (g *Graph) insertEdge(from, to string, rel *Relationship) {
	if g.edges[from] == nil {
		g.edges[from] = make(map[string]*Relationship)
	}
	g.edges[from][to] = rel
	g.backing.SetWeightedEdge(simple.WeightedEdge{
		F: simple.Node(g.ids[from]),
		T: simple.Node(g.ids[to]),
		W: 1.0 - rel.SimilarityScore,
	})
}

func (g *Graph) removeAllEdges() {
	for from, targets := range g.edges {
		for to := range targets {
			g.backing.RemoveEdge(g.ids[from], g.ids[to])
		}
	}
	g.edges = make(map[string]map[string]*Relationship)
}

func (g *Graph) sortedPaths() []string {
	paths := make([]string, 0, len(g.ids))
	for p := range g.ids {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// sortRelated orders by similarity descending with NaN sorted last and ties broken
// by path.
func sortRelated(files []RelatedFile) {
	sort.Slice(files, func(i, j int) bool {
		si, sj := files[i].Similarity, files[j].Similarity
		switch {
		case math.IsNaN(si) && math.IsNaN(sj):
			return files[i].Path < files[j].Path
		case math.IsNaN(si):
			return false
		case math.IsNaN(sj):
			return true
		case si != sj:
			return si > sj
		default:
			return files[i].Path < files[j].Path
		}
	})
}

func vectorsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Package analysis wires corpus documents, the relationship graph, and the
// centrality engine into a single pipeline.
package analysis

import (
	"context"
	"sort"
	"time"

	"github.com/avehn/lodestone/pkg/centrality"
	"github.com/avehn/lodestone/pkg/corpus"
	"github.com/avehn/lodestone/pkg/relgraph"
	"github.com/avehn/lodestone/pkg/stats"
)

// Analyzer assembles corpus documents into ranked analyses.
type Analyzer struct {
	config centrality.Config
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithCentralityConfig overrides the PageRank parameters.
func WithCentralityConfig(cfg centrality.Config) Option {
	return func(a *Analyzer) {
		a.config = cfg
	}
}

// New creates an analyzer with default centrality parameters.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{config: centrality.DefaultConfig()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analysis is the combined result of one pipeline run.
type Analysis struct {
	GeneratedAt time.Time           `json:"generated_at" toon:"generated_at"`
	Graph       relgraph.Stats      `json:"graph" toon:"graph"`
	Centrality  centrality.Metrics  `json:"centrality" toon:"centrality"`
	Ranks       []centrality.Result `json:"ranks" toon:"ranks"`
	Summary     Summary             `json:"summary" toon:"summary"`
}

// Summary condenses an analysis for report footers.
type Summary struct {
	Files         int     `json:"files" toon:"files"`
	Relationships int     `json:"relationships" toon:"relationships"`
	RankedNodes   int     `json:"ranked_nodes" toon:"ranked_nodes"`
	P50Score      float64 `json:"p50_score" toon:"p50_score"`
	P90Score      float64 `json:"p90_score" toon:"p90_score"`
}

// TopN returns the n highest-ranked results.
func (a *Analysis) TopN(n int) []centrality.Result {
	if n < 0 {
		n = 0
	}
	if n > len(a.Ranks) {
		n = len(a.Ranks)
	}
	return a.Ranks[:n]
}

// Graph assembles the relationship graph from a document and infers
// relationships between every pair of files. Progress is reported through a
// context tracker when one is attached via WithTracker.
func (a *Analyzer) Graph(ctx context.Context, doc *corpus.Document) (*relgraph.Graph, error) {
	tracker := TrackerFromContext(ctx)
	if tracker != nil {
		tracker.Begin(len(doc.Files))
	}

	g := relgraph.New()
	for _, f := range doc.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.AddFile(f.Path, f.Tags, f.Metadata)
		if tracker != nil {
			tracker.FileAdded(f.Path)
		}
	}
	if tracker != nil {
		tracker.EnterStage(StageInfer)
	}
	g.InferRelationships()
	return g, nil
}

// Engine builds a centrality engine from the document's dependency mapping,
// falling back to dependency tags embedded in the file vectors when the
// document does not declare one.
func (a *Analyzer) Engine(doc *corpus.Document, g *relgraph.Graph) *centrality.Engine {
	e := centrality.New(centrality.WithConfig(a.config))
	e.BuildFromDependencies(DependencyMap(doc, g))
	return e
}

// Analyze runs the full pipeline: graph assembly, relationship inference,
// PageRank, and summarization.
func (a *Analyzer) Analyze(ctx context.Context, doc *corpus.Document) (*Analysis, error) {
	g, err := a.Graph(ctx, doc)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if tracker := TrackerFromContext(ctx); tracker != nil {
		tracker.EnterStage(StageRank)
	}
	engine := a.Engine(doc, g)
	metrics := engine.Calculate()
	ranks := engine.AllResults()

	scores := make([]float64, len(ranks))
	for i, r := range ranks {
		scores[i] = r.Score
	}
	// Sort ascending for percentile calculation.
	sort.Float64s(scores)
	graphStats := g.Stats()

	return &Analysis{
		GeneratedAt: time.Now().UTC(),
		Graph:       graphStats,
		Centrality:  metrics,
		Ranks:       ranks,
		Summary: Summary{
			Files:         graphStats.TotalFiles,
			Relationships: graphStats.TotalRelationships,
			RankedNodes:   len(ranks),
			P50Score:      stats.Percentile(scores, 50),
			P90Score:      stats.Percentile(scores, 90),
		},
	}, nil
}

// DependencyMap returns the document's explicit dependency mapping when one
// is declared. Otherwise it derives a mapping from the dependency tags of
// the graph's files, dropping empty entries left by stray commas.
func DependencyMap(doc *corpus.Document, g *relgraph.Graph) map[string][]string {
	if doc != nil && len(doc.Dependencies) > 0 {
		return doc.Dependencies
	}

	deps := make(map[string][]string)
	for _, path := range g.Files() {
		node, ok := g.Node(path)
		if !ok {
			continue
		}
		cleaned := make([]string, 0, len(node.Dependencies))
		for _, dep := range node.Dependencies {
			if dep != "" {
				cleaned = append(cleaned, dep)
			}
		}
		deps[path] = cleaned
	}
	return deps
}

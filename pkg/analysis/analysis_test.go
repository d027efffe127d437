package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avehn/lodestone/pkg/centrality"
	"github.com/avehn/lodestone/pkg/corpus"
)

func chainDocument() *corpus.Document {
	return &corpus.Document{
		Files: []corpus.File{
			{Path: "main.go", Tags: []string{"domain: entry", "dependencies: lib.go, utils.go"}},
			{Path: "lib.go", Tags: []string{"domain: library", "dependencies: utils.go"}},
			{Path: "utils.go", Tags: []string{"domain: helpers"}},
		},
	}
}

func TestAnalyze(t *testing.T) {
	a := New()
	result, err := a.Analyze(context.Background(), chainDocument())
	require.NoError(t, err)

	assert.False(t, result.GeneratedAt.IsZero())
	assert.Equal(t, 3, result.Graph.TotalFiles)
	assert.True(t, result.Centrality.Converged)
	require.Len(t, result.Ranks, 3)

	// utils.go is depended on by everything else, so it ranks first.
	assert.Equal(t, "utils.go", result.Ranks[0].NodeID)
	assert.Equal(t, 1, result.Ranks[0].Rank)
	assert.Equal(t, 1.0, result.Ranks[0].NormalizedScore)

	assert.Equal(t, 3, result.Summary.Files)
	assert.Equal(t, 3, result.Summary.RankedNodes)
	assert.GreaterOrEqual(t, result.Summary.P90Score, result.Summary.P50Score)
}

func TestAnalyzeCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Analyze(ctx, chainDocument())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGraphInfersRelationships(t *testing.T) {
	g, err := New().Graph(context.Background(), chainDocument())
	require.NoError(t, err)

	st := g.Stats()
	assert.Equal(t, 3, st.TotalFiles)
	assert.Greater(t, st.TotalRelationships, 0)
}

func TestDependencyMapFallback(t *testing.T) {
	a := New()
	doc := chainDocument()
	g, err := a.Graph(context.Background(), doc)
	require.NoError(t, err)

	deps := DependencyMap(doc, g)
	assert.Equal(t, []string{"lib.go", "utils.go"}, deps["main.go"])
	assert.Equal(t, []string{"utils.go"}, deps["lib.go"])
	assert.Empty(t, deps["utils.go"])
}

func TestDependencyMapExplicitWins(t *testing.T) {
	doc := chainDocument()
	doc.Dependencies = map[string][]string{"other.go": {"main.go"}}

	g, err := New().Graph(context.Background(), doc)
	require.NoError(t, err)

	deps := DependencyMap(doc, g)
	assert.Equal(t, doc.Dependencies, deps)
}

func TestAnalyzeReportsProgress(t *testing.T) {
	var events []Progress
	tracker := NewTracker(func(p Progress) {
		events = append(events, p)
	})
	ctx := WithTracker(context.Background(), tracker)

	_, err := New().Analyze(ctx, chainDocument())
	require.NoError(t, err)

	// One event per ingested file, then one per later stage.
	require.Len(t, events, 5)
	var paths []string
	for i, e := range events[:3] {
		assert.Equal(t, StageGraph, e.Stage)
		assert.Equal(t, i+1, e.Done)
		assert.Equal(t, 3, e.Total)
		paths = append(paths, e.Path)
	}
	assert.Equal(t, []string{"main.go", "lib.go", "utils.go"}, paths)
	assert.Equal(t, StageInfer, events[3].Stage)
	assert.Equal(t, StageRank, events[4].Stage)

	assert.Equal(t, 3, tracker.Done())
	assert.Equal(t, 3, tracker.Total())
}

func TestTrackerFromContextMissing(t *testing.T) {
	assert.Nil(t, TrackerFromContext(context.Background()))
}

func TestTopN(t *testing.T) {
	result, err := New().Analyze(context.Background(), chainDocument())
	require.NoError(t, err)

	assert.Len(t, result.TopN(2), 2)
	assert.Len(t, result.TopN(10), 3)
	assert.Empty(t, result.TopN(0))
	assert.Empty(t, result.TopN(-1))

	top := result.TopN(1)
	require.Len(t, top, 1)
	assert.Equal(t, "utils.go", top[0].NodeID)
}

func TestWithCentralityConfig(t *testing.T) {
	cfg := centrality.DefaultConfig()
	cfg.MaxIterations = 1

	result, err := New(WithCentralityConfig(cfg)).Analyze(context.Background(), chainDocument())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Centrality.Iterations)
	assert.False(t, result.Centrality.Converged)
}

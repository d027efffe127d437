package analysis

import (
	"context"
	"sync/atomic"
)

// Stage identifies a phase of the analysis pipeline.
type Stage string

const (
	StageGraph Stage = "graph" // corpus files entering the relationship graph
	StageInfer Stage = "infer" // pairwise relationship inference
	StageRank  Stage = "rank"  // centrality calculation
)

// Progress is one pipeline progress event. Graph assembly emits an event per
// ingested file with Path set; inference and ranking have no per-file grain
// and emit a single event each when they begin.
type Progress struct {
	Stage Stage
	Done  int
	Total int
	Path  string
}

// ProgressFunc receives pipeline progress events.
type ProgressFunc func(Progress)

// Tracker emits pipeline progress through a callback. It is safe for
// concurrent use.
type Tracker struct {
	done     atomic.Int32
	total    atomic.Int32
	callback ProgressFunc
}

// NewTracker creates a tracker that reports through callback.
func NewTracker(callback ProgressFunc) *Tracker {
	return &Tracker{callback: callback}
}

// Begin records how many corpus files the graph stage will ingest.
func (t *Tracker) Begin(total int) {
	t.total.Store(int32(total))
	t.done.Store(0)
}

// FileAdded marks one corpus file as ingested into the graph.
func (t *Tracker) FileAdded(path string) {
	done := int(t.done.Add(1))
	t.emit(Progress{Stage: StageGraph, Done: done, Total: t.Total(), Path: path})
}

// EnterStage reports the transition into a stage without per-file counting.
func (t *Tracker) EnterStage(stage Stage) {
	t.emit(Progress{Stage: stage, Done: t.Done(), Total: t.Total()})
}

// Done returns the number of files ingested so far.
func (t *Tracker) Done() int {
	return int(t.done.Load())
}

// Total returns the expected file count.
func (t *Tracker) Total() int {
	return int(t.total.Load())
}

func (t *Tracker) emit(p Progress) {
	if t.callback != nil {
		t.callback(p)
	}
}

type trackerKey struct{}

// WithTracker returns a context carrying a progress tracker for Analyze and
// Graph to report through.
func WithTracker(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, trackerKey{}, t)
}

// TrackerFromContext extracts the tracker set by WithTracker, or nil.
func TrackerFromContext(ctx context.Context) *Tracker {
	if t, ok := ctx.Value(trackerKey{}).(*Tracker); ok {
		return t
	}
	return nil
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/avehn/lodestone/internal/cache"
	"github.com/avehn/lodestone/internal/output"
	"github.com/avehn/lodestone/internal/progress"
	"github.com/avehn/lodestone/pkg/analysis"
	"github.com/avehn/lodestone/pkg/config"
	"github.com/avehn/lodestone/pkg/corpus"
	"github.com/avehn/lodestone/pkg/relgraph"
)

// outputFlags returns the flags shared by every data command.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "text",
			Usage:   "Output format: text, json, markdown, toon",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to file",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "Disable caching",
		},
	}
}

// getPaths returns paths from args, defaulting to ["."]
func getPaths(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// loadConfig resolves configuration and applies global flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	if path := c.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
		cfg = loaded
	} else {
		cfg = config.LoadOrDefault()
	}

	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}
	if c.Bool("verbose") {
		cfg.Output.Verbose = true
	}
	return cfg, nil
}

// outputFormat prefers the command-line flag over the config file.
func outputFormat(c *cli.Context, cfg *config.Config) output.Format {
	if c.IsSet("format") {
		return output.ParseFormat(c.String("format"))
	}
	if cfg.Output.Format != "" {
		return output.ParseFormat(cfg.Output.Format)
	}
	return output.ParseFormat(c.String("format"))
}

// newFormatter builds a formatter from the resolved format and output flags.
func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	return output.NewFormatter(outputFormat(c, cfg), c.String("output"), cfg.Output.Color)
}

// progressTracker returns a live tracker for text output and a disabled one
// for machine-readable formats, so scripted runs keep a quiet stderr.
func progressTracker(c *cli.Context, cfg *config.Config, label string, total int) *progress.Tracker {
	if outputFormat(c, cfg) != output.FormatText {
		return progress.Disabled()
	}
	return progress.NewTracker(label, total)
}

// progressSpinner is progressTracker for phases without a known total.
func progressSpinner(c *cli.Context, cfg *config.Config, label string) *progress.Tracker {
	if outputFormat(c, cfg) != output.FormatText {
		return progress.Disabled()
	}
	return progress.NewSpinner(label)
}

// loadCorpus resolves and loads corpus documents from the given paths.
// Directories are searched for *.corpus.{yaml,yml,json,toml} files; explicit
// file paths are used as-is. Returns the merged document and the document
// paths that produced it.
func loadCorpus(c *cli.Context, cfg *config.Config, paths []string) (*corpus.Document, []string, error) {
	var docPaths []string
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot read %s: %w", path, err)
		}
		if info.IsDir() {
			found, err := corpus.FindDocuments(abs, cfg.ShouldExclude)
			if err != nil {
				return nil, nil, fmt.Errorf("searching %s: %w", path, err)
			}
			docPaths = append(docPaths, found...)
		} else {
			docPaths = append(docPaths, abs)
		}
	}

	if len(docPaths) == 0 {
		return nil, nil, fmt.Errorf("no corpus documents found (expected *.corpus.yaml, *.corpus.json, or *.corpus.toml)")
	}

	tracker := progressTracker(c, cfg, "Loading corpus documents...", len(docPaths))
	docs, err := corpus.LoadAllWithProgress(c.Context, docPaths, tracker.Tick)
	if err != nil {
		tracker.FinishError(err)
		return nil, nil, err
	}
	tracker.FinishSuccess()

	return corpus.Merge(docs...), docPaths, nil
}

// corpusGraph bundles a merged corpus document with its inferred graph.
type corpusGraph struct {
	doc      *corpus.Document
	graph    *relgraph.Graph
	docPaths []string
}

// buildGraph loads the corpus and infers the relationship graph, without
// running centrality. Used by commands that only query relationships.
func buildGraph(c *cli.Context, cfg *config.Config, paths []string) (*corpusGraph, error) {
	doc, docPaths, err := loadCorpus(c, cfg, paths)
	if err != nil {
		return nil, err
	}

	g, err := analysis.New().Graph(c.Context, doc)
	if err != nil {
		return nil, fmt.Errorf("building relationship graph: %w", err)
	}
	return &corpusGraph{doc: doc, graph: g, docPaths: docPaths}, nil
}

// runAnalysis executes the full pipeline, consulting the cache when enabled.
// Cached entries are keyed by the document set and validated against a
// digest of the document contents.
func runAnalysis(c *cli.Context, cfg *config.Config, doc *corpus.Document, docPaths []string) (*analysis.Analysis, error) {
	store, err := cache.New(cfg.Cache.Dir, cfg.Cache.TTL, cfg.Cache.Enabled)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	spinner := progressSpinner(c, cfg, "Analyzing corpus...")

	key := "analysis:" + strings.Join(docPaths, "|")
	var digest string
	if cfg.Cache.Enabled {
		if d, hashErr := cache.HashDocuments(docPaths); hashErr == nil {
			digest = d
			if data, ok := store.GetWithHash(key, digest); ok {
				var cached analysis.Analysis
				if json.Unmarshal(data, &cached) == nil {
					spinner.FinishSkipped("cached")
					return &cached, nil
				}
			}
		}
	}

	ctx := analysis.WithTracker(c.Context, analysis.NewTracker(func(p analysis.Progress) {
		switch p.Stage {
		case analysis.StageInfer:
			spinner.Describe("Inferring relationships...")
		case analysis.StageRank:
			spinner.Describe("Computing centrality...")
		}
		spinner.Tick()
	}))
	result, err := analysis.New(analysis.WithCentralityConfig(cfg.EngineConfig())).Analyze(ctx, doc)
	if err != nil {
		spinner.FinishError(err)
		return nil, fmt.Errorf("analysis failed: %w", err)
	}
	spinner.FinishSuccess()

	if digest != "" {
		if data, err := json.Marshal(result); err == nil {
			_ = store.SetWithHash(key, digest, data)
		}
	}
	return result, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/avehn/lodestone/internal/output"
	"github.com/avehn/lodestone/pkg/analysis"
	"github.com/avehn/lodestone/pkg/centrality"
	"github.com/avehn/lodestone/pkg/relgraph"
)

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Show graph and centrality statistics",
		ArgsUsage: "[path...]",
		Flags:     outputFlags(),
		Action:    runStatsCmd,
	}
}

func runStatsCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	doc, docPaths, err := loadCorpus(c, cfg, getPaths(c.Args().Slice()))
	if err != nil {
		return err
	}

	result, err := runAnalysis(c, cfg, doc, docPaths)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(struct {
			Graph      relgraph.Stats     `json:"graph" toon:"graph"`
			Centrality centrality.Metrics `json:"centrality" toon:"centrality"`
			Summary    analysis.Summary   `json:"summary" toon:"summary"`
		}{result.Graph, result.Centrality, result.Summary})
	}

	w := formatter.Writer()
	if formatter.Colored() {
		color.Cyan("Relationship Graph:")
	} else {
		fmt.Fprintln(w, "Relationship Graph:")
	}
	fmt.Fprintf(w, "  Files: %d\n", result.Graph.TotalFiles)
	fmt.Fprintf(w, "  Relationships: %d\n", result.Graph.TotalRelationships)
	fmt.Fprintf(w, "  Avg Per File: %.2f\n", result.Graph.AverageRelationshipsPerFile)
	fmt.Fprintf(w, "  Cached Pairs: %d\n", result.Graph.CachedPairs)

	fmt.Fprintln(w)
	if formatter.Colored() {
		color.Cyan("Centrality:")
	} else {
		fmt.Fprintln(w, "Centrality:")
	}
	fmt.Fprintf(w, "  Nodes: %d\n", result.Centrality.TotalNodes)
	fmt.Fprintf(w, "  Edges: %d\n", result.Centrality.TotalEdges)
	fmt.Fprintf(w, "  Avg Degree: %.2f\n", result.Centrality.AvgDegree)
	fmt.Fprintf(w, "  Density: %.4f\n", result.Centrality.GraphDensity)
	fmt.Fprintf(w, "  Iterations: %d\n", result.Centrality.Iterations)
	fmt.Fprintf(w, "  Converged: %t\n", result.Centrality.Converged)

	fmt.Fprintln(w)
	if formatter.Colored() {
		color.Cyan("Scores:")
	} else {
		fmt.Fprintln(w, "Scores:")
	}
	fmt.Fprintf(w, "  Ranked Nodes: %d\n", result.Summary.RankedNodes)
	fmt.Fprintf(w, "  P50: %.4f\n", result.Summary.P50Score)
	fmt.Fprintf(w, "  P90: %.4f\n", result.Summary.P90Score)

	return nil
}

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/avehn/lodestone/internal/output"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"run"},
		Usage:     "Run the full analysis and print a combined report",
		ArgsUsage: "[path...]",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 10,
				Usage: "Number of top-ranked files in the report",
			},
		}, outputFlags()...),
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	topN := c.Int("top")

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
		return formatter.Output(result)
	}

	top := result.TopN(topN)
	rows := make([][]string, 0, len(top))
	for _, r := range top {
		file := r.NodeID
		if formatter.Colored() {
			file = output.ScoreColor(r.NormalizedScore, file)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Rank),
			file,
			fmt.Sprintf("%.4f", r.NormalizedScore),
		})
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "Files: %d\n", result.Summary.Files)
	fmt.Fprintf(&summary, "Relationships: %d\n", result.Summary.Relationships)
	fmt.Fprintf(&summary, "Graph density: %.4f\n", result.Centrality.GraphDensity)
	fmt.Fprintf(&summary, "PageRank iterations: %d (converged: %t)\n",
		result.Centrality.Iterations, result.Centrality.Converged)
	fmt.Fprintf(&summary, "Score P50/P90: %.4f / %.4f", result.Summary.P50Score, result.Summary.P90Score)

	report := &output.Report{
		Title: "Lodestone Analysis",
		Sections: []output.Renderable{
			&output.Section{
				Title:   "Summary",
				Content: summary.String(),
			},
			output.NewTable(
				"Most Central Files",
				[]string{"Rank", "File", "Score"},
				rows,
				nil,
				top,
			),
		},
		Data: result,
	}
	return formatter.Output(report)
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/avehn/lodestone/internal/output"
	"github.com/avehn/lodestone/pkg/centrality"
)

func rankCmd() *cli.Command {
	return &cli.Command{
		Name:      "rank",
		Aliases:   []string{"top"},
		Usage:     "Rank files by PageRank centrality",
		ArgsUsage: "[path...]",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 10,
				Usage: "Show top N files (0 for all)",
			},
			&cli.Float64Flag{
				Name:  "min-score",
				Usage: "Hide files below this normalized score",
			},
		}, outputFlags()...),
		Action: runRankCmd,
	}
}

func runRankCmd(c *cli.Context) error {
	topN := c.Int("top")
	minScore := c.Float64("min-score")

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

	ranks := result.Ranks
	if topN > 0 {
		ranks = result.TopN(topN)
	}
	if minScore > 0 {
		kept := ranks[:0:0]
		for _, r := range ranks {
			if r.NormalizedScore >= minScore {
				kept = append(kept, r)
			}
		}
		ranks = kept
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(struct {
			Ranks   []centrality.Result `json:"ranks" toon:"ranks"`
			Metrics centrality.Metrics  `json:"metrics" toon:"metrics"`
		}{ranks, result.Centrality})
	}

	rows := make([][]string, 0, len(ranks))
	for _, r := range ranks {
		file := r.NodeID
		if formatter.Colored() {
			file = output.ScoreColor(r.NormalizedScore, file)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", r.Rank),
			file,
			fmt.Sprintf("%.4f", r.Score),
			fmt.Sprintf("%.4f", r.NormalizedScore),
		})
	}

	table := output.NewTable(
		"Files by Centrality",
		[]string{"Rank", "File", "Score", "Normalized"},
		rows,
		[]string{"", "Total", fmt.Sprintf("%d", len(rows)), ""},
		ranks,
	)
	if err := formatter.Output(table); err != nil {
		return err
	}

	if !result.Centrality.Converged {
		color.Yellow("PageRank did not converge within %d iterations", result.Centrality.Iterations)
	}
	return nil
}

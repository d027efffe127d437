package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/avehn/lodestone/internal/output"
	"github.com/avehn/lodestone/pkg/relgraph"
)

func similarCmd() *cli.Command {
	return &cli.Command{
		Name:      "similar",
		Usage:     "Find files whose tag vectors resemble a given file",
		ArgsUsage: "<file> [path...]",
		Flags: append([]cli.Flag{
			&cli.Float64Flag{
				Name:  "threshold",
				Value: 0.2,
				Usage: "Minimum similarity score (inclusive)",
			},
		}, outputFlags()...),
		Action: runSimilarCmd,
	}
}

func runSimilarCmd(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("missing file argument (usage: lodestone similar <file> [path...])")
	}
	file := c.Args().First()
	threshold := c.Float64("threshold")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	cg, err := buildGraph(c, cfg, getPaths(c.Args().Tail()))
	if err != nil {
		return err
	}
	g := cg.graph

	if _, ok := g.Node(file); !ok {
		return fmt.Errorf("file %q is not in the corpus", file)
	}

	similar := g.FindSimilarFiles(file, threshold)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(struct {
			File      string                 `json:"file" toon:"file"`
			Threshold float64                `json:"threshold" toon:"threshold"`
			Similar   []relgraph.RelatedFile `json:"similar" toon:"similar"`
		}{file, threshold, similar})
	}

	if len(similar) == 0 {
		color.Yellow("No files with similarity >= %.2f to %s", threshold, file)
		return nil
	}

	rows := make([][]string, 0, len(similar))
	for _, rf := range similar {
		rows = append(rows, []string{rf.Path, fmt.Sprintf("%.4f", rf.Similarity)})
	}

	table := output.NewTable(
		fmt.Sprintf("Files similar to %s (threshold %.2f)", file, threshold),
		[]string{"File", "Similarity"},
		rows,
		nil,
		similar,
	)
	return formatter.Output(table)
}

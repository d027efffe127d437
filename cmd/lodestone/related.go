package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/avehn/lodestone/internal/output"
	"github.com/avehn/lodestone/pkg/relgraph"
)

func relatedCmd() *cli.Command {
	return &cli.Command{
		Name:      "related",
		Usage:     "List files related to a given file, most similar first",
		ArgsUsage: "<file> [path...]",
		Flags: append([]cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 10,
				Usage: "Show top N related files (0 for all)",
			},
		}, outputFlags()...),
		Action: runRelatedCmd,
	}
}

func runRelatedCmd(c *cli.Context) error {
	if c.Args().Len() < 1 {
		return fmt.Errorf("missing file argument (usage: lodestone related <file> [path...])")
	}
	file := c.Args().First()
	topN := c.Int("top")

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

	related := g.RelatedFiles(file)
	if topN > 0 && len(related) > topN {
		related = related[:topN]
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(struct {
			File    string                `json:"file" toon:"file"`
			Related []relgraph.RelatedFile `json:"related" toon:"related"`
		}{file, related})
	}

	if len(related) == 0 {
		color.Yellow("No related files for %s", file)
		return nil
	}

	rows := make([][]string, 0, len(related))
	for _, rf := range related {
		row := []string{rf.Path, fmt.Sprintf("%.4f", rf.Similarity), "", ""}
		if rel, ok := g.Relationship(file, rf.Path); ok {
			strength := rel.Strength.String()
			if formatter.Colored() {
				strength = output.StrengthColor(strength, strength)
			}
			row[2] = rel.Type.String()
			row[3] = strength
		}
		rows = append(rows, row)
	}

	table := output.NewTable(
		fmt.Sprintf("Files related to %s", file),
		[]string{"File", "Similarity", "Type", "Strength"},
		rows,
		nil,
		related,
	)
	return formatter.Output(table)
}

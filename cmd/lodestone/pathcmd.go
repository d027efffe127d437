package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/avehn/lodestone/internal/output"
)

func pathCmd() *cli.Command {
	return &cli.Command{
		Name:      "path",
		Usage:     "Find the shortest relationship path between two files",
		ArgsUsage: "<from> <to> [path...]",
		Flags:     outputFlags(),
		Action:    runPathCmd,
	}
}

func runPathCmd(c *cli.Context) error {
	if c.Args().Len() < 2 {
		return fmt.Errorf("need two file arguments (usage: lodestone path <from> <to> [path...])")
	}
	from := c.Args().Get(0)
	to := c.Args().Get(1)

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	args := c.Args().Slice()
	cg, err := buildGraph(c, cfg, getPaths(args[2:]))
	if err != nil {
		return err
	}
	g := cg.graph

	steps := g.ShortestPath(from, to)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON || formatter.Format() == output.FormatTOON {
		return formatter.Output(struct {
			From  string   `json:"from" toon:"from"`
			To    string   `json:"to" toon:"to"`
			Found bool     `json:"found" toon:"found"`
			Path  []string `json:"path,omitempty" toon:"path,omitempty"`
		}{from, to, steps != nil, steps})
	}

	if steps == nil {
		color.Yellow("No path between %s and %s", from, to)
		return nil
	}

	w := formatter.Writer()
	fmt.Fprintln(w, steps[0])
	for i := 1; i < len(steps); i++ {
		if rel, ok := g.Relationship(steps[i-1], steps[i]); ok {
			fmt.Fprintf(w, "  -> %s  (%s, %.2f)\n", steps[i], rel.Type, rel.SimilarityScore)
		} else {
			fmt.Fprintf(w, "  -> %s\n", steps[i])
		}
	}
	fmt.Fprintf(w, "\n%d hop(s)\n", len(steps)-1)
	return nil
}

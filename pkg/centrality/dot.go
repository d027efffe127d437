package centrality

import (
	"fmt"
	"sort"
	"strings"
)

// ExportDOT renders the graph in Graphviz DOT form. Each node label carries
// its current score to four decimals and the node color encodes the score as
// an HSV hue, saturating at 0.1. Nodes and edges are emitted in sorted order
// so the output is reproducible.
func (e *Engine) ExportDOT() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var b strings.Builder
	b.WriteString("digraph PageRank {\n")
	b.WriteString("  rankdir=TB;\n")
	b.WriteString("  node [shape=ellipse];\n")

	order := e.sortedOrderLocked()
	for _, i := range order {
		score := e.scores[i]
		hue := score * 10
		if hue > 1.0 {
			hue = 1.0
		}
		fmt.Fprintf(&b, "  \"%s\" [label=\"%s\\n%.4f\", color=\"%.2f 1.0 1.0\"];\n",
			e.ids[i], e.ids[i], score, hue)
	}

	for _, i := range order {
		targets := make([]string, 0, e.out[i].GetCardinality())
		it := e.out[i].Iterator()
		for it.HasNext() {
			targets = append(targets, e.ids[int(it.Next())])
		}
		sort.Strings(targets)
		for _, to := range targets {
			fmt.Fprintf(&b, "  \"%s\" -> \"%s\";\n", e.ids[i], to)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

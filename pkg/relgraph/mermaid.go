package relgraph

import (
	"fmt"
	"sort"
	"strings"
)

// ToMermaid renders the relationship graph as a Mermaid diagram. Each inferred pair
// appears once as an undirected link labeled with its type and similarity. Output
// is deterministic: nodes and links are emitted in sorted order.
func (g *Graph) ToMermaid() string {
	var b strings.Builder
	b.WriteString("graph TD\n")

	files := g.sortedPaths()
	for _, f := range files {
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", sanitizeMermaidID(f), escapeMermaidLabel(f))
	}

	for _, from := range files {
		targets := make([]string, 0, len(g.edges[from]))
		for to := range g.edges[from] {
			if from < to {
				targets = append(targets, to)
			}
		}
		sort.Strings(targets)
		for _, to := range targets {
			rel := g.edges[from][to]
			fmt.Fprintf(&b, "    %s ---|%s %.2f| %s\n",
				sanitizeMermaidID(from), rel.Type, rel.SimilarityScore, sanitizeMermaidID(to))
		}
	}
	return b.String()
}

// sanitizeMermaidID makes a file path safe to use as a Mermaid node id.
func sanitizeMermaidID(id string) string {
	if id == "" {
		return "empty"
	}
	var result []byte
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}
	// Mermaid ids must not start with a digit.
	if result[0] >= '0' && result[0] <= '9' {
		result = append([]byte{'n'}, result...)
	}
	return string(result)
}

// escapeMermaidLabel escapes characters that break Mermaid node labels.
func escapeMermaidLabel(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"\"", "&quot;",
		"<", "&lt;",
		">", "&gt;",
		"|", "&#124;",
		"[", "&#91;",
		"]", "&#93;",
	)
	return replacer.Replace(s)
}

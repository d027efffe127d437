package relgraph

import "strings"

// extractFeatures sorts each vector into at most one semantic group; the first
// matching group claims the vector.
func extractFeatures(vectors []string) SemanticFeatures {
	var f SemanticFeatures
	for _, v := range vectors {
		switch {
		case strings.Contains(v, "domain:"):
			f.Domains = append(f.Domains, v)
		case strings.Contains(v, "pattern:") || strings.Contains(v, "behavior:") || strings.Contains(v, "structure:"):
			f.Patterns = append(f.Patterns, v)
		case strings.Contains(v, "functionality") || strings.Contains(v, "cognitive") || strings.Contains(v, "functional"):
			f.Features = append(f.Features, v)
		case strings.Contains(v, "business") || strings.Contains(v, "financial") || strings.Contains(v, "ecommerce"):
			f.BusinessContext = append(f.BusinessContext, v)
		case strings.Contains(v, "performance") || strings.Contains(v, "cached") || strings.Contains(v, "optimized"):
			f.Performance = append(f.Performance, v)
		case strings.Contains(v, "security") || strings.Contains(v, "authenticated") || strings.Contains(v, "encrypted"):
			f.Security = append(f.Security, v)
		}
	}
	return f
}

// extractDependencies collects names from every vector carrying a "dependencies:"
// marker. The text between the first marker and the next (or the end of the vector)
// is split on commas and trimmed.
func extractDependencies(vectors []string) []string {
	var deps []string
	for _, v := range vectors {
		parts := strings.Split(v, "dependencies:")
		if len(parts) < 2 {
			continue
		}
		for _, dep := range strings.Split(strings.TrimSpace(parts[1]), ",") {
			deps = append(deps, strings.TrimSpace(dep))
		}
	}
	return deps
}

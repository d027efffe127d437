// Package similarity provides token-set similarity measures over semantic tag strings.
package similarity

import "strings"

// TokenSimilarity returns the Jaccard index of the whitespace-delimited token sets
// of s1 and s2: |intersection| / |union|. Strings with no tokens have an empty union
// and score 0.0.
func TokenSimilarity(s1, s2 string) float64 {
	return jaccard(tokenSet(s1), tokenSet(s2))
}

// VectorSetSimilarity returns the mean TokenSimilarity over every pairing drawn from
// the two tag lists, not just aligned entries. Either list being empty scores 0.0.
// The comparison is deliberately exhaustive (len(v1)*len(v2) pairs); tag lists are
// expected to stay small.
func VectorSetSimilarity(v1, v2 []string) float64 {
	if len(v1) == 0 || len(v2) == 0 {
		return 0
	}

	sets1 := make([]map[string]struct{}, len(v1))
	for i, s := range v1 {
		sets1[i] = tokenSet(s)
	}
	sets2 := make([]map[string]struct{}, len(v2))
	for i, s := range v2 {
		sets2[i] = tokenSet(s)
	}

	var total float64
	for _, a := range sets1 {
		for _, b := range sets2 {
			total += jaccard(a, b)
		}
	}
	return total / float64(len(v1)*len(v2))
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(s)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	union := len(b)
	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

package relgraph

import "testing"

func TestExtractFeatures(t *testing.T) {
	f := extractFeatures([]string{
		"domain: payments",
		"pattern: repository",
		"behavior: retries on failure",
		"functionality billing",
		"business invoice flow",
		"performance cached lookups",
		"security encrypted at rest",
		"plain tag with no group",
	})

	if len(f.Domains) != 1 || f.Domains[0] != "domain: payments" {
		t.Errorf("Domains = %v, want [domain: payments]", f.Domains)
	}
	if len(f.Patterns) != 2 {
		t.Errorf("len(Patterns) = %d, want 2", len(f.Patterns))
	}
	if len(f.Features) != 1 || f.Features[0] != "functionality billing" {
		t.Errorf("Features = %v, want [functionality billing]", f.Features)
	}
	if len(f.BusinessContext) != 1 {
		t.Errorf("len(BusinessContext) = %d, want 1", len(f.BusinessContext))
	}
	if len(f.Performance) != 1 {
		t.Errorf("len(Performance) = %d, want 1", len(f.Performance))
	}
	if len(f.Security) != 1 {
		t.Errorf("len(Security) = %d, want 1", len(f.Security))
	}
}

func TestExtractFeaturesFirstGroupClaims(t *testing.T) {
	// Matches both the domain and security groups; only the first may keep it.
	f := extractFeatures([]string{"domain: security model"})

	if len(f.Domains) != 1 {
		t.Errorf("len(Domains) = %d, want 1", len(f.Domains))
	}
	if len(f.Security) != 0 {
		t.Errorf("len(Security) = %d, want 0", len(f.Security))
	}
}

func TestExtractDependencies(t *testing.T) {
	tests := []struct {
		name    string
		vectors []string
		want    []string
	}{
		{"single marker", []string{"dependencies: alpha, beta"}, []string{"alpha", "beta"}},
		{
			"spread across vectors",
			[]string{"dependencies: alpha", "domain: core", "dependencies: beta , gamma"},
			[]string{"alpha", "beta", "gamma"},
		},
		{"no marker", []string{"domain: core"}, nil},
		{"text before marker", []string{"runtime dependencies: core/util.go"}, []string{"core/util.go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractDependencies(tt.vectors)
			if len(got) != len(tt.want) {
				t.Fatalf("extractDependencies = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("extractDependencies[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

package centrality

// Config controls the PageRank power iteration.
type Config struct {
	DampingFactor        float64 `json:"damping_factor" toon:"damping_factor"`
	MaxIterations        int     `json:"max_iterations" toon:"max_iterations"`
	ConvergenceThreshold float64 `json:"convergence_threshold" toon:"convergence_threshold"`
	EnableCaching        bool    `json:"enable_caching" toon:"enable_caching"`
}

// DefaultConfig returns the standard PageRank parameters.
func DefaultConfig() Config {
	return Config{
		DampingFactor:        0.85,
		MaxIterations:        100,
		ConvergenceThreshold: 1e-6,
		EnableCaching:        true,
	}
}

// Result is a single ranked node. Score is the value produced by the last
// Calculate call; NormalizedScore rescales it against the current maximum so
// the top node reads as exactly 1.0.
type Result struct {
	NodeID          string  `json:"node_id" toon:"node_id"`
	Score           float64 `json:"score" toon:"score"`
	NormalizedScore float64 `json:"normalized_score" toon:"normalized_score"`
	Rank            int     `json:"rank" toon:"rank"`
}

// Metrics summarizes a completed Calculate run.
type Metrics struct {
	TotalNodes   int     `json:"total_nodes" toon:"total_nodes"`
	TotalEdges   int     `json:"total_edges" toon:"total_edges"`
	AvgDegree    float64 `json:"avg_degree" toon:"avg_degree"`
	GraphDensity float64 `json:"graph_density" toon:"graph_density"`
	Iterations   int     `json:"iterations" toon:"iterations"`
	Converged    bool    `json:"converged" toon:"converged"`
}

// Stats reports the graph structure and the spread of current scores.
type Stats struct {
	Nodes     int     `json:"nodes" toon:"nodes"`
	Edges     int     `json:"edges" toon:"edges"`
	AvgDegree float64 `json:"avg_degree" toon:"avg_degree"`
	MinScore  float64 `json:"min_score" toon:"min_score"`
	MaxScore  float64 `json:"max_score" toon:"max_score"`
	AvgScore  float64 `json:"avg_score" toon:"avg_score"`
}

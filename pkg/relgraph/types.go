package relgraph

// relationshipThreshold is the minimum similarity for an inferred relationship.
// Pairs scoring at or below it stay unconnected. The threshold is fixed, not
// configurable.
const relationshipThreshold = 0.2

// FileNode is one file's entry in the relationship graph. Vectors holds the
// caller-supplied semantic tags; Features and Dependencies are derived from the
// vectors at insertion time and are never recomputed afterwards.
type FileNode struct {
	Path         string           `json:"path" toon:"path"`
	Vectors      []string         `json:"vectors" toon:"vectors"`
	Metadata     map[string]any   `json:"metadata,omitempty" toon:"metadata,omitempty"`
	Features     SemanticFeatures `json:"semantic_features" toon:"semantic_features"`
	Dependencies []string         `json:"dependencies,omitempty" toon:"dependencies,omitempty"`
}

// SemanticFeatures groups a file's tag vectors by theme. Each vector lands in at
// most one group.
type SemanticFeatures struct {
	Domains         []string `json:"domains,omitempty" toon:"domains,omitempty"`
	Patterns        []string `json:"patterns,omitempty" toon:"patterns,omitempty"`
	Features        []string `json:"features,omitempty" toon:"features,omitempty"`
	BusinessContext []string `json:"business_context,omitempty" toon:"business_context,omitempty"`
	Performance     []string `json:"performance,omitempty" toon:"performance,omitempty"`
	Security        []string `json:"security,omitempty" toon:"security,omitempty"`
}

// Relationship is a typed, weighted edge between two files. Inference always
// inserts it in both directions with the same payload.
type Relationship struct {
	Type            RelationshipType `json:"relationship_type" toon:"relationship_type"`
	SimilarityScore float64          `json:"similarity_score" toon:"similarity_score"`
	Confidence      float64          `json:"confidence" toon:"confidence"`
	Strength        Strength         `json:"strength" toon:"strength"`
	Context         string           `json:"context" toon:"context"`
}

// RelationshipType classifies how two files relate.
type RelationshipType string

const (
	RelationTest             RelationshipType = "test"
	RelationConfiguration    RelationshipType = "configuration"
	RelationDocumentation    RelationshipType = "documentation"
	RelationMicroservice     RelationshipType = "microservice_communication"
	RelationAPI              RelationshipType = "api_dependency"
	RelationServiceDiscovery RelationshipType = "service_discovery"
	RelationMessageQueue     RelationshipType = "message_queue"
	RelationDatabase         RelationshipType = "database"
	RelationEventStreaming   RelationshipType = "event_streaming"
	RelationLoadBalancer     RelationshipType = "load_balancer"
	RelationGateway          RelationshipType = "gateway"
	RelationFunctional       RelationshipType = "functional"
	RelationDomain           RelationshipType = "domain"
	RelationArchitectural    RelationshipType = "architectural"

	// Reserved for externally asserted edges; never produced by the classifier.
	RelationDependency RelationshipType = "dependency"
	RelationDataFlow   RelationshipType = "data_flow"
)

// String returns the string representation.
func (r RelationshipType) String() string {
	return string(r)
}

// Strength is the discretized bucket of a similarity score.
type Strength string

const (
	StrengthVeryStrong Strength = "very_strong"
	StrengthStrong     Strength = "strong"
	StrengthModerate   Strength = "moderate"
	StrengthWeak       Strength = "weak"
	StrengthVeryWeak   Strength = "very_weak"
)

// String returns the string representation.
func (s Strength) String() string {
	return string(s)
}

// RelatedFile pairs a file path with its similarity to the query file.
type RelatedFile struct {
	Path       string  `json:"path" toon:"path"`
	Similarity float64 `json:"similarity" toon:"similarity"`
}

// Stats summarizes the relationship graph for observability dashboards.
// TotalRelationships counts directed edges, so every inferred pair contributes two.
type Stats struct {
	TotalFiles                  int     `json:"total_files" toon:"total_files"`
	TotalRelationships          int     `json:"total_relationships" toon:"total_relationships"`
	AverageRelationshipsPerFile float64 `json:"average_relationships_per_file" toon:"average_relationships_per_file"`
	CachedPairs                 int     `json:"cached_pairs" toon:"cached_pairs"`
}

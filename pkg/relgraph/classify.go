package relgraph

import (
	"fmt"
	"math"
	"strings"
)

// Keyword families consulted by classifyRelationship, in priority order.
var (
	microservicePatterns = []string{"service", "microservice", "api", "client", "server"}
	apiPatterns          = []string{"api", "endpoint", "route", "controller"}
	discoveryPatterns    = []string{"discovery", "registry", "consul", "etcd", "eureka"}
	messageQueuePatterns = []string{"queue", "kafka", "rabbitmq", "redis", "pubsub", "message"}
	databasePatterns     = []string{"database", "db", "sql", "mongo", "postgres", "mysql", "repository"}
	eventPatterns        = []string{"event", "stream", "kafka", "eventstore", "pipeline"}
	loadBalancerPatterns = []string{"loadbalancer", "nginx", "haproxy", "traefik", "proxy"}
	gatewayPatterns      = []string{"gateway", "zuul", "kong", "ambassador", "istio"}
)

// classifyRelationship determines the relationship type for a file pair. Rules are
// fixed; the first match wins.
func classifyRelationship(file1, file2 string, similarity float64) RelationshipType {
	switch {
	case strings.Contains(file1, "test") || strings.Contains(file2, "test"):
		return RelationTest
	case strings.Contains(file1, "config") || strings.Contains(file2, "config"):
		return RelationConfiguration
	case strings.Contains(file1, "doc") || strings.Contains(file2, "doc"):
		return RelationDocumentation
	case bothContainSame(file1, file2, microservicePatterns):
		return RelationMicroservice
	case eitherContains(file1, file2, apiPatterns):
		return RelationAPI
	case eitherContains(file1, file2, discoveryPatterns):
		return RelationServiceDiscovery
	case eitherContains(file1, file2, messageQueuePatterns):
		return RelationMessageQueue
	case eitherContains(file1, file2, databasePatterns):
		return RelationDatabase
	case eitherContains(file1, file2, eventPatterns):
		return RelationEventStreaming
	case eitherContains(file1, file2, loadBalancerPatterns):
		return RelationLoadBalancer
	case eitherContains(file1, file2, gatewayPatterns):
		return RelationGateway
	case similarity > 0.7:
		return RelationFunctional
	case similarity > 0.5:
		return RelationDomain
	default:
		return RelationArchitectural
	}
}

func eitherContains(file1, file2 string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(file1, p) || strings.Contains(file2, p) {
			return true
		}
	}
	return false
}

func bothContainSame(file1, file2 string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(file1, p) && strings.Contains(file2, p) {
			return true
		}
	}
	return false
}

// strengthFor buckets a similarity score into a discrete strength level.
func strengthFor(similarity float64) Strength {
	switch {
	case similarity > 0.8:
		return StrengthVeryStrong
	case similarity > 0.6:
		return StrengthStrong
	case similarity > 0.4:
		return StrengthModerate
	case similarity > 0.2:
		return StrengthWeak
	default:
		return StrengthVeryWeak
	}
}

// confidenceFor starts from the similarity score and adds a bounded bonus for a
// shared file extension and a shared parent directory, capped at 1.0.
func confidenceFor(file1, file2 string, similarity float64) float64 {
	confidence := similarity
	if sameExtension(file1, file2) {
		confidence += 0.1
	}
	if sameParentDir(file1, file2) {
		confidence += 0.1
	}
	return math.Min(confidence, 1.0)
}

// sameExtension compares the final '.'-delimited segment of each path. A path
// without a dot contributes the whole path.
func sameExtension(file1, file2 string) bool {
	return lastDotSegment(file1) == lastDotSegment(file2)
}

func lastDotSegment(path string) string {
	parts := strings.Split(path, ".")
	return parts[len(parts)-1]
}

// sameParentDir compares the immediate parent directory component. Bare file names
// have an empty parent and so compare equal.
func sameParentDir(file1, file2 string) bool {
	return parentDir(file1) == parentDir(file2)
}

func parentDir(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

// newRelationship assembles the full edge payload for a file pair.
func newRelationship(file1, file2 string, similarity float64) Relationship {
	return Relationship{
		Type:            classifyRelationship(file1, file2, similarity),
		SimilarityScore: similarity,
		Confidence:      confidenceFor(file1, file2, similarity),
		Strength:        strengthFor(similarity),
		Context: fmt.Sprintf("Files %s and %s have %.1f%% similarity based on vector analysis",
			file1, file2, similarity*100),
	}
}

package corpus

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sample returns a small starter document demonstrating the corpus format.
func Sample() *Document {
	return &Document{
		Files: []File{
			{
				Path: "cmd/api/main.go",
				Tags: []string{
					"domain: service startup",
					"pattern: dependency wiring",
					"functionality bootstraps the http server",
					"dependencies: internal/server/server.go, internal/config/config.go",
				},
			},
			{
				Path: "internal/server/server.go",
				Tags: []string{
					"domain: http transport",
					"pattern: request routing",
					"functionality serves api endpoints",
					"dependencies: internal/store/store.go",
				},
			},
			{
				Path: "internal/store/store.go",
				Tags: []string{
					"domain: persistence",
					"pattern: repository",
					"functionality reads and writes records",
					"performance cached lookups",
				},
			},
			{
				Path: "internal/config/config.go",
				Tags: []string{
					"domain: configuration",
					"functionality loads runtime settings",
				},
			},
		},
	}
}

// WriteSample writes the starter document to path in YAML form.
func WriteSample(path string) error {
	data, err := yaml.Marshal(Sample())
	if err != nil {
		return fmt.Errorf("encoding sample document: %w", err)
	}

	header := []byte("# Relationship corpus document.\n# Each file lists semantic tag vectors; dependency tags and the optional\n# top-level dependencies mapping feed the centrality graph.\n\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return fmt.Errorf("writing sample document: %w", err)
	}
	return nil
}

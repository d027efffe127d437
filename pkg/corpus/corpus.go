// Package corpus loads relationship corpus documents: listings of files with
// semantic tag vectors and optional explicit dependency mappings. Documents
// are written in YAML, JSON, or TOML and validated against a schema before
// they reach the graph layer.
package corpus

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/avehn/lodestone/internal/fileproc"
)

// File is one entry in a corpus document.
type File struct {
	Path     string         `koanf:"path" yaml:"path"`
	Tags     []string       `koanf:"tags" yaml:"tags,omitempty"`
	Metadata map[string]any `koanf:"metadata" yaml:"metadata,omitempty"`
}

// Document is a parsed corpus document. Dependencies is an optional explicit
// dependency mapping; when present it takes precedence over dependency tags
// embedded in file vectors.
type Document struct {
	Files        []File              `koanf:"files" yaml:"files"`
	Dependencies map[string][]string `koanf:"dependencies" yaml:"dependencies,omitempty"`
}

// Load reads and validates a single corpus document. The format is picked by
// file extension (.yaml, .yml, .json, .toml); anything else is an error.
func Load(path string) (*Document, error) {
	// File paths appear as dependency map keys, so the usual "." delimiter
	// would split them apart when koanf flattens the document.
	k := koanf.New("::")

	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".toml":
		parser = toml.Parser()
	case ".json":
		parser = kjson.Parser()
	default:
		return nil, fmt.Errorf("unsupported document format %q (expected .yaml, .yml, .json, or .toml)", ext)
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, fmt.Errorf("loading document %s: %w", path, err)
	}
	if err := validateDocument(k.Raw()); err != nil {
		return nil, fmt.Errorf("invalid document %s: %w", path, err)
	}

	doc := &Document{}
	if err := k.Unmarshal("", doc); err != nil {
		return nil, fmt.Errorf("decoding document %s: %w", path, err)
	}
	return doc, nil
}

// LoadAll loads documents in parallel. On partial failure it returns the
// documents that did load together with the collected per-file errors.
func LoadAll(ctx context.Context, paths []string) ([]*Document, error) {
	docs, errs := fileproc.MapFiles(ctx, paths, Load)
	if errs != nil && errs.HasErrors() {
		return docs, errs
	}
	return docs, nil
}

// LoadAllWithProgress is LoadAll with a callback invoked per processed
// document.
func LoadAllWithProgress(ctx context.Context, paths []string, onProgress func()) ([]*Document, error) {
	docs, errs := fileproc.MapFilesWithProgress(ctx, paths, Load, onProgress)
	if errs != nil && errs.HasErrors() {
		return docs, errs
	}
	return docs, nil
}

// Merge combines documents into a single one. Files are concatenated in
// order, so a path appearing in a later document replaces the earlier entry
// once the graph ingests it; dependency mappings merge per key with the last
// document winning.
func Merge(docs ...*Document) *Document {
	merged := &Document{}
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		merged.Files = append(merged.Files, doc.Files...)
		if len(doc.Dependencies) > 0 {
			if merged.Dependencies == nil {
				merged.Dependencies = make(map[string][]string)
			}
			for k, v := range doc.Dependencies {
				merged.Dependencies[k] = v
			}
		}
	}
	return merged
}

// documentSuffixes are the filename suffixes FindDocuments recognizes.
var documentSuffixes = []string{
	".corpus.yaml",
	".corpus.yml",
	".corpus.json",
	".corpus.toml",
}

// FindDocuments walks root collecting corpus document paths (files named
// *.corpus.yaml, *.corpus.yml, *.corpus.json, or *.corpus.toml). Paths for
// which exclude returns true are skipped; a nil exclude keeps everything.
// Results come back sorted.
func FindDocuments(root string, exclude func(string) bool) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if exclude != nil && path != root && exclude(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if exclude != nil && exclude(path) {
			return nil
		}
		name := strings.ToLower(d.Name())
		for _, suffix := range documentSuffixes {
			if strings.HasSuffix(name, suffix) {
				found = append(found, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(found)
	return found, nil
}

package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/avehn/lodestone/pkg/centrality"
)

// Config holds all configuration options for lodestone. The toml tags keep
// generated config files in the same snake_case keys koanf reads back.
type Config struct {
	// Centrality engine settings
	Centrality CentralityConfig `koanf:"centrality" toml:"centrality"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// CentralityConfig controls the PageRank engine.
type CentralityConfig struct {
	DampingFactor        float64 `koanf:"damping_factor" toml:"damping_factor"`
	MaxIterations        int     `koanf:"max_iterations" toml:"max_iterations"`
	ConvergenceThreshold float64 `koanf:"convergence_threshold" toml:"convergence_threshold"`
	EnableCaching        bool    `koanf:"enable_caching" toml:"enable_caching"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns" toml:"patterns"`
	Extensions []string `koanf:"extensions" toml:"extensions"`
	Dirs       []string `koanf:"dirs" toml:"dirs"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	engine := centrality.DefaultConfig()
	return &Config{
		Centrality: CentralityConfig{
			DampingFactor:        engine.DampingFactor,
			MaxIterations:        engine.MaxIterations,
			ConvergenceThreshold: engine.ConvergenceThreshold,
			EnableCaching:        engine.EnableCaching,
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.min.css",
			},
			Extensions: []string{
				".lock",
				".sum",
			},
			Dirs: []string{
				"vendor",
				"node_modules",
				".git",
				".lodestone",
				"dist",
				"build",
				"target",
				"__pycache__",
			},
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".lodestone/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// EngineConfig converts the centrality section into the engine's own
// configuration type.
func (c *Config) EngineConfig() centrality.Config {
	return centrality.Config{
		DampingFactor:        c.Centrality.DampingFactor,
		MaxIterations:        c.Centrality.MaxIterations,
		ConvergenceThreshold: c.Centrality.ConvergenceThreshold,
		EnableCaching:        c.Centrality.EnableCaching,
	}
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	// Determine parser based on extension
	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		// Try to detect from content or default to TOML
		parser = toml.Parser()
	}

	// Load the config file
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	// Unmarshal into config struct
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	// Standard config file names to search for
	configNames := []string{
		"lodestone.toml",
		"lodestone.yaml",
		"lodestone.yml",
		"lodestone.json",
		".lodestone.toml",
		".lodestone.yaml",
		".lodestone.yml",
		".lodestone.json",
	}

	// Search in current directory and .lodestone directory
	searchDirs := []string{".", ".lodestone"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	// Check directory exclusions
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	// Check extension exclusions
	ext := filepath.Ext(path)
	for _, excludeExt := range c.Exclude.Extensions {
		if ext == excludeExt {
			return true
		}
	}

	// Check pattern exclusions
	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"

	"github.com/avehn/lodestone/pkg/config"
	"github.com/avehn/lodestone/pkg/corpus"
)

func initCmd() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create a lodestone configuration file",
		Description: `Creates a lodestone.toml configuration file in the current directory
with sensible defaults. Use --output to choose a different location and
--sample to also write a starter corpus document.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "lodestone.toml",
				Usage:   "Output file path",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite existing files",
			},
			&cli.BoolFlag{
				Name:  "sample",
				Usage: "Also write a starter corpus document (sample.corpus.yaml)",
			},
		},
		Action: runInitCmd,
	}
}

func runInitCmd(c *cli.Context) error {
	outputPath := c.String("output")
	force := c.Bool("force")

	// Check if file already exists
	if _, err := os.Stat(outputPath); err == nil && !force {
		return fmt.Errorf("config file %q already exists (use --force to overwrite)", outputPath)
	}

	// Create parent directory if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", dir, err)
		}
	}

	content, err := generateDefaultConfig()
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	color.Green("Created %s", outputPath)

	if c.Bool("sample") {
		samplePath := "sample.corpus.yaml"
		if _, err := os.Stat(samplePath); err == nil && !force {
			return fmt.Errorf("corpus document %q already exists (use --force to overwrite)", samplePath)
		}
		if err := corpus.WriteSample(samplePath); err != nil {
			return fmt.Errorf("failed to write corpus document: %w", err)
		}
		color.Green("Created %s", samplePath)
	}

	fmt.Println("Edit these files to describe your codebase.")
	return nil
}

func generateDefaultConfig() (string, error) {
	cfg := config.DefaultConfig()

	content, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config to TOML: %w", err)
	}

	var buf strings.Builder
	buf.WriteString("# Lodestone configuration\n")
	buf.WriteString("# Documentation: https://github.com/avehn/lodestone\n\n")
	buf.Write(content)

	return buf.String(), nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project-level configuration file looked up at the
// workspace root.
const ConfigFileName = ".iconlens.yml"

// IgnoreFileName is the ignore-pattern file looked up at the workspace root.
const IgnoreFileName = ".iconignore"

// ProjectConfig represents the .iconlens.yml configuration file
type ProjectConfig struct {
	// Paths restricts scanning to these subfolders (relative to the root).
	// Empty means a full recursive walk.
	Paths []string `yaml:"paths,omitempty"`

	// Exclude holds additional ignore patterns merged with .iconignore
	Exclude []string `yaml:"exclude,omitempty"`

	// BundleFile is the generated icons bundle, relative to the root
	BundleFile string `yaml:"bundle_file,omitempty"`

	// SpriteFile is the generated SVG sprite, relative to the root
	SpriteFile string `yaml:"sprite_file,omitempty"`

	// UsageInclude / UsageExclude are doublestar globs bounding the usage scan
	UsageInclude string `yaml:"usage_include,omitempty"`
	UsageExclude string `yaml:"usage_exclude,omitempty"`

	Thresholds Thresholds    `yaml:"thresholds,omitempty"`
	Scanner    ScannerConfig `yaml:"scanner,omitempty"`
}

// Thresholds carries the classification heuristics. They are deliberately
// configurable: the color-count cutoff and the animation substring checks are
// "good enough" heuristics, not established constants.
type Thresholds struct {
	RasterizedColors int `yaml:"rasterized_colors,omitempty"`
	MaxCacheEntries  int `yaml:"max_cache_entries,omitempty"`
}

// LoadProjectConfig attempts to load .iconlens.yml from the workspace root.
// A missing file yields an empty config, not an error.
func LoadProjectConfig(root string) (*ProjectConfig, error) {
	configPath := filepath.Join(root, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &ProjectConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	if err := ValidateProjectConfig(data); err != nil {
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}

	return &cfg, nil
}

// RasterizedColorThreshold returns the configured cutoff or the default
func (c *ProjectConfig) RasterizedColorThreshold() int {
	if c != nil && c.Thresholds.RasterizedColors > 0 {
		return c.Thresholds.RasterizedColors
	}
	return DefaultRasterizedColorThreshold
}

// MaxCacheEntries returns the configured cache capacity or the default
func (c *ProjectConfig) MaxCacheEntries() int {
	if c != nil && c.Thresholds.MaxCacheEntries > 0 {
		return c.Thresholds.MaxCacheEntries
	}
	return DefaultMaxCacheEntries
}

// MergeExcludes merges config excludes with CLI excludes, deduplicated,
// preserving first-seen order.
func (c *ProjectConfig) MergeExcludes(cliExcludes []string) []string {
	seen := make(map[string]bool)
	var result []string

	add := func(patterns []string) {
		for _, pattern := range patterns {
			if pattern == "" || seen[pattern] {
				continue
			}
			seen[pattern] = true
			result = append(result, pattern)
		}
	}

	if c != nil {
		add(c.Exclude)
	}
	add(cliExcludes)

	return result
}

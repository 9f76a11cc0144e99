package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the base name of the config file without extension.
const ConfigFileName = "regview"

// ConfigDir is the directory where config files are stored.
const ConfigDir = ".config"

// configExtensions are the supported config file extensions in priority order.
var configExtensions = []string{".yaml", ".yml", ".json", ".jsonc"}

// Load searches for .config/regview.{yaml,yml,json,jsonc} under rootDir.
// Settings missing from the file keep their defaults. Returns nil if no
// config is found (not an error).
func Load(rootDir string) (*Config, error) {
	for _, ext := range configExtensions {
		path := filepath.Join(rootDir, ConfigDir, ConfigFileName+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		cfg, err := Parse(data, ext)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, nil
	}
	return nil, nil
}

// LoadFile reads the config at path; its extension picks the decoder.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of Default(). ext is one of the config
// extensions; .json files may carry comments and trailing commas.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config extension %q", ext)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault returns config or defaults if not found.
func LoadOrDefault(rootDir string) *Config {
	cfg, err := Load(rootDir)
	if err != nil || cfg == nil {
		return Default()
	}
	return cfg
}

// ExpandSamples expands the Samples globs relative to rootDir and returns
// the matching file paths, sorted and without duplicates. A sample without
// glob characters is returned as is, whether or not it exists.
func (c *Config) ExpandSamples(rootDir string) ([]string, error) {
	return ExpandGlobs(rootDir, c.Samples)
}

// ExpandGlobs is ExpandSamples for an explicit list of patterns.
func ExpandGlobs(rootDir string, patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(rootDir, pattern)
		}
		matches := []string{pattern}
		if isGlob(filepath.ToSlash(pattern)) {
			var err error
			matches, err = doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("sample glob %q: %w", pattern, err)
			}
		}

		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				result = append(result, m)
			}
		}
	}

	sort.Strings(result)
	return result, nil
}

// isGlob returns true if the pattern contains glob characters.
func isGlob(pattern string) bool {
	return doublestar.ValidatePattern(pattern) && containsMeta(pattern)
}

func containsMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

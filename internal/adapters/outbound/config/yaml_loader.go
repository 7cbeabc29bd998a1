package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mockguard/mockguard/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the project root.
const FileName = ".mockguard.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .mockguard.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .mockguard.yaml from projectPath.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, FileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.ProjectConfig{}, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("parsing %s: %w", FileName, err)
	}

	// Validate before merging to catch typos in the user's raw input.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid %s: %w", FileName, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit values on top of defaults.
// Explicit (non-zero) values always win.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := base

	if override.Contract != "" {
		result.Contract = override.Contract
	}
	if override.Mappings != "" {
		result.Mappings = override.Mappings
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Workers > 0 {
		result.Workers = override.Workers
	}
	result.Strict = base.Strict || override.Strict
	result.Recursive = base.Recursive || override.Recursive
	result.QueryOnly = base.QueryOnly || override.QueryOnly

	if len(override.Skip) > 0 {
		result.Skip = override.Skip
	}
	if len(override.Exclude) > 0 {
		result.Exclude = override.Exclude
	}

	return result
}

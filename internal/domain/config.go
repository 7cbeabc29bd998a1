package domain

import (
	"fmt"
	"path"
)

// Output formats understood by the report layer.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatJUnit   = "junit"
	FormatGitHub  = "github"
)

// ValidFormats enumerates all recognized output formats.
var ValidFormats = []string{FormatConsole, FormatJSON, FormatJUnit, FormatGitHub}

// ProjectConfig holds project-level configuration loaded from .mockguard.yaml.
type ProjectConfig struct {
	Contract  string   `yaml:"contract"   json:"contract,omitempty"`
	Mappings  string   `yaml:"mappings"   json:"mappings,omitempty"`
	Format    string   `yaml:"format"     json:"format,omitempty"`
	Workers   int      `yaml:"workers"    json:"workers,omitempty"`
	Strict    bool     `yaml:"strict"     json:"strict,omitempty"`
	Recursive bool     `yaml:"recursive"  json:"recursive,omitempty"`
	Skip      []string `yaml:"skip"       json:"skip,omitempty"`
	Exclude   []string `yaml:"exclude"    json:"exclude,omitempty"`
	// QueryOnly checks only query parameters, leaving out path, header and
	// cookie parameters that query matchers cannot supply.
	QueryOnly bool     `yaml:"query_only" json:"query_only,omitempty"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{
		Format:  FormatConsole,
		Workers: 1,
	}
}

// SkippedKinds resolves the skip list into check kinds. Call Validate first.
func (c ProjectConfig) SkippedKinds() []CheckKind {
	var out []CheckKind
	for _, s := range c.Skip {
		if k, err := ParseCheckKind(s); err == nil {
			out = append(out, k)
		}
	}
	return out
}

// IsExcluded reports whether a mapping file name matches an exclude glob.
func (c ProjectConfig) IsExcluded(name string) bool {
	for _, pattern := range c.Exclude {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.Format != "" && !isValidFormat(c.Format) {
		return fmt.Errorf("unknown format %q (valid: console, json, junit, github)", c.Format)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0 (got %d)", c.Workers)
	}

	for _, s := range c.Skip {
		if _, err := ParseCheckKind(s); err != nil {
			return fmt.Errorf("%w in skip", err)
		}
	}

	if len(c.Skip) >= len(CheckKinds) {
		return fmt.Errorf("cannot skip all check kinds (must have at least one active)")
	}

	for _, pattern := range c.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}

	return nil
}

func isValidFormat(f string) bool {
	for _, v := range ValidFormats {
		if v == f {
			return true
		}
	}
	return false
}

package domain_test

import (
	"testing"

	"github.com/mockguard/mockguard/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, domain.FormatConsole, cfg.Format)
	assert.Equal(t, 1, cfg.Workers)
	assert.False(t, cfg.Strict)
	assert.Empty(t, cfg.Skip)
	assert.Empty(t, cfg.Exclude)
	assert.NoError(t, cfg.Validate())
}

func TestValidate_UnknownFormat(t *testing.T) {
	cfg := domain.ProjectConfig{Format: "xml"}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}

func TestValidate_NegativeWorkers(t *testing.T) {
	cfg := domain.ProjectConfig{Workers: -2}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "workers")
}

func TestValidate_UnknownSkipKind(t *testing.T) {
	cfg := domain.ProjectConfig{Skip: []string{"ParamType", "BodyShape"}}
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "BodyShape")
}

func TestValidate_CannotSkipEverything(t *testing.T) {
	var all []string
	for _, k := range domain.CheckKinds {
		all = append(all, string(k))
	}
	cfg := domain.ProjectConfig{Skip: all}
	assert.Error(t, cfg.Validate())
}

func TestValidate_BadExcludePattern(t *testing.T) {
	cfg := domain.ProjectConfig{Exclude: []string{"[unclosed"}}
	assert.Error(t, cfg.Validate())
}

func TestSkippedKinds(t *testing.T) {
	cfg := domain.ProjectConfig{Skip: []string{"ResponsePropertyType", "Method"}}
	assert.Equal(t, []domain.CheckKind{domain.CheckResponsePropertyType, domain.CheckMethod}, cfg.SkippedKinds())
}

func TestIsExcluded(t *testing.T) {
	cfg := domain.ProjectConfig{Exclude: []string{"*_draft.json", "legacy-*"}}
	assert.True(t, cfg.IsExcluded("pets_draft.json"))
	assert.True(t, cfg.IsExcluded("legacy-orders.json"))
	assert.False(t, cfg.IsExcluded("pets.json"))
}

package application_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockguard/mockguard/internal/adapters/outbound/history"
	"github.com/mockguard/mockguard/internal/application"
	"github.com/mockguard/mockguard/internal/domain"
)

type fakeGit struct {
	hash string
	err  error
}

func (g fakeGit) IsGitRepo(string) bool { return g.err == nil }

func (g fakeGit) CommitHash(string) (string, error) { return g.hash, g.err }

type failingHistory struct{}

func (failingHistory) Save(string, domain.RunEntry) error { return errors.New("disk full") }

func (failingHistory) Load(string) ([]domain.RunEntry, error) { return nil, nil }

func petstoreConfig() domain.ProjectConfig {
	cfg := domain.DefaultConfig()
	cfg.Contract = "openapi.yaml"
	cfg.Mappings = "mappings"
	return cfg
}

func TestRunService_RecordsHistoryWithCommit(t *testing.T) {
	project, err := filepath.Abs("../../testdata/petstore")
	require.NoError(t, err)
	historyDir := t.TempDir()

	hist := history.New()
	svc := application.NewRunService(newService(), fakeGit{hash: "feedface"}, projectHistory{hist, historyDir}, nil)

	res, err := svc.Run(context.Background(), project, petstoreConfig())
	require.NoError(t, err)
	assert.Equal(t, "feedface", res.CommitHash)
	assert.Len(t, res.Findings, 29)

	entries, err := hist.Load(historyDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "feedface", entries[0].CommitHash)
	assert.Equal(t, "openapi.yaml", entries[0].Contract)
	assert.Equal(t, 3, entries[0].Fixtures)
	assert.Equal(t, 1, entries[0].Summary.Failed)
	assert.False(t, entries[0].Summary.IsValid)
}

func TestRunService_AppliesSkipAndIgnoresHistoryFailure(t *testing.T) {
	project, err := filepath.Abs("../../testdata/petstore")
	require.NoError(t, err)

	cfg := petstoreConfig()
	cfg.Skip = []string{"ResponsePropertyType"}
	svc := application.NewRunService(newService(), fakeGit{err: errors.New("not a repo")}, failingHistory{}, nil)

	res, err := svc.Run(context.Background(), project, cfg)
	require.NoError(t, err)
	assert.Empty(t, res.CommitHash)
	for _, f := range res.Findings {
		assert.NotEqual(t, domain.CheckResponsePropertyType, f.Kind)
	}
}

func TestRunService_MissingInputs(t *testing.T) {
	svc := application.NewRunService(newService(), nil, nil, nil)

	_, err := svc.Run(context.Background(), ".", domain.DefaultConfig())
	assert.ErrorIs(t, err, application.ErrNoContract)

	cfg := domain.DefaultConfig()
	cfg.Contract = "openapi.yaml"
	_, err = svc.Run(context.Background(), ".", cfg)
	assert.ErrorIs(t, err, application.ErrNoMappings)
}

func TestResolveInputs(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "api.yaml")
	cfg := domain.ProjectConfig{Contract: abs, Mappings: "wiremock/mappings"}

	contractPath, mappingsDir, err := application.ResolveInputs("/work/project", cfg)
	require.NoError(t, err)
	assert.Equal(t, abs, contractPath)
	assert.Equal(t, filepath.Join("/work/project", "wiremock", "mappings"), mappingsDir)
}

// projectHistory redirects history writes to a scratch directory so tests
// never write into testdata.
type projectHistory struct {
	inner *history.FileHistory
	dir   string
}

func (h projectHistory) Save(_ string, e domain.RunEntry) error { return h.inner.Save(h.dir, e) }

func (h projectHistory) Load(string) ([]domain.RunEntry, error) { return h.inner.Load(h.dir) }

package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mockguard/mockguard/internal/adapters/inbound/cli"
	"github.com/mockguard/mockguard/internal/adapters/outbound/config"
	"github.com/mockguard/mockguard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCmd_CreatesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".mockguard.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "contract: openapi.yaml")
	assert.Contains(t, string(data), "mappings: wiremock/mappings")
}

func TestInitCmd_GeneratedConfigLoads(t *testing.T) {
	tmpDir := t.TempDir()

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--contract", "api/openapi.json", "-w", "stubs/mappings"})
	require.NoError(t, root.Execute())

	cfg, err := config.New().Load(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "api/openapi.json", cfg.Contract)
	assert.Equal(t, "stubs/mappings", cfg.Mappings)
	assert.Equal(t, domain.FormatConsole, cfg.Format)
	assert.Equal(t, 1, cfg.Workers)
	assert.Empty(t, cfg.Skip)
}

func TestInitCmd_FailsIfExists(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".mockguard.yaml"), []byte("existing"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir})
	err := root.Execute()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCmd_ForceOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".mockguard.yaml"), []byte("old"), 0644))

	root := cli.NewRootCmdForTest()
	root.SetArgs([]string{"init", tmpDir, "--force"})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(filepath.Join(tmpDir, ".mockguard.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "contract:")
	assert.NotEqual(t, "old", string(data))
}

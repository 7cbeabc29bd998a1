package cli_test

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/mockguard/mockguard/internal/adapters/inbound/cli"
)

const petstoreDir = "../../../../testdata/petstore"

// copyPetstore copies the petstore fixture project into a temp dir so runs
// can write their cache and history without touching testdata.
func copyPetstore(t *testing.T, config string) string {
	t.Helper()
	dst := t.TempDir()
	err := filepath.WalkDir(petstoreDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(petstoreDir, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			if d.Name() == ".mockguard" {
				return filepath.SkipDir
			}
			return os.MkdirAll(target, 0755)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0644)
	})
	require.NoError(t, err)

	if config != "" {
		require.NoError(t, os.WriteFile(filepath.Join(dst, ".mockguard.yaml"), []byte(config), 0644))
	}
	return dst
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	return execute(cmd, args...)
}

func execute(cmd *cobra.Command, args ...string) (string, error) {
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

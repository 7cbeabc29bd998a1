package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mockguard/mockguard/internal/adapters/outbound/config"
	"github.com/mockguard/mockguard/internal/domain"
)

func newInitCmd() *cobra.Command {
	var (
		contractPath string
		mappingsDir  string
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .mockguard.yaml configuration file",
		Long:  "Create a .mockguard.yaml pointing at the project's contract and mappings, with every option documented.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)

			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if err := os.WriteFile(dest, []byte(generateConfig(contractPath, mappingsDir)), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().StringVarP(&contractPath, "contract", "o", "openapi.yaml", "Contract path relative to the project")
	cmd.Flags().StringVarP(&mappingsDir, "mappings", "w", "wiremock/mappings", "Mappings directory relative to the project")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .mockguard.yaml")

	return cmd
}

func generateConfig(contractPath, mappingsDir string) string {
	cfg := domain.DefaultConfig()

	kinds := make([]string, 0, len(domain.CheckKinds))
	for _, k := range domain.CheckKinds {
		kinds = append(kinds, string(k))
	}

	var b strings.Builder
	b.WriteString("# mockguard configuration\n\n")
	fmt.Fprintf(&b, "contract: %s\n", contractPath)
	fmt.Fprintf(&b, "mappings: %s\n\n", mappingsDir)
	fmt.Fprintf(&b, "# %s\n", strings.Join(domain.ValidFormats, " | "))
	fmt.Fprintf(&b, "format: %s\n", cfg.Format)
	fmt.Fprintf(&b, "workers: %d\n", cfg.Workers)
	fmt.Fprintf(&b, "strict: %t\n", cfg.Strict)
	fmt.Fprintf(&b, "recursive: %t\n", cfg.Recursive)
	b.WriteString("# check only query parameters, not path or header ones\n")
	fmt.Fprintf(&b, "query_only: %t\n\n", cfg.QueryOnly)
	fmt.Fprintf(&b, "# skip:  # any of %s\n", strings.Join(kinds, ", "))
	b.WriteString("#   - ResponsePropertyType\n\n")
	b.WriteString("# exclude:\n#   - \"*_draft.json\"\n")
	return b.String()
}

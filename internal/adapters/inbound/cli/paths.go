package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mockguard/mockguard/internal/adapters/outbound/tui"
	"github.com/mockguard/mockguard/internal/application"
)

func newPathsCmd() *cobra.Command {
	var (
		project    projectFlags
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "paths",
		Short: "List the paths and methods a contract declares",
		Long:  "Print every path of the OpenAPI contract with its operations, in declaration order. This is the order mappings are matched in.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath, cfg, err := project.load(cmd)
			if err != nil {
				return err
			}
			if cfg.Contract == "" {
				return application.ErrNoContract
			}
			contractPath := application.ResolvePath(projectPath, cfg.Contract)

			logger := newLogger(cmd.ErrOrStderr(), project.verbose)
			c, err := project.contractLoader(projectPath, logger).Load(cmd.Context(), contractPath)
			if err != nil {
				return fmt.Errorf("loading contract: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(c)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderPaths(c))
			return nil
		},
	}

	project.register(cmd)
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the contract model as JSON")

	return cmd
}

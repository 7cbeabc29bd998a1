package cli

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mockguard/mockguard/internal/adapters/outbound/body"
	"github.com/mockguard/mockguard/internal/adapters/outbound/cache"
	"github.com/mockguard/mockguard/internal/adapters/outbound/config"
	"github.com/mockguard/mockguard/internal/adapters/outbound/contract"
	"github.com/mockguard/mockguard/internal/adapters/outbound/gitinfo"
	"github.com/mockguard/mockguard/internal/adapters/outbound/history"
	"github.com/mockguard/mockguard/internal/adapters/outbound/mappings"
	"github.com/mockguard/mockguard/internal/application"
	"github.com/mockguard/mockguard/internal/domain"
)

// newLogger writes text logs to w. Verbose runs log at debug level,
// otherwise only warnings and errors are shown.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// projectFlags holds the flags shared by commands that read a project.
type projectFlags struct {
	path     string
	contract string
	noCache  bool
	verbose  bool
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "path", ".", "Project directory holding .mockguard.yaml")
	cmd.Flags().StringVarP(&f.contract, "contract", "o", "", "OpenAPI contract file (JSON or YAML)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "Invalidate and bypass the contract cache")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "Log debug details to stderr")
}

// load resolves the project directory and its configuration, with the
// contract flag taking precedence over the config file. Paths from flags are
// relative to the working directory, paths from the config file to the
// project directory.
func (f *projectFlags) load(cmd *cobra.Command) (string, domain.ProjectConfig, error) {
	absPath, err := filepath.Abs(f.path)
	if err != nil {
		return "", domain.ProjectConfig{}, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.New().Load(absPath)
	if err != nil {
		return "", domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("contract") {
		if cfg.Contract, err = filepath.Abs(f.contract); err != nil {
			return "", domain.ProjectConfig{}, fmt.Errorf("resolving contract: %w", err)
		}
	}
	return absPath, cfg, nil
}

// contractLoader returns the contract loader for a project, cached unless
// --no-cache was given.
func (f *projectFlags) contractLoader(projectPath string, logger *slog.Logger) domain.ContractLoader {
	store := cache.New()
	if f.noCache {
		if err := store.Invalidate(projectPath); err != nil {
			logger.Warn("cannot invalidate contract cache", "error", err)
		}
		return contract.New()
	}
	return application.NewCachingContractLoader(contract.New(), store, projectPath, logger)
}

func newRunService(contracts domain.ContractLoader, cfg domain.ProjectConfig, logger *slog.Logger) *application.RunService {
	fixtures := mappings.New(
		mappings.WithRecursive(cfg.Recursive),
		mappings.WithExclude(cfg.Exclude),
	)
	validator := application.NewValidationService(contracts, fixtures, body.New(), application.WithQueryParamsOnly(cfg.QueryOnly), application.WithLogger(logger))
	return application.NewRunService(validator, gitinfo.New(), history.New(), logger)
}

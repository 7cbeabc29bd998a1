package mcp

import (
	"context"
	"fmt"
	"log/slog"

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

// project resolves configuration and builds services for one project
// directory. Every call re-reads .mockguard.yaml so edits are picked up
// without restarting the server.
type project struct {
	path   string
	logger *slog.Logger
}

func (p *project) config() (domain.ProjectConfig, error) {
	cfg, err := config.New().Load(p.path)
	if err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func (p *project) contracts() domain.ContractLoader {
	return application.NewCachingContractLoader(contract.New(), cache.New(), p.path, p.logger)
}

func (p *project) validator(cfg domain.ProjectConfig) *application.ValidationService {
	fixtures := mappings.New(
		mappings.WithRecursive(cfg.Recursive),
		mappings.WithExclude(cfg.Exclude),
	)
	return application.NewValidationService(p.contracts(), fixtures, body.New(), application.WithQueryParamsOnly(cfg.QueryOnly), application.WithLogger(p.logger))
}

func (p *project) runService(cfg domain.ProjectConfig) *application.RunService {
	return application.NewRunService(p.validator(cfg), gitinfo.New(), history.New(), p.logger)
}

// loadContract loads the contract at contractPath, or the configured one
// when contractPath is empty.
func (p *project) loadContract(ctx context.Context, contractPath string) (*domain.Contract, error) {
	if contractPath == "" {
		cfg, err := p.config()
		if err != nil {
			return nil, err
		}
		if cfg.Contract == "" {
			return nil, application.ErrNoContract
		}
		contractPath = cfg.Contract
	}

	c, err := p.contracts().Load(ctx, application.ResolvePath(p.path, contractPath))
	if err != nil {
		return nil, fmt.Errorf("loading contract: %w", err)
	}
	return c, nil
}

package application

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/mockguard/mockguard/internal/domain"
)

// ErrNoContract is returned when neither flags nor config name a contract.
var ErrNoContract = errors.New("no contract given: pass --contract or set contract in .mockguard.yaml")

// ErrNoMappings is returned when neither flags nor config name a mappings dir.
var ErrNoMappings = errors.New("no mappings directory given: pass --mappings or set mappings in .mockguard.yaml")

// RunService runs a validation for a project: it resolves the configured
// inputs against the project directory, stamps the commit and records the
// run in the project history.
type RunService struct {
	validator *ValidationService
	git       domain.GitInfo
	history   domain.RunHistory
	logger    *slog.Logger
}

func NewRunService(validator *ValidationService, git domain.GitInfo, history domain.RunHistory, logger *slog.Logger) *RunService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RunService{validator: validator, git: git, history: history, logger: logger}
}

// Run validates the project at projectPath with cfg. History is best effort:
// a failure to record the run is logged, not returned.
func (s *RunService) Run(ctx context.Context, projectPath string, cfg domain.ProjectConfig) (*domain.Results, error) {
	contractPath, mappingsDir, err := ResolveInputs(projectPath, cfg)
	if err != nil {
		return nil, err
	}

	res, err := s.validator.Validate(ctx, ValidateOptions{
		ContractPath: contractPath,
		MappingsDir:  mappingsDir,
		Workers:      cfg.Workers,
		Skip:         cfg.SkippedKinds(),
	})
	if err != nil {
		return nil, err
	}

	if s.git != nil {
		if hash, err := s.git.CommitHash(projectPath); err == nil {
			res.CommitHash = hash
		}
	}

	if s.history != nil {
		if err := s.history.Save(projectPath, domain.NewRunEntry(cfg.Contract, res)); err != nil {
			s.logger.Warn("cannot record run history", "error", err)
		}
	}

	return res, nil
}

// ResolveInputs returns the contract path and mappings directory of cfg,
// relative paths being taken from projectPath.
func ResolveInputs(projectPath string, cfg domain.ProjectConfig) (contractPath, mappingsDir string, err error) {
	if cfg.Contract == "" {
		return "", "", ErrNoContract
	}
	if cfg.Mappings == "" {
		return "", "", ErrNoMappings
	}
	return ResolvePath(projectPath, cfg.Contract), ResolvePath(projectPath, cfg.Mappings), nil
}

// ResolvePath joins a relative p onto base; absolute paths are returned as is.
func ResolvePath(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

package application

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/mockguard/mockguard/internal/domain"
	"github.com/mockguard/mockguard/internal/domain/check"
)

// ValidateOptions selects the inputs of one validation run.
type ValidateOptions struct {
	ContractPath string
	MappingsDir  string
	// Workers bounds how many mapping files are checked at once. Values
	// below 2 check files strictly one after another.
	Workers int
	// Skip drops findings of these check kinds from the results.
	Skip []domain.CheckKind
}

// ValidationService orchestrates a run:
// load contract -> list mappings -> check each fixture -> collect findings.
type ValidationService struct {
	contracts domain.ContractLoader
	fixtures  domain.FixtureSource
	bodies    domain.BodyReader
	pipeline  *check.Pipeline
	logger    *slog.Logger
	now       func() time.Time
}

// ServiceOption customises a ValidationService.
type ServiceOption func(*ValidationService)

// WithLogger sets the logger used for recoverable per-fixture problems.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *ValidationService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithQueryParamsOnly restricts parameter checks to query parameters.
func WithQueryParamsOnly(enabled bool) ServiceOption {
	return func(s *ValidationService) { s.pipeline = check.NewPipeline(check.QueryParamsOnly(enabled)) }
}

// WithClock overrides the clock used to stamp results.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *ValidationService) { s.now = now }
}

func NewValidationService(
	contracts domain.ContractLoader,
	fixtures domain.FixtureSource,
	bodies domain.BodyReader,
	opts ...ServiceOption,
) *ValidationService {
	s := &ValidationService{
		contracts: contracts,
		fixtures:  fixtures,
		bodies:    bodies,
		pipeline:  check.NewPipeline(),
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Validate checks every fixture under opts.MappingsDir against the contract
// at opts.ContractPath. Findings keep mapping listing order regardless of
// how many workers run.
func (s *ValidationService) Validate(ctx context.Context, opts ValidateOptions) (*domain.Results, error) {
	contract, err := s.contracts.Load(ctx, opts.ContractPath)
	if err != nil {
		return nil, fmt.Errorf("loading contract: %w", err)
	}

	files, err := s.fixtures.List(opts.MappingsDir)
	if err != nil {
		return nil, fmt.Errorf("listing mappings: %w", err)
	}

	s.logger.Debug("validating mappings",
		"contract", opts.ContractPath, "mappings", opts.MappingsDir,
		"paths", len(contract.Paths), "files", len(files), "workers", opts.Workers)

	slots := make([][]domain.Finding, len(files))
	counts := make([]int, len(files))
	if err := s.runAll(ctx, files, func(i int) {
		slots[i], counts[i] = s.checkFile(contract, opts.MappingsDir, files[i])
	}, opts.Workers); err != nil {
		return nil, fmt.Errorf("validating mappings: %w", err)
	}

	res := &domain.Results{Timestamp: s.now()}
	for i := range slots {
		res.Add(slots[i]...)
		res.Fixtures += counts[i]
	}

	return res.Without(opts.Skip...), nil
}

// CheckFixture runs the checks for a single in-memory fixture. Body files are
// resolved against mappingsDir.
func (s *ValidationService) CheckFixture(contract *domain.Contract, mappingsDir string, fx domain.Fixture) []domain.Finding {
	return s.pipeline.Run(contract, fx, s.bodyFunc(mappingsDir, fx))
}

// runAll calls fn for every file index. The context is checked before each
// file is scheduled; work already started is allowed to finish.
func (s *ValidationService) runAll(ctx context.Context, files []string, fn func(i int), workers int) error {
	if workers < 2 {
		for i := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(i)
		}
		return nil
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var cancelled error

	for i := range files {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}

		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(i)
		}(i)
	}

	wg.Wait()
	return cancelled
}

// checkFile loads one mapping file and checks every fixture it holds. A file
// that cannot be decoded becomes a single Error finding.
func (s *ValidationService) checkFile(contract *domain.Contract, mappingsDir, path string) ([]domain.Finding, int) {
	fixtures, err := s.fixtures.Load(path)
	if err != nil {
		name := filepath.Base(path)
		s.logger.Warn("skipping unreadable mapping", "file", path, "error", err)
		f := domain.Errored(domain.CheckURLMatch, name, "reading mapping: %v", err)
		f.Fixture = name
		return []domain.Finding{f}, 0
	}

	var findings []domain.Finding
	checked := 0
	for _, fx := range fixtures {
		if !fx.Complete() {
			s.logger.Debug("skipping incomplete fixture", "fixture", fx.Name)
			continue
		}
		checked++
		findings = append(findings, s.CheckFixture(contract, mappingsDir, fx)...)
	}
	return findings, checked
}

func (s *ValidationService) bodyFunc(mappingsDir string, fx domain.Fixture) check.BodyFunc {
	return func() *domain.BodyProperties {
		props, err := s.bodies.Read(mappingsDir, fx.Response)
		if err != nil {
			s.logger.Warn("cannot read mock response body", "fixture", fx.Name, "error", err)
			return domain.NewBodyProperties(domain.BodyKindUnset)
		}
		return props
	}
}

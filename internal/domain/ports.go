package domain

import "context"

// ContractLoader reads an API contract document into the contract model.
type ContractLoader interface {
	Load(ctx context.Context, path string) (*Contract, error)
}

// FixtureSource lists mock definition files and decodes them.
type FixtureSource interface {
	// List returns mapping file paths in listing order.
	List(mappingsDir string) ([]string, error)
	// Load decodes one mapping file. A file may hold several fixtures.
	Load(path string) ([]Fixture, error)
}

// BodyReader infers the top-level properties of a fixture's response body.
// A nil result with a nil error means the fixture has no body.
type BodyReader interface {
	Read(mappingsDir string, resp *FixtureResponse) (*BodyProperties, error)
}

// ConfigLoader reads project-level configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// RunHistory persists a trail of validation runs.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// GitInfo resolves version-control metadata for a project directory.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
}

// ContractCache stores a previously loaded contract keyed by content hash.
type ContractCache interface {
	Load(projectPath string) (*CachedContract, error)
	Save(projectPath string, cached *CachedContract) error
	Invalidate(projectPath string) error
}

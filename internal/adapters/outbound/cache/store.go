package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mockguard/mockguard/internal/domain"
)

// Dir is the project-relative directory holding cached contracts.
const Dir = ".mockguard/cache"

const fileName = "contract.json"

// Store is a file-based implementation of domain.ContractCache.
type Store struct{}

// New creates a new file-based contract cache.
func New() *Store {
	return &Store{}
}

// Load reads the cached contract for a project. Returns (nil, nil) if no
// cache exists.
func (s *Store) Load(projectPath string) (*domain.CachedContract, error) {
	data, err := os.ReadFile(cachePath(projectPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // no cache is not an error
		}
		return nil, err
	}

	var cached domain.CachedContract
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("decoding contract cache: %w", err)
	}
	return &cached, nil
}

// Save writes the cached contract, creating directories as needed.
func (s *Store) Save(projectPath string, cached *domain.CachedContract) error {
	if err := os.MkdirAll(filepath.Join(projectPath, Dir), 0755); err != nil {
		return err
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return err
	}

	// Write then rename so concurrent readers never see a partial file.
	tmp := cachePath(projectPath) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, cachePath(projectPath))
}

// Invalidate removes the cache file for the given project path.
func (s *Store) Invalidate(projectPath string) error {
	if err := os.Remove(cachePath(projectPath)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func cachePath(projectPath string) string {
	return filepath.Join(projectPath, Dir, fileName)
}

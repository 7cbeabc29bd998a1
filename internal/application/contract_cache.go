package application

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"os"

	"github.com/mockguard/mockguard/internal/domain"
)

// CachingContractLoader wraps a ContractLoader with a content-hash keyed
// cache stored under the project directory. Cache failures never fail a load.
type CachingContractLoader struct {
	inner       domain.ContractLoader
	cache       domain.ContractCache
	projectPath string
	logger      *slog.Logger
}

func NewCachingContractLoader(inner domain.ContractLoader, cache domain.ContractCache, projectPath string, logger *slog.Logger) *CachingContractLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachingContractLoader{inner: inner, cache: cache, projectPath: projectPath, logger: logger}
}

func (l *CachingContractLoader) Load(ctx context.Context, path string) (*domain.Contract, error) {
	hash := fileHash(path)
	if hash == "" {
		return l.inner.Load(ctx, path)
	}

	cached, err := l.cache.Load(l.projectPath)
	if err != nil {
		l.logger.Warn("ignoring unreadable contract cache", "error", err)
	}
	if cached != nil && !cached.IsInvalidated(path, hash) {
		l.logger.Debug("contract cache hit", "contract", path)
		return cached.Contract, nil
	}

	contract, err := l.inner.Load(ctx, path)
	if err != nil {
		return nil, err
	}

	entry := &domain.CachedContract{ContractPath: path, ContentHash: hash, Contract: contract}
	if err := l.cache.Save(l.projectPath, entry); err != nil {
		l.logger.Warn("cannot write contract cache", "error", err)
	}
	return contract, nil
}

// Invalidate drops any cached contract for the project.
func (l *CachingContractLoader) Invalidate() error {
	return l.cache.Invalidate(l.projectPath)
}

func fileHash(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h)
}

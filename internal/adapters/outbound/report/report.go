// Package report writes validation results in machine-readable formats for
// build pipelines. Console output is rendered by the tui package.
package report

import (
	"fmt"
	"io"

	"github.com/mockguard/mockguard/internal/domain"
)

// Formatter writes results to w in one output format.
type Formatter interface {
	Format(w io.Writer, res *domain.Results) error
}

// ForFormat returns the formatter for a machine-readable output format.
func ForFormat(name string) (Formatter, error) {
	switch name {
	case domain.FormatJSON:
		return JSON{}, nil
	case domain.FormatJUnit:
		return JUnit{}, nil
	case domain.FormatGitHub:
		return GitHub{}, nil
	default:
		return nil, fmt.Errorf("no report formatter for format %q", name)
	}
}

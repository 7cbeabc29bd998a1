package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/mockguard/mockguard/internal/domain"
)

// JSON writes results as an indented JSON document.
type JSON struct{}

type jsonReport struct {
	Timestamp  time.Time        `json:"timestamp"`
	CommitHash string           `json:"commitHash,omitempty"`
	Fixtures   int              `json:"fixtures"`
	Summary    domain.Summary   `json:"summary"`
	Results    []domain.Finding `json:"results"`
}

func (JSON) Format(w io.Writer, res *domain.Results) error {
	out := jsonReport{
		Timestamp:  res.Timestamp.UTC(),
		CommitHash: res.CommitHash,
		Fixtures:   res.Fixtures,
		Summary:    res.Summary(),
		Results:    res.Findings,
	}
	if out.Results == nil {
		out.Results = []domain.Finding{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

package domain

import "time"

// RunEntry is one recorded validation run.
type RunEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	CommitHash string    `json:"commit_hash,omitempty"`
	Contract   string    `json:"contract"`
	Fixtures   int       `json:"fixtures"`
	Summary    Summary   `json:"summary"`
}

// NewRunEntry summarises results for the history trail.
func NewRunEntry(contract string, res *Results) RunEntry {
	return RunEntry{
		Timestamp:  res.Timestamp,
		CommitHash: res.CommitHash,
		Contract:   contract,
		Fixtures:   res.Fixtures,
		Summary:    res.Summary(),
	}
}

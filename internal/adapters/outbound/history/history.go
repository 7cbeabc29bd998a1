package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mockguard/mockguard/internal/domain"
)

const historyFile = ".mockguard/history/runs.json"

// MaxEntries bounds the stored trail; older runs are dropped first.
const MaxEntries = 200

// FileHistory implements domain.RunHistory using JSON file storage.
type FileHistory struct {
	limit int
}

func New() *FileHistory {
	return &FileHistory{limit: MaxEntries}
}

func (h *FileHistory) Save(projectPath string, entry domain.RunEntry) error {
	entries, err := h.Load(projectPath)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if h.limit > 0 && len(entries) > h.limit {
		entries = entries[len(entries)-h.limit:]
	}

	fp := filepath.Join(projectPath, historyFile)
	if err := os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(fp, data, 0644)
}

// Load returns recorded runs oldest first.
func (h *FileHistory) Load(projectPath string) ([]domain.RunEntry, error) {
	fp := filepath.Join(projectPath, historyFile)

	data, err := os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.RunEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decoding run history: %w", err)
	}

	return entries, nil
}

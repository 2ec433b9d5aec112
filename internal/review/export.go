// Package review writes uncertain resolution results to disk for manual
// follow-up.
package review

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"showtag/internal/identity"
)

// Report is the on-disk review document. One report covers one resolve run.
type Report struct {
	RunID       string                    `json:"run_id"`
	GeneratedAt time.Time                 `json:"generated_at"`
	Matches     []identity.UncertainMatch `json:"matches"`
}

// Write exports uncertain matches into dir and returns the file path. When
// no matches occurred nothing is written and the path is empty.
func Write(dir string, matches []identity.UncertainMatch) (string, error) {
	if len(matches) == 0 {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create review directory: %w", err)
	}

	report := Report{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Matches:     matches,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode review report: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("uncertain-%s.json", report.GeneratedAt.Format("20060102-150405")))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write review report: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("finalize review report: %w", err)
	}
	return path, nil
}

package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FinalReportName is the artifact holding the project completion report.
const FinalReportName = "project_report"

// IndexEntry describes one artifact in the on-disk manifest.
type IndexEntry struct {
	Type      Type   `json:"type"`
	CreatedBy string `json:"created_by"`
	File      string `json:"file"`
}

// Write persists pipeline output under dir.
//
// The final report is always written as final_report.md. When saveAll
// is set, every artifact is written under dir/artifacts with an
// index.json manifest alongside.
func Write(dir string, arts []Artifact, saveAll bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	report := "Project completed with no final report."
	for _, a := range arts {
		if a.Name == FinalReportName {
			report = a.Content
			break
		}
	}
	reportPath := filepath.Join(dir, "final_report.md")
	if err := os.WriteFile(reportPath, []byte(report), 0o644); err != nil {
		return fmt.Errorf("writing final report: %w", err)
	}

	if !saveAll {
		return nil
	}

	artifactsDir := filepath.Join(dir, "artifacts")
	if err := os.MkdirAll(artifactsDir, 0o755); err != nil {
		return fmt.Errorf("creating artifacts directory: %w", err)
	}

	index := make(map[string]IndexEntry, len(arts))
	for _, a := range arts {
		name := a.Filename()
		path := filepath.Join(artifactsDir, name)
		if err := os.WriteFile(path, []byte(a.Content), 0o644); err != nil {
			return fmt.Errorf("writing artifact %s: %w", a.Name, err)
		}
		index[a.Name] = IndexEntry{
			Type:      a.Type,
			CreatedBy: a.CreatedBy,
			File:      name,
		}
	}

	indexJSON, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling artifact index: %w", err)
	}
	indexPath := filepath.Join(artifactsDir, "index.json")
	if err := os.WriteFile(indexPath, indexJSON, 0o644); err != nil {
		return fmt.Errorf("writing artifact index: %w", err)
	}

	return nil
}

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apexforge/apexforge/internal/artifacts"
)

func TestReadRequirementsFromFlag(t *testing.T) {
	runRequirements = "build a tracker"
	defer func() { runRequirements = "" }()

	got, err := readRequirements(nil)
	require.NoError(t, err)
	assert.Equal(t, "build a tracker", got)
}

func TestReadRequirementsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reqs.txt")
	require.NoError(t, os.WriteFile(path, []byte("build a tracker"), 0o644))

	got, err := readRequirements([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "build a tracker", got)
}

func TestReadRequirementsMissing(t *testing.T) {
	_, err := readRequirements(nil)
	assert.ErrorContains(t, err, "requirements are required")

	_, err = readRequirements([]string{filepath.Join(t.TempDir(), "missing.txt")})
	assert.ErrorContains(t, err, "failed to read file")
}

func TestWatchCompletedProject(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/projects/p1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ProjectResponse{
			ProjectID: "p1", Status: "completed", StartedAt: time.Now(),
		})
	})
	mux.HandleFunc("/api/v1/projects/p1/messages", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(MessagesResponse{
			Messages: []Message{{Sender: "System", Content: "done"}},
			LastID:   1,
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	oldURL := serverURL
	serverURL = srv.URL
	defer func() { serverURL = oldURL }()

	status, err := watch(srv.Client(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "completed", status)
}

func TestSaveArtifacts(t *testing.T) {
	report := artifacts.Artifact{
		Name:      artifacts.FinalReportName,
		Type:      artifacts.TypeDocument,
		Content:   "# Final Report",
		CreatedBy: "Project Manager",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/projects/p1/artifacts", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(ArtifactsResponse{Artifacts: []ArtifactSummary{{
			Name: report.Name, Type: string(report.Type), File: report.Filename(),
		}}})
	})
	mux.HandleFunc("/api/v1/projects/p1/artifacts/"+report.Name, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(report)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	oldURL := serverURL
	serverURL = srv.URL
	defer func() { serverURL = oldURL }()

	dir := t.TempDir()
	require.NoError(t, saveArtifacts(srv.Client(), "p1", dir, false))

	data, err := os.ReadFile(filepath.Join(dir, "final_report.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Final Report", string(data))
}

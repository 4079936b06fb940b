package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

// statusCmd shows a project's current state
var statusCmd = &cobra.Command{
	Use:   "status <project-id>",
	Short: "Show the status of a pipeline run",
	Long: `Show the status of a pipeline run: lifecycle state, current
phase and agent, and how much output has been produced so far.

Examples:
  apexctl status 6f1c2a9e-...`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

// ProjectResponse matches internal/http/server.go ProjectResponse
type ProjectResponse struct {
	ProjectID     string     `json:"project_id"`
	Name          string     `json:"name"`
	Status        string     `json:"status"`
	CurrentPhase  string     `json:"current_phase"`
	CurrentAgent  string     `json:"current_agent"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at"`
	MessageCount  int        `json:"message_count"`
	ArtifactCount int        `json:"artifact_count"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	client := &http.Client{Timeout: 10 * time.Second}

	var proj ProjectResponse
	if err := getJSON(client, fmt.Sprintf("%s/api/v1/projects/%s", serverURL, args[0]), &proj); err != nil {
		return err
	}

	fmt.Printf("Project:   %s (%s)\n", proj.Name, proj.ProjectID)
	fmt.Printf("Status:    %s\n", proj.Status)
	if proj.CurrentPhase != "" {
		fmt.Printf("Phase:     %s (%s)\n", proj.CurrentPhase, proj.CurrentAgent)
	}
	fmt.Printf("Started:   %s\n", proj.StartedAt.Format(time.RFC3339))
	if proj.CompletedAt != nil {
		fmt.Printf("Completed: %s\n", proj.CompletedAt.Format(time.RFC3339))
	}
	fmt.Printf("Messages:  %d\n", proj.MessageCount)
	fmt.Printf("Artifacts: %d\n", proj.ArtifactCount)
	return nil
}

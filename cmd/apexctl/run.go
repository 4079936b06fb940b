package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	runName          string
	runRequirements  string
	runOutputDir     string
	runSaveArtifacts bool
)

// runCmd starts a pipeline run and streams progress until it finishes
var runCmd = &cobra.Command{
	Use:   "run [requirements-file]",
	Short: "Start a pipeline run and watch it to completion",
	Long: `Start a pipeline run from a requirements document and stream
progress messages until the run completes or fails.

The requirements are read from the given file, from --requirements, or
from stdin when the file argument is "-".

Examples:
  # Run from a file
  apexctl run requirements.txt --name "Project Tracker"

  # Run from stdin
  cat requirements.txt | apexctl run -

  # Run and save generated artifacts
  apexctl run requirements.txt --output ./out --save-artifacts`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runName, "name", "", "project name")
	runCmd.Flags().StringVar(&runRequirements, "requirements", "", "requirements text (overrides the file argument)")
	runCmd.Flags().StringVar(&runOutputDir, "output", "", "directory to write artifacts into after completion")
	runCmd.Flags().BoolVar(&runSaveArtifacts, "save-artifacts", false, "write every artifact, not just the final report")
}

// CreateProjectRequest matches internal/http/server.go CreateProjectRequest
type CreateProjectRequest struct {
	Name         string `json:"name"`
	Requirements string `json:"requirements"`
}

// CreateProjectResponse matches internal/http/server.go CreateProjectResponse
type CreateProjectResponse struct {
	ProjectID string `json:"project_id"`
}

// Message matches internal/artifacts Message
type Message struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// MessagesResponse matches internal/http/server.go MessagesResponse
type MessagesResponse struct {
	Messages []Message `json:"messages"`
	LastID   int       `json:"last_id"`
}

func runRun(cmd *cobra.Command, args []string) error {
	requirements, err := readRequirements(args)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 30 * time.Second}

	reqJSON, err := json.Marshal(CreateProjectRequest{Name: runName, Requirements: requirements})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(serverURL+"/api/v1/projects", "application/json", bytes.NewReader(reqJSON))
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", serverURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(body))
	}

	var created CreateProjectResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	fmt.Printf("Project started: %s\n", created.ProjectID)

	status, err := watch(client, created.ProjectID)
	if err != nil {
		return err
	}

	if runOutputDir != "" {
		if err := saveArtifacts(client, created.ProjectID, runOutputDir, runSaveArtifacts); err != nil {
			return err
		}
	}

	if status == "error" {
		return fmt.Errorf("pipeline failed")
	}
	fmt.Println("Pipeline completed")
	return nil
}

// readRequirements resolves the requirements text from the flag, the
// file argument, or stdin.
func readRequirements(args []string) (string, error) {
	if runRequirements != "" {
		return runRequirements, nil
	}
	if len(args) == 0 {
		return "", fmt.Errorf("requirements are required: pass a file, \"-\" for stdin, or --requirements")
	}

	var content []byte
	var err error
	if args[0] == "-" {
		content, err = io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
	} else {
		content, err = os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
	}
	if len(content) == 0 {
		return "", fmt.Errorf("requirements are empty")
	}
	return string(content), nil
}

// watch polls the daemon until the project reaches a terminal state,
// printing new messages as they arrive. Returns the final status.
func watch(client *http.Client, projectID string) (string, error) {
	lastID := 0
	for {
		var proj ProjectResponse
		if err := getJSON(client, fmt.Sprintf("%s/api/v1/projects/%s", serverURL, projectID), &proj); err != nil {
			return "", err
		}

		var msgs MessagesResponse
		url := fmt.Sprintf("%s/api/v1/projects/%s/messages?after=%d", serverURL, projectID, lastID)
		if err := getJSON(client, url, &msgs); err != nil {
			return "", err
		}
		lastID = msgs.LastID

		for _, m := range msgs.Messages {
			fmt.Printf("[%s] %s\n", m.Sender, m.Content)
		}

		if proj.Status == "completed" || proj.Status == "error" {
			return proj.Status, nil
		}
		time.Sleep(2 * time.Second)
	}
}

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/apexforge/apexforge/internal/artifacts"
)

var (
	artifactsOutputDir string
	artifactsSaveAll   bool
)

// artifactsCmd lists or downloads a project's artifacts
var artifactsCmd = &cobra.Command{
	Use:   "artifacts <project-id>",
	Short: "List or download a project's artifacts",
	Long: `List the artifacts a pipeline run produced, or download them
to a directory with --output.

By default only the final report is written; --save-all writes every
artifact.

Examples:
  # List artifacts
  apexctl artifacts 6f1c2a9e-...

  # Download everything
  apexctl artifacts 6f1c2a9e-... --output ./out --save-all`,
	Args: cobra.ExactArgs(1),
	RunE: runArtifacts,
}

func init() {
	artifactsCmd.Flags().StringVar(&artifactsOutputDir, "output", "", "directory to write artifacts into")
	artifactsCmd.Flags().BoolVar(&artifactsSaveAll, "save-all", false, "write every artifact, not just the final report")
}

// ArtifactSummary matches internal/http/server.go ArtifactSummary
type ArtifactSummary struct {
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	File      string    `json:"file"`
}

// ArtifactsResponse matches internal/http/server.go ArtifactsResponse
type ArtifactsResponse struct {
	Artifacts []ArtifactSummary `json:"artifacts"`
}

func runArtifacts(cmd *cobra.Command, args []string) error {
	client := &http.Client{Timeout: 30 * time.Second}
	projectID := args[0]

	if artifactsOutputDir != "" {
		return saveArtifacts(client, projectID, artifactsOutputDir, artifactsSaveAll)
	}

	var list ArtifactsResponse
	if err := getJSON(client, fmt.Sprintf("%s/api/v1/projects/%s/artifacts", serverURL, projectID), &list); err != nil {
		return err
	}

	if len(list.Artifacts) == 0 {
		fmt.Println("No artifacts yet")
		return nil
	}
	for _, a := range list.Artifacts {
		fmt.Printf("%-40s %-10s %s\n", a.File, a.Type, a.CreatedBy)
	}
	return nil
}

// saveArtifacts downloads every artifact of a project and writes them
// to dir using the shared disk layout.
func saveArtifacts(client *http.Client, projectID, dir string, saveAll bool) error {
	var list ArtifactsResponse
	if err := getJSON(client, fmt.Sprintf("%s/api/v1/projects/%s/artifacts", serverURL, projectID), &list); err != nil {
		return err
	}

	arts := make([]artifacts.Artifact, 0, len(list.Artifacts))
	for _, summary := range list.Artifacts {
		var a artifacts.Artifact
		url := fmt.Sprintf("%s/api/v1/projects/%s/artifacts/%s", serverURL, projectID, summary.Name)
		if err := getJSON(client, url, &a); err != nil {
			return err
		}
		arts = append(arts, a)
	}

	if err := artifacts.Write(dir, arts, saveAll); err != nil {
		return fmt.Errorf("writing artifacts: %w", err)
	}
	fmt.Printf("Artifacts written to %s\n", dir)
	return nil
}

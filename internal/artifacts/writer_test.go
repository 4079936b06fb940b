package artifacts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactFilename(t *testing.T) {
	tests := []struct {
		artifact Artifact
		want     string
	}{
		{Artifact{Name: "business_requirements_doc", Type: TypeDocument}, "business_requirements_doc.md"},
		{Artifact{Name: "erd_diagram", Type: TypeDiagram}, "erd_diagram.mmd"},
		{Artifact{Name: "database_scripts", Type: TypeCode}, "database_scripts.sql"},
		{Artifact{Name: "apex_application", Type: TypeCode}, "apex_application.sql"},
		{Artifact{Name: "frontend_assets", Type: TypeCode}, "frontend_assets.js"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.artifact.Filename())
	}
}

func TestWriteFinalReportOnly(t *testing.T) {
	dir := t.TempDir()
	arts := []Artifact{
		{Name: FinalReportName, Type: TypeDocument, Content: "# Final Report", CreatedBy: "Project Manager"},
		{Name: "erd_diagram", Type: TypeDiagram, Content: "erDiagram", CreatedBy: "Database Designer"},
	}

	require.NoError(t, Write(dir, arts, false))

	report, err := os.ReadFile(filepath.Join(dir, "final_report.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Final Report", string(report))

	_, err = os.Stat(filepath.Join(dir, "artifacts"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	arts := []Artifact{
		{Name: FinalReportName, Type: TypeDocument, Content: "# Final Report", CreatedBy: "Project Manager"},
		{Name: "database_scripts", Type: TypeCode, Content: "CREATE TABLE t (id NUMBER);", CreatedBy: "Database Developer"},
		{Name: "workflow_diagram", Type: TypeDiagram, Content: "flowchart TD", CreatedBy: "Business Analyst"},
	}

	require.NoError(t, Write(dir, arts, true))

	sql, err := os.ReadFile(filepath.Join(dir, "artifacts", "database_scripts.sql"))
	require.NoError(t, err)
	assert.Contains(t, string(sql), "CREATE TABLE")

	indexRaw, err := os.ReadFile(filepath.Join(dir, "artifacts", "index.json"))
	require.NoError(t, err)

	var index map[string]IndexEntry
	require.NoError(t, json.Unmarshal(indexRaw, &index))
	require.Len(t, index, 3)
	assert.Equal(t, "database_scripts.sql", index["database_scripts"].File)
	assert.Equal(t, TypeCode, index["database_scripts"].Type)
	assert.Equal(t, "Database Developer", index["database_scripts"].CreatedBy)
	assert.Equal(t, "workflow_diagram.mmd", index["workflow_diagram"].File)
}

func TestWriteWithoutReportUsesPlaceholder(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, nil, false))

	report, err := os.ReadFile(filepath.Join(dir, "final_report.md"))
	require.NoError(t, err)
	assert.Equal(t, "Project completed with no final report.", string(report))
}

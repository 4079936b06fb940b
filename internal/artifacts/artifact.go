// Package artifacts holds the artifact model, the in-memory project
// store used by the daemon, and the disk writer for generated output.
package artifacts

import (
	"strings"
	"time"
)

// Type classifies an artifact for rendering and file extension choice.
type Type string

const (
	TypeDocument Type = "document"
	TypeDiagram  Type = "diagram"
	TypeCode     Type = "code"
)

// Artifact is a single generated deliverable: a document, a mermaid
// diagram, or a code file. Content structure is whatever the producing
// agent emitted; the pipeline treats it as opaque text.
type Artifact struct {
	Name      string    `json:"name"`
	Type      Type      `json:"type"`
	Content   string    `json:"content"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Filename returns the on-disk filename for the artifact.
//
// Documents get .md, diagrams .mmd. Code artifacts get .sql when the
// name suggests database or APEX output, .js otherwise.
func (a Artifact) Filename() string {
	switch a.Type {
	case TypeDiagram:
		return a.Name + ".mmd"
	case TypeCode:
		if strings.Contains(a.Name, "database") || strings.Contains(a.Name, "apex") {
			return a.Name + ".sql"
		}
		return a.Name + ".js"
	default:
		return a.Name + ".md"
	}
}

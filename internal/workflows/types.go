// Package workflows provides the Temporal pipeline that turns a
// requirements document into Oracle APEX application artifacts.
package workflows

import (
	"github.com/apexforge/apexforge/internal/agents"
	"github.com/apexforge/apexforge/internal/artifacts"
)

// Pipeline phases, executed in this order.
const (
	PhaseBusinessAnalysis       = "business_analysis"
	PhaseDatabaseDesign         = "database_design"
	PhaseDatabaseImplementation = "database_implementation"
	PhaseAPEXDevelopment        = "apex_development"
	PhaseFrontendEnhancement    = "frontend_enhancement"
	PhaseQATesting              = "qa_testing"
	PhaseProjectCompletion      = "project_completion"
)

// Phases lists the pipeline phases in execution order.
var Phases = []string{
	PhaseBusinessAnalysis,
	PhaseDatabaseDesign,
	PhaseDatabaseImplementation,
	PhaseAPEXDevelopment,
	PhaseFrontendEnhancement,
	PhaseQATesting,
	PhaseProjectCompletion,
}

// AgentFor returns the persona that runs a phase.
func AgentFor(phase string) agents.Agent {
	switch phase {
	case PhaseBusinessAnalysis:
		return agents.BusinessAnalyst()
	case PhaseDatabaseDesign:
		return agents.DatabaseDesigner()
	case PhaseDatabaseImplementation:
		return agents.DatabaseDeveloper()
	case PhaseAPEXDevelopment:
		return agents.APEXDeveloper()
	case PhaseFrontendEnhancement:
		return agents.FrontendDeveloper()
	case PhaseQATesting:
		return agents.QAEngineer()
	default:
		return agents.ProjectManager()
	}
}

// PipelineInput starts a pipeline run.
type PipelineInput struct {
	ProjectID    string
	ProjectName  string
	Requirements string
}

// PipelineResult summarizes a pipeline run.
type PipelineResult struct {
	ProjectID       string
	CompletedPhases []string
	ArtifactNames   []string
	Errors          []string
}

// PhaseResult is the output of a phase activity: the primary content
// passed to downstream phases plus every artifact the phase produced.
type PhaseResult struct {
	Content   string
	Artifacts []artifacts.Artifact
}

// AnalysisInput feeds the business analysis activity.
type AnalysisInput struct {
	ProjectID    string
	ProjectName  string
	Requirements string
}

// DesignInput feeds the database design activity.
type DesignInput struct {
	ProjectID    string
	ProjectName  string
	Requirements string
	AnalysisDoc  string
}

// ImplementationInput feeds the database implementation activity.
type ImplementationInput struct {
	ProjectID string
	DesignDoc string
}

// APEXInput feeds the APEX development activity.
type APEXInput struct {
	ProjectID       string
	ProjectName     string
	Requirements    string
	DesignDoc       string
	DatabaseScripts string
}

// FrontendInput feeds the frontend enhancement activity.
type FrontendInput struct {
	ProjectID       string
	ProjectName     string
	APEXApplication string
}

// QAInput feeds the QA testing activity.
type QAInput struct {
	ProjectID       string
	ProjectName     string
	Requirements    string
	APEXApplication string
	FrontendAssets  string
}

// CompletionInput feeds the project completion activity.
type CompletionInput struct {
	ProjectID       string
	ProjectName     string
	Requirements    string
	CompletedPhases []string
	ArtifactNames   []string
	Errors          []string
}

// FailureInput feeds the failure notification activity.
type FailureInput struct {
	ProjectID string
	Error     string
}

package docs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementsDocument(t *testing.T) {
	reqs := []Requirement{
		{ID: "OBJ-1", Name: "Track projects", Type: "objective", Description: "Provide a single place to track project work."},
		{ID: "REQ-1", Name: "Project list", Type: "functional", Category: "Reporting", Priority: "High", Description: "List all projects."},
		{ID: "REQ-2", Name: "Project form", Type: "functional", Description: "Create and edit projects."},
		{ID: "NFR-1", Name: "Response time", Type: "non-functional", Description: "Pages render in under two seconds."},
		{ID: "RULE-1", Name: "Unique names", Type: "business rule", Description: "Project names must be unique."},
		{ID: "DATA-1", Name: "Project data", Type: "data", Description: "Core entities.", Entities: []string{"PROJECTS", "TASKS"}},
		{ID: "REP-1", Name: "Progress dashboard", Type: "reporting", Description: "Show completion.", Metrics: []string{"percent complete"}},
	}
	stakeholders := []Stakeholder{
		{Name: "Dana", Role: "Sponsor", Interests: "On-time delivery."},
	}

	out := RequirementsDocument("Tracker", "A project tracking app.", reqs, stakeholders, []string{"Must run on APEX 24.2"})

	assert.True(t, strings.HasPrefix(out, "# Business Requirements Document: Tracker\n"))
	assert.Contains(t, out, "A project tracking app.")
	assert.Contains(t, out, "### Dana\n**Role:** Sponsor")
	assert.Contains(t, out, "### OBJ-1: Track projects")

	// Functional requirements group by category, default "General".
	assert.Contains(t, out, "## Functional Requirements")
	assert.Contains(t, out, "### Reporting")
	assert.Contains(t, out, "### General")
	assert.Contains(t, out, "#### REQ-1: Project list\n**Priority:** High")
	assert.Contains(t, out, "#### REQ-2: Project form\n**Priority:** Medium")

	assert.Contains(t, out, "## Non-Functional Requirements")
	assert.Contains(t, out, "### RULE-1: Unique names")
	assert.Contains(t, out, "- Must run on APEX 24.2")
	assert.Contains(t, out, "## Data Requirements")
	assert.Contains(t, out, "- PROJECTS")
	assert.Contains(t, out, "**Key Metrics:**")
}

func TestRequirementsDocumentNoObjectives(t *testing.T) {
	out := RequirementsDocument("P", "Summary", nil, nil, nil)
	assert.Contains(t, out, "The project aims to deliver an Oracle APEX application")
	assert.NotContains(t, out, "## Functional Requirements")
}

func TestProjectPlan(t *testing.T) {
	reqs := []PlanRequirement{
		{ID: "REQ-1", Name: "Project list", Priority: "High", EstimateDays: 10},
		{ID: "REQ-2", Name: "Project form", EstimateDays: 10},
	}
	team := []TeamMember{
		{Name: "Sam", Role: "Developer"},
	}

	out := ProjectPlan("Tracker", "2026-01-05", reqs, team, nil)

	assert.Contains(t, out, "# Project Plan: Tracker")
	assert.Contains(t, out, "The project will begin on 2026-01-05 and is estimated to complete by 2026-01-25, spanning a total of 20 days.")
	assert.Contains(t, out, "| Developer | Sam | 100% |")
	assert.Contains(t, out, "| REQ-1 | Project list | High | 10 |")
	assert.Contains(t, out, "| REQ-2 | Project form | Medium | 10 |")

	// Default milestones spread over the standard phases.
	assert.Contains(t, out, "| Business Analysis Complete | 2026-01-08 | Business Requirements Document, Workflow Diagrams |")
	assert.Contains(t, out, "| Project Complete |")

	assert.Contains(t, out, "### APEX Development")
	assert.Contains(t, out, "- Dashboard creation")
	assert.Contains(t, out, "## Risk Management")
	assert.Contains(t, out, "| Scope Creep | High | Medium |")
	assert.Contains(t, out, "## Communication Plan")
}

func TestProjectPlanExplicitMilestones(t *testing.T) {
	milestones := []Milestone{
		{Name: "Go Live", Date: "2026-03-01", Deliverables: []string{"Production release"}},
	}
	out := ProjectPlan("Tracker", "2026-01-05", nil, nil, milestones)

	assert.Contains(t, out, "| Go Live | 2026-03-01 | Production release |")
	assert.NotContains(t, out, "Business Analysis Complete")
}

func TestStatusReport(t *testing.T) {
	phases := []PhaseProgress{
		{Name: "Business Analysis", Status: "Completed", PercentComplete: 100},
		{Name: "Database Design", Status: "In Progress", PercentComplete: 50},
	}
	tasks := []Task{
		{Name: "Draft ERD", Owner: "Dana", Status: "In Progress", DueDate: "2026-02-01"},
		{Name: "Review BRD", Owner: "Sam", Status: "Completed"},
	}
	issues := []Issue{
		{Description: "Schema access pending", Severity: "Medium", Owner: "Sam"},
	}

	out := StatusReport("Tracker", "2026-01-20", phases, tasks, issues, []string{"Finish ERD"})

	assert.Contains(t, out, "**Overall Status:** Caution")
	assert.Contains(t, out, "**Overall Progress:** 75.0%")
	assert.Contains(t, out, "**Phase Status:** 1/2 phases completed, 1 in progress")
	assert.Contains(t, out, "**Task Status:** 1/2 tasks completed, 1 in progress, 0 not started")
	assert.Contains(t, out, "| Draft ERD | Dana | In Progress | 2026-02-01 |")
	assert.Contains(t, out, "| Schema access pending | Medium | Sam | Open |")
	assert.Contains(t, out, "- Finish ERD")
}

func TestStatusReportSeverityDrivesStatus(t *testing.T) {
	out := StatusReport("P", "2026-01-20", nil, nil,
		[]Issue{{Description: "Env down", Severity: "High"}}, nil)
	assert.Contains(t, out, "**Overall Status:** At Risk")

	out = StatusReport("P", "2026-01-20", nil, nil, nil, nil)
	assert.Contains(t, out, "**Overall Status:** On Track")
	assert.NotContains(t, out, "## Issues and Risks")
}

func TestTestCase(t *testing.T) {
	out := TestCase("Project Form", "functional", []string{"REQ-2"})

	require.True(t, strings.HasPrefix(out, "# Test Case: Project Form\n"))
	assert.Contains(t, out, "## Test Type: functional")
	assert.Contains(t, out, "- REQ-2")
	assert.Contains(t, out, "### Prerequisites:")
	assert.Contains(t, out, "Oracle APEX version: 24.2")
	assert.Contains(t, out, "### Pass/Fail Criteria:")
}

func TestTestReport(t *testing.T) {
	results := TestResults{
		Total: 40, Passed: 36, Failed: 3, Blocked: 1,
		Features: []FeatureResult{
			{Name: "Project Form", TestCases: 12, Status: "Passed"},
			{Name: "Dashboard", TestCases: 8},
		},
	}
	issues := []TestIssue{
		{ID: "BUG-1", Description: "Save fails on long names", Severity: "High", Status: "Open", Recommendation: "Trim input"},
		{Description: "Minor misalignment", Severity: "Low", Status: "Open"},
	}

	out := TestReport("Tracker", results, issues)

	assert.Contains(t, out, "# Test Report: Tracker")
	assert.Contains(t, out, "- **Passed:** 36 (90.0%)")
	assert.Contains(t, out, "- **High:** 1")
	assert.Contains(t, out, "- **Low:** 1")
	assert.Contains(t, out, "| BUG-1 | Save fails on long names | High | Open | Trim input |")
	// Issues without an ID get a positional one.
	assert.Contains(t, out, "| ISSUE-2 | Minor misalignment |")
	assert.Contains(t, out, "| Project Form | 12 | Passed |")
	assert.Contains(t, out, "| Dashboard | 8 | Unknown |")
}

func TestTestReportNoIssues(t *testing.T) {
	out := TestReport("Tracker", TestResults{Total: 5, Passed: 5}, nil)
	assert.Contains(t, out, "No issues were found during testing.")
}

package docs

import (
	"fmt"
	"strings"
)

// PhaseProgress tracks one phase in a status report.
type PhaseProgress struct {
	Name            string
	Status          string // Completed, In Progress, Not Started
	PercentComplete float64
	Weight          float64 // defaults to 1
	Notes           string
}

// Task is one row of the task status table.
type Task struct {
	Name    string
	Owner   string
	Status  string
	DueDate string
	Notes   string
}

// Issue is an open issue or risk.
type Issue struct {
	Description string
	Severity    string // Critical, High, Medium, Low
	Owner       string
	Status      string
	Mitigation  string
}

// StatusReport renders a project status report. Overall status derives
// from issue severity: any high issue means "At Risk", any medium
// means "Caution", otherwise "On Track".
func StatusReport(projectName, asOfDate string, phases []PhaseProgress, tasks []Task, issues []Issue, nextSteps []string) string {
	completedPhases, inProgressPhases := 0, 0
	var weightedProgress, totalWeight float64
	for _, p := range phases {
		switch strings.ToLower(p.Status) {
		case "completed":
			completedPhases++
		case "in progress":
			inProgressPhases++
		}
		weight := p.Weight
		if weight == 0 {
			weight = 1
		}
		weightedProgress += weight * p.PercentComplete
		totalWeight += weight
	}
	overallProgress := 0.0
	if totalWeight > 0 {
		overallProgress = weightedProgress / totalWeight
	}

	completedTasks, inProgressTasks, notStartedTasks := 0, 0, 0
	for _, t := range tasks {
		switch strings.ToLower(t.Status) {
		case "completed":
			completedTasks++
		case "in progress":
			inProgressTasks++
		case "not started":
			notStartedTasks++
		}
	}

	overallStatus := "On Track"
	for _, issue := range issues {
		switch strings.ToLower(issue.Severity) {
		case "high", "critical":
			overallStatus = "At Risk"
		case "medium":
			if overallStatus == "On Track" {
				overallStatus = "Caution"
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Project Status Report: %s\n\n", projectName)
	fmt.Fprintf(&b, "**Date:** %s\n\n", asOfDate)

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "**Overall Status:** %s\n\n", overallStatus)
	fmt.Fprintf(&b, "**Overall Progress:** %.1f%%\n\n", overallProgress)
	fmt.Fprintf(&b, "**Phase Status:** %d/%d phases completed, %d in progress\n\n",
		completedPhases, len(phases), inProgressPhases)
	fmt.Fprintf(&b, "**Task Status:** %d/%d tasks completed, %d in progress, %d not started\n\n",
		completedTasks, len(tasks), inProgressTasks, notStartedTasks)

	b.WriteString("## Progress by Phase\n\n")
	for _, p := range phases {
		fmt.Fprintf(&b, "### %s\n", p.Name)
		fmt.Fprintf(&b, "**Status:** %s\n", orDefault(p.Status, "Not Started"))
		fmt.Fprintf(&b, "**Progress:** %g%%\n", p.PercentComplete)
		if p.Notes != "" {
			fmt.Fprintf(&b, "**Notes:** %s\n", p.Notes)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Tasks Status\n\n")
	b.WriteString("| Task | Owner | Status | Due Date | Notes |\n")
	b.WriteString("|------|-------|--------|----------|-------|\n")
	for _, t := range tasks {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			t.Name, t.Owner, orDefault(t.Status, "Not Started"), t.DueDate, t.Notes)
	}
	b.WriteString("\n")

	if len(issues) > 0 {
		b.WriteString("## Issues and Risks\n\n")
		b.WriteString("| Issue | Severity | Owner | Status | Mitigation Plan |\n")
		b.WriteString("|-------|----------|-------|--------|----------------|\n")
		for _, issue := range issues {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				issue.Description, orDefault(issue.Severity, "Medium"), issue.Owner,
				orDefault(issue.Status, "Open"), issue.Mitigation)
		}
		b.WriteString("\n")
	}

	if len(nextSteps) > 0 {
		b.WriteString("## Next Steps\n\n")
		for _, step := range nextSteps {
			fmt.Fprintf(&b, "- %s\n", step)
		}
	}

	return b.String()
}

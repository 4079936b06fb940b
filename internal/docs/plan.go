package docs

import (
	"fmt"
	"strings"
	"time"
)

// PlanRequirement is a scoped requirement with an effort estimate.
type PlanRequirement struct {
	ID           string
	Name         string
	Priority     string
	EstimateDays int
}

// TeamMember is one row of the team structure table.
type TeamMember struct {
	Name         string
	Role         string
	Availability string
}

// Milestone is a named delivery point with a target date.
type Milestone struct {
	Name         string
	Date         string
	Deliverables []string
}

// defaultPhases drive milestone generation when none are supplied.
// Fractions are of total project duration.
var defaultPhases = []struct {
	name         string
	fraction     float64
	deliverables []string
}{
	{"Business Analysis Complete", 0.15, []string{"Business Requirements Document", "Workflow Diagrams"}},
	{"Database Design Complete", 0.15, []string{"Database Design Document", "ERD Diagrams"}},
	{"Database Implementation Complete", 0.15, []string{"Database Scripts", "Test Data"}},
	{"APEX Development Complete", 0.25, []string{"APEX Application", "User Interface"}},
	{"Frontend Enhancement Complete", 0.10, []string{"Custom CSS/JS", "Responsive Design"}},
	{"QA Testing Complete", 0.10, []string{"Test Report", "Issue List"}},
	{"Project Complete", 0.10, []string{"Final Application", "Documentation"}},
}

var phaseTasks = []struct {
	name  string
	tasks []string
}{
	{"Business Analysis", []string{
		"Requirements gathering",
		"Stakeholder interviews",
		"Process mapping",
		"Business Requirements Document creation",
		"Workflow diagram creation",
	}},
	{"Database Design", []string{
		"Entity identification",
		"ERD creation",
		"Normalization",
		"Index planning",
		"Database Design Document creation",
	}},
	{"Database Implementation", []string{
		"Table creation scripts",
		"Index creation scripts",
		"View creation scripts",
		"Stored procedure/function development",
		"Test data generation",
	}},
	{"APEX Development", []string{
		"Application framework setup",
		"Page template design",
		"Form implementation",
		"Report implementation",
		"Dashboard creation",
		"Navigation implementation",
		"Security setup",
	}},
	{"Frontend Enhancement", []string{
		"CSS customization",
		"JavaScript enhancement",
		"Responsive design implementation",
		"Accessibility improvements",
		"UI/UX optimization",
	}},
	{"QA Testing", []string{
		"Test plan creation",
		"Functional testing",
		"Data validation testing",
		"Performance testing",
		"Security testing",
		"Usability testing",
		"Issue documentation",
	}},
	{"Deployment", []string{
		"Deployment plan creation",
		"Database script finalization",
		"APEX application export",
		"Installation testing",
		"User documentation",
		"Training materials",
	}},
}

// ProjectPlan renders a project plan. Duration is the sum of
// requirement estimates; milestones default to the standard APEX
// development phases when none are given. startDate is YYYY-MM-DD and
// falls back to today when unparseable.
func ProjectPlan(projectName, startDate string, reqs []PlanRequirement, team []TeamMember, milestones []Milestone) string {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		start = time.Now()
	}

	totalDays := 0
	for _, r := range reqs {
		days := r.EstimateDays
		if days <= 0 {
			days = 1
		}
		totalDays += days
	}
	end := start.AddDate(0, 0, totalDays)

	var b strings.Builder
	fmt.Fprintf(&b, "# Project Plan: %s\n\n", projectName)

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "This project plan outlines the approach, timeline, resources, and deliverables for the %s Oracle APEX application development project.\n\n", projectName)
	fmt.Fprintf(&b, "The project will begin on %s and is estimated to complete by %s, spanning a total of %d days.\n\n",
		start.Format("2006-01-02"), end.Format("2006-01-02"), totalDays)

	b.WriteString("## Team Structure\n\n")
	b.WriteString("| Role | Team Member | Availability |\n")
	b.WriteString("|------|-------------|-------------|\n")
	for _, m := range team {
		availability := orDefault(m.Availability, "100%")
		fmt.Fprintf(&b, "| %s | %s | %s |\n", m.Role, m.Name, availability)
	}
	b.WriteString("\n")

	b.WriteString("## Project Scope\n\n### Requirements\n\n")
	b.WriteString("| ID | Requirement | Priority | Estimate (Days) |\n")
	b.WriteString("|----|-----------|---------|-----------------|\n")
	for _, r := range reqs {
		fmt.Fprintf(&b, "| %s | %s | %s | %d |\n",
			orDefault(r.ID, "REQ-X"), r.Name, orDefault(r.Priority, "Medium"), max(r.EstimateDays, 1))
	}
	b.WriteString("\n")

	b.WriteString("## Project Timeline\n\n")
	fmt.Fprintf(&b, "- **Start Date:** %s\n", start.Format("2006-01-02"))
	fmt.Fprintf(&b, "- **End Date:** %s\n", end.Format("2006-01-02"))

	b.WriteString("\n### Milestones\n\n")
	b.WriteString("| Milestone | Target Date | Deliverables |\n")
	b.WriteString("|-----------|-------------|-------------|\n")
	if len(milestones) > 0 {
		for _, m := range milestones {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", m.Name, m.Date, strings.Join(m.Deliverables, ", "))
		}
	} else {
		current := start
		for _, phase := range defaultPhases {
			days := int(float64(totalDays) * phase.fraction)
			current = current.AddDate(0, 0, days)
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				phase.name, current.Format("2006-01-02"), strings.Join(phase.deliverables, ", "))
		}
	}
	b.WriteString("\n")

	b.WriteString("## Development Phases\n\n")
	for _, phase := range phaseTasks {
		fmt.Fprintf(&b, "### %s\n\n", phase.name)
		for _, task := range phase.tasks {
			fmt.Fprintf(&b, "- %s\n", task)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Risk Management\n\n")
	b.WriteString("| Risk | Impact | Probability | Mitigation Strategy |\n")
	b.WriteString("|------|--------|------------|---------------------|\n")
	b.WriteString("| Scope Creep | High | Medium | Regular scope review meetings, change management process |\n")
	b.WriteString("| Technical Challenges | Medium | Medium | Early prototyping, technical spikes, knowledge sharing |\n")
	b.WriteString("| Resource Availability | High | Low | Cross-training, backup resources identification |\n")
	b.WriteString("| Stakeholder Expectations | Medium | Medium | Regular demos, feedback sessions, expectation management |\n")
	b.WriteString("\n")

	b.WriteString("## Communication Plan\n\n")
	b.WriteString("| Communication | Frequency | Participants | Format |\n")
	b.WriteString("|--------------|-----------|--------------|--------|\n")
	b.WriteString("| Status Meeting | Weekly | Project Team, Stakeholders | Meeting + Report |\n")
	b.WriteString("| Daily Standup | Daily | Development Team | Quick Meeting |\n")
	b.WriteString("| Milestone Review | At each milestone | Project Team, Stakeholders | Demo + Discussion |\n")
	b.WriteString("| Issue Resolution | As needed | Relevant Team Members | Meeting |\n")

	return b.String()
}

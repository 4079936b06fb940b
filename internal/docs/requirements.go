// Package docs renders project documentation artifacts: requirements
// documents, project plans, status reports and QA documents. Everything
// here is a deterministic markdown template.
package docs

import (
	"fmt"
	"sort"
	"strings"
)

// Requirement classifies one requirement in a requirements document.
// Type selects the document section it lands in.
type Requirement struct {
	ID          string
	Name        string
	Type        string // objective, functional, non-functional, business rule, data, reporting
	Category    string
	Priority    string
	Description string
	Entities    []string // for data requirements
	Metrics     []string // for reporting requirements
}

// Stakeholder is one entry in the stakeholder section.
type Stakeholder struct {
	Name      string
	Role      string
	Interests string
}

// RequirementsDocument renders a business requirements document with
// sections grouped by requirement type and category.
func RequirementsDocument(projectName, summary string, reqs []Requirement, stakeholders []Stakeholder, constraints []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Business Requirements Document: %s\n\n", projectName)
	fmt.Fprintf(&b, "## Executive Summary\n\n%s\n\n", summary)

	b.WriteString("## Stakeholders\n\n")
	for _, s := range stakeholders {
		fmt.Fprintf(&b, "### %s\n**Role:** %s\n\n", s.Name, s.Role)
		if s.Interests != "" {
			fmt.Fprintf(&b, "%s\n\n", s.Interests)
		}
	}

	b.WriteString("## Business Context and Objectives\n\n")
	objectives := byType(reqs, "objective")
	if len(objectives) > 0 {
		for _, obj := range objectives {
			fmt.Fprintf(&b, "### %s: %s\n%s\n\n", orDefault(obj.ID, "OBJ-X"), obj.Name, obj.Description)
		}
	} else {
		b.WriteString("The project aims to deliver an Oracle APEX application that addresses the following business needs.\n\n")
	}

	writeCategorized(&b, "## Functional Requirements", byType(reqs, "functional"))
	writeCategorized(&b, "## Non-Functional Requirements", byType(reqs, "non-functional"))

	rules := byType(reqs, "business rule")
	if len(rules) > 0 {
		b.WriteString("## Business Rules and Constraints\n\n")
		for _, r := range rules {
			fmt.Fprintf(&b, "### %s: %s\n%s\n\n", orDefault(r.ID, "RULE-X"), r.Name, r.Description)
		}
	}

	if len(constraints) > 0 {
		if len(rules) == 0 {
			b.WriteString("## Project Constraints\n\n")
		}
		for _, c := range constraints {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		b.WriteString("\n")
	}

	dataReqs := byType(reqs, "data")
	if len(dataReqs) > 0 {
		b.WriteString("## Data Requirements\n\n")
		for _, r := range dataReqs {
			fmt.Fprintf(&b, "### %s: %s\n%s\n\n", orDefault(r.ID, "DATA-X"), r.Name, r.Description)
			if len(r.Entities) > 0 {
				b.WriteString("**Entities:**\n\n")
				for _, e := range r.Entities {
					fmt.Fprintf(&b, "- %s\n", e)
				}
				b.WriteString("\n")
			}
		}
	}

	reporting := byType(reqs, "reporting")
	if len(reporting) > 0 {
		b.WriteString("## Reporting and Analytics Requirements\n\n")
		for _, r := range reporting {
			fmt.Fprintf(&b, "### %s: %s\n%s\n\n", orDefault(r.ID, "REP-X"), r.Name, r.Description)
			if len(r.Metrics) > 0 {
				b.WriteString("**Key Metrics:**\n\n")
				for _, m := range r.Metrics {
					fmt.Fprintf(&b, "- %s\n", m)
				}
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func writeCategorized(b *strings.Builder, heading string, reqs []Requirement) {
	if len(reqs) == 0 {
		return
	}
	fmt.Fprintf(b, "%s\n\n", heading)

	byCategory := map[string][]Requirement{}
	for _, r := range reqs {
		cat := orDefault(r.Category, "General")
		byCategory[cat] = append(byCategory[cat], r)
	}
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		fmt.Fprintf(b, "### %s\n\n", cat)
		for _, r := range byCategory[cat] {
			fmt.Fprintf(b, "#### %s: %s\n", orDefault(r.ID, "REQ-X"), r.Name)
			fmt.Fprintf(b, "**Priority:** %s\n\n", orDefault(r.Priority, "Medium"))
			fmt.Fprintf(b, "%s\n\n", r.Description)
		}
	}
}

func byType(reqs []Requirement, typ string) []Requirement {
	var out []Requirement
	for _, r := range reqs {
		if strings.EqualFold(r.Type, typ) {
			out = append(out, r)
		}
	}
	return out
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

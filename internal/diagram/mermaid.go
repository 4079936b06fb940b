// Package diagram generates mermaid diagrams for pipeline artifacts.
//
// Output is fenced so it can be embedded directly in markdown documents
// or saved standalone as .mmd files.
package diagram

import (
	"fmt"
	"strings"
)

// Flowchart renders a business-process flowchart. Steps are connected
// in order; each step gets a dotted annotation to the role that
// performs it, assigned round-robin when no explicit mapping exists.
func Flowchart(processName string, steps []string, roles []string) string {
	var b strings.Builder
	b.WriteString("```mermaid\n")
	b.WriteString("flowchart TD\n")
	if processName != "" {
		fmt.Fprintf(&b, "    %%%% %s\n", processName)
	}

	for i, step := range steps {
		fmt.Fprintf(&b, "    step%d[%s]\n", i, step)
	}
	for i := 0; i < len(steps)-1; i++ {
		fmt.Fprintf(&b, "    step%d --> step%d\n", i, i+1)
	}
	if len(roles) > 0 {
		for i := range steps {
			roleIdx := i % len(roles)
			fmt.Fprintf(&b, "    step%d -.- role%d([%s])\n", i, roleIdx, roles[roleIdx])
		}
	}

	b.WriteString("```\n")
	return b.String()
}

// Attribute is one column of an entity in an ERD.
type Attribute struct {
	Name       string
	DataType   string
	PrimaryKey bool
	ForeignKey bool
}

// Entity is a named set of attributes.
type Entity struct {
	Name       string
	Attributes []Attribute
}

// Relationship connects two entities. Cardinality uses mermaid
// erDiagram notation, e.g. "||--o{" for one-to-many.
type Relationship struct {
	From        string
	To          string
	Cardinality string
	Label       string
}

// Common cardinalities in mermaid erDiagram notation.
const (
	OneToOne   = "||--||"
	OneToMany  = "||--o{"
	ManyToMany = "}o--o{"
)

// ERD renders an entity-relationship diagram.
func ERD(entities []Entity, relationships []Relationship) string {
	var b strings.Builder
	b.WriteString("```mermaid\n")
	b.WriteString("erDiagram\n")

	for _, e := range entities {
		fmt.Fprintf(&b, "    %s {\n", e.Name)
		for _, attr := range e.Attributes {
			dataType := attr.DataType
			if dataType == "" {
				dataType = "VARCHAR2"
			}
			prefix := ""
			switch {
			case attr.PrimaryKey && attr.ForeignKey:
				prefix = "PK,FK "
			case attr.PrimaryKey:
				prefix = "PK "
			case attr.ForeignKey:
				prefix = "FK "
			}
			fmt.Fprintf(&b, "        %s%s %s\n", prefix, attr.Name, dataType)
		}
		b.WriteString("    }\n")
	}

	for _, rel := range relationships {
		card := rel.Cardinality
		if card == "" {
			card = OneToMany
		}
		label := rel.Label
		if label == "" {
			label = "relates to"
		}
		fmt.Fprintf(&b, "    %s %s %s : %s\n", rel.From, card, rel.To, label)
	}

	b.WriteString("```\n")
	return b.String()
}

// ERDDescription renders a markdown companion to an ERD: entity tables
// and a relationship summary for non-technical readers.
func ERDDescription(title string, entities []Entity, relationships []Relationship) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n## Entities\n\n", title)

	for _, e := range entities {
		fmt.Fprintf(&b, "### %s\n\n", e.Name)
		b.WriteString("| Attribute | Type | Primary Key | Foreign Key |\n")
		b.WriteString("|-----------|------|-------------|-------------|\n")
		for _, attr := range e.Attributes {
			dataType := attr.DataType
			if dataType == "" {
				dataType = "VARCHAR2"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				attr.Name, dataType, yesNo(attr.PrimaryKey), yesNo(attr.ForeignKey))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Relationships\n\n")
	b.WriteString("| From Entity | To Entity | Cardinality | Description |\n")
	b.WriteString("|-------------|-----------|-------------|-------------|\n")
	for _, rel := range relationships {
		card := rel.Cardinality
		if card == "" {
			card = OneToMany
		}
		label := rel.Label
		if label == "" {
			label = "relates to"
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", rel.From, rel.To, card, label)
	}

	return b.String()
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

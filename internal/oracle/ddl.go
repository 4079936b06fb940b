// Package oracle generates Oracle database and APEX installation
// scripts. All generators are deterministic templates; the agents
// decide what to build, this package decides how it is spelled.
package oracle

import (
	"fmt"
	"strings"
)

// Column describes one column of a table, or one parameter of a
// PL/SQL object.
type Column struct {
	Name     string
	DataType string
	NotNull  bool
	Default  string
	Comment  string
	Mode     string // parameter mode for procedures/functions (IN, OUT, IN OUT)
}

// Constraint is a table-level constraint.
type Constraint struct {
	Name            string
	Type            string // PRIMARY KEY, UNIQUE, FOREIGN KEY, CHECK
	Columns         []string
	ReferencesTable string
	ReferencesCols  []string
	Condition       string // for CHECK
}

// TableDDL renders a CREATE TABLE statement with constraints and
// COMMENT statements for documented columns.
func TableDDL(name string, cols []Column, constraints []Constraint) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- SQL Script for TABLE: %s\n\n", name)
	fmt.Fprintf(&b, "CREATE TABLE %s (\n", name)

	defs := make([]string, 0, len(cols)+len(constraints))
	for _, c := range cols {
		dataType := c.DataType
		if dataType == "" {
			dataType = "VARCHAR2(255)"
		}
		def := fmt.Sprintf("    %s %s", c.Name, dataType)
		if c.NotNull {
			def += " NOT NULL"
		}
		if c.Default != "" {
			def += " DEFAULT " + c.Default
		}
		defs = append(defs, def)
	}
	for _, con := range constraints {
		switch strings.ToUpper(con.Type) {
		case "PRIMARY KEY":
			defs = append(defs, fmt.Sprintf("    CONSTRAINT %s PRIMARY KEY (%s)",
				con.Name, strings.Join(con.Columns, ", ")))
		case "UNIQUE":
			defs = append(defs, fmt.Sprintf("    CONSTRAINT %s UNIQUE (%s)",
				con.Name, strings.Join(con.Columns, ", ")))
		case "FOREIGN KEY":
			defs = append(defs, fmt.Sprintf("    CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s)",
				con.Name, strings.Join(con.Columns, ", "),
				con.ReferencesTable, strings.Join(con.ReferencesCols, ", ")))
		case "CHECK":
			condition := con.Condition
			if condition == "" {
				condition = "1=1"
			}
			defs = append(defs, fmt.Sprintf("    CONSTRAINT %s CHECK (%s)", con.Name, condition))
		}
	}

	b.WriteString(strings.Join(defs, ",\n"))
	b.WriteString("\n);\n")

	for _, c := range cols {
		if c.Comment != "" {
			fmt.Fprintf(&b, "\nCOMMENT ON COLUMN %s.%s IS '%s';\n", name, c.Name, c.Comment)
		}
	}
	fmt.Fprintf(&b, "\nCOMMENT ON TABLE %s IS 'Table for storing %s data';\n", name, name)

	return b.String()
}

// ViewDDL renders a CREATE OR REPLACE VIEW statement.
func ViewDDL(name, query string) string {
	if query == "" {
		query = "SELECT * FROM dual"
	}
	return fmt.Sprintf("-- SQL Script for VIEW: %s\n\nCREATE OR REPLACE VIEW %s AS\n%s;\n", name, name, query)
}

// SequenceOptions configures SequenceDDL.
type SequenceOptions struct {
	StartWith   int
	IncrementBy int
	MinValue    *int
	MaxValue    *int
	Cycle       bool
}

// SequenceDDL renders a CREATE SEQUENCE statement.
func SequenceDDL(name string, opts SequenceOptions) string {
	if opts.StartWith == 0 {
		opts.StartWith = 1
	}
	if opts.IncrementBy == 0 {
		opts.IncrementBy = 1
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- SQL Script for SEQUENCE: %s\n\n", name)
	fmt.Fprintf(&b, "CREATE SEQUENCE %s\n", name)
	fmt.Fprintf(&b, "    START WITH %d\n", opts.StartWith)
	fmt.Fprintf(&b, "    INCREMENT BY %d\n", opts.IncrementBy)
	if opts.MinValue != nil {
		fmt.Fprintf(&b, "    MINVALUE %d\n", *opts.MinValue)
	} else {
		b.WriteString("    NOMINVALUE\n")
	}
	if opts.MaxValue != nil {
		fmt.Fprintf(&b, "    MAXVALUE %d\n", *opts.MaxValue)
	} else {
		b.WriteString("    NOMAXVALUE\n")
	}
	if opts.Cycle {
		b.WriteString("    CYCLE\n")
	} else {
		b.WriteString("    NOCYCLE\n")
	}
	b.WriteString("    CACHE 20;\n")
	return b.String()
}

// TriggerDDL renders a row-level trigger.
func TriggerDDL(name, timing, event, table, body string) string {
	if timing == "" {
		timing = "BEFORE"
	}
	if event == "" {
		event = "INSERT"
	}
	if body == "" {
		body = "    -- Trigger implementation\n    NULL;"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- SQL Script for TRIGGER: %s\n\n", name)
	fmt.Fprintf(&b, "CREATE OR REPLACE TRIGGER %s\n", name)
	fmt.Fprintf(&b, "%s %s ON %s\n", timing, event, table)
	b.WriteString("FOR EACH ROW\nBEGIN\n")
	b.WriteString(body)
	b.WriteString("\nEND;\n/\n")
	return b.String()
}

// ProcedureDDL renders a stored procedure. params use Column.Mode for
// the parameter direction, defaulting to IN.
func ProcedureDDL(name string, params []Column, body string) string {
	if body == "" {
		body = "    -- Procedure implementation\n    NULL;"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- SQL Script for PROCEDURE: %s\n\n", name)
	fmt.Fprintf(&b, "CREATE OR REPLACE PROCEDURE %s (\n%s\n) AS\nBEGIN\n", name, paramList(params))
	b.WriteString(body)
	b.WriteString("\nEND;\n/\n")
	return b.String()
}

// FunctionDDL renders a stored function.
func FunctionDDL(name string, params []Column, returnType, body string) string {
	if returnType == "" {
		returnType = "VARCHAR2"
	}
	if body == "" {
		body = "    -- Function implementation\n    RETURN NULL;"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "-- SQL Script for FUNCTION: %s\n\n", name)
	fmt.Fprintf(&b, "CREATE OR REPLACE FUNCTION %s (\n%s\n) RETURN %s AS\nBEGIN\n", name, paramList(params), returnType)
	b.WriteString(body)
	b.WriteString("\nEND;\n/\n")
	return b.String()
}

// IndexDDL renders a CREATE INDEX statement.
func IndexDDL(name, table string, columns []string, unique bool) string {
	kind := "INDEX"
	if unique {
		kind = "UNIQUE INDEX"
	}
	return fmt.Sprintf("-- SQL Script for INDEX: %s\n\nCREATE %s %s ON %s (%s);\n",
		name, kind, name, table, strings.Join(columns, ", "))
}

func paramList(params []Column) string {
	defs := make([]string, 0, len(params))
	for _, p := range params {
		mode := p.Mode
		if mode == "" {
			mode = "IN"
		}
		dataType := p.DataType
		if dataType == "" {
			dataType = "VARCHAR2"
		}
		defs = append(defs, fmt.Sprintf("    %s %s %s", p.Name, mode, dataType))
	}
	return strings.Join(defs, ",\n")
}

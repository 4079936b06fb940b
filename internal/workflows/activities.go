package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/apexforge/apexforge/internal/agents"
	"github.com/apexforge/apexforge/internal/artifacts"
	"github.com/apexforge/apexforge/internal/diagram"
	"github.com/apexforge/apexforge/internal/docs"
	"github.com/apexforge/apexforge/internal/events"
	"github.com/apexforge/apexforge/internal/llm"
	"github.com/apexforge/apexforge/internal/logging"
	"github.com/apexforge/apexforge/internal/oracle"
)

// EventPublisher publishes pipeline progress. Satisfied by
// *events.Publisher; activity tests substitute a recorder.
type EventPublisher interface {
	PhaseStarted(projectID, phase, agent string) error
	Message(projectID, sender, content string) error
	ArtifactCreated(projectID string, artifact artifacts.Artifact) error
	Completed(projectID string) error
	Failed(projectID, errMsg string) error
}

var _ EventPublisher = (*events.Publisher)(nil)

// Activities holds the dependencies for pipeline phase activities.
type Activities struct {
	LLM    llm.Client
	Events EventPublisher
	Logger *logging.Logger
}

// NewActivities creates the activity set for worker registration.
func NewActivities(client llm.Client, publisher EventPublisher, logger *logging.Logger) *Activities {
	return &Activities{LLM: client, Events: publisher, Logger: logger}
}

// runAgent executes one agent turn for a phase: announces the phase,
// calls the model, and records phase metrics. Event publication is
// best effort; a dropped event never fails the phase.
func (a *Activities) runAgent(ctx context.Context, projectID, phase string, agent agents.Agent, prompt string) (string, error) {
	ctx = logging.WithProjectID(ctx, projectID)
	ctx = logging.WithPhase(ctx, phase)
	ctx = logging.WithAgent(ctx, agent.Role)

	if err := a.Events.PhaseStarted(projectID, phase, agent.Role); err != nil {
		a.Logger.Warn(ctx, "failed to publish phase event", zap.Error(err))
	}
	a.publishMessage(ctx, projectID, agent.Role, fmt.Sprintf("Starting %s", strings.ReplaceAll(phase, "_", " ")))

	start := time.Now()
	content, err := a.LLM.Complete(ctx, agent.SystemPrompt(), prompt, agent.Temperature)
	phaseDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("phase", phase)))
	if err != nil {
		phaseErrorCounter.Add(ctx, 1,
			metric.WithAttributes(attribute.String("phase", phase)))
		a.Logger.Error(ctx, "agent turn failed", zap.Error(err))
		return "", fmt.Errorf("running %s agent: %w", agent.Role, err)
	}

	a.Logger.Info(ctx, "agent turn completed", zap.Int("response_chars", len(content)))
	return content, nil
}

func (a *Activities) publishMessage(ctx context.Context, projectID, sender, content string) {
	if err := a.Events.Message(projectID, sender, content); err != nil {
		a.Logger.Warn(ctx, "failed to publish message event", zap.Error(err))
	}
}

func (a *Activities) publishArtifacts(ctx context.Context, projectID string, arts []artifacts.Artifact) {
	for _, art := range arts {
		if err := a.Events.ArtifactCreated(projectID, art); err != nil {
			a.Logger.Warn(ctx, "failed to publish artifact event",
				zap.String("artifact", art.Name), zap.Error(err))
		}
	}
}

// BusinessAnalysis produces the business requirements document and a
// workflow diagram of the development process.
func (a *Activities) BusinessAnalysis(ctx context.Context, input AnalysisInput) (*PhaseResult, error) {
	agent := agents.BusinessAnalyst()

	exampleDoc := docs.RequirementsDocument("<project>", "<one paragraph summary>",
		[]docs.Requirement{
			{ID: "REQ-1", Name: "<requirement name>", Type: "functional", Category: "<category>", Description: "<description>"},
		},
		[]docs.Stakeholder{{Name: "<stakeholder>", Role: "<role>"}}, nil)

	prompt := fmt.Sprintf(`Please analyze the following business requirements and create a comprehensive Business Requirements Document:

%s

Extract and document the following:
1. Key entities (nouns that represent data objects)
2. Business processes
3. User roles
4. Business rules
5. Reporting requirements

Use this document structure, filling in every section that applies:

%s`, input.Requirements, exampleDoc)

	content, err := a.runAgent(ctx, input.ProjectID, PhaseBusinessAnalysis, agent, prompt)
	if err != nil {
		return nil, err
	}

	flowchart := diagram.Flowchart(
		fmt.Sprintf("%s Development Process", input.ProjectName),
		[]string{
			"Business Analysis",
			"Database Design",
			"Database Implementation",
			"APEX Development",
			"Frontend Enhancement",
			"QA Testing",
			"Project Completion",
		},
		[]string{
			"Business Analyst",
			"Database Designer",
			"Database Developer",
			"Oracle APEX Developer",
			"UI/Frontend Developer",
			"QA Engineer",
			"Project Manager",
		},
	)

	result := &PhaseResult{
		Content: content,
		Artifacts: []artifacts.Artifact{
			{Name: "business_requirements_doc", Type: artifacts.TypeDocument, Content: content, CreatedBy: agent.Role},
			{Name: "workflow_diagram", Type: artifacts.TypeDiagram, Content: flowchart, CreatedBy: agent.Role},
		},
	}
	a.publishArtifacts(ctx, input.ProjectID, result.Artifacts)
	return result, nil
}

// DatabaseDesign produces the schema design document and an ERD.
func (a *Activities) DatabaseDesign(ctx context.Context, input DesignInput) (*PhaseResult, error) {
	agent := agents.DatabaseDesigner()

	exampleEntities := []diagram.Entity{
		{Name: "EXAMPLE_ITEMS", Attributes: []diagram.Attribute{
			{Name: "item_id", DataType: "NUMBER", PrimaryKey: true},
			{Name: "category_id", DataType: "NUMBER", ForeignKey: true},
			{Name: "name", DataType: "VARCHAR2"},
		}},
		{Name: "EXAMPLE_CATEGORIES", Attributes: []diagram.Attribute{
			{Name: "category_id", DataType: "NUMBER", PrimaryKey: true},
		}},
	}
	exampleRelationships := []diagram.Relationship{
		{From: "EXAMPLE_CATEGORIES", To: "EXAMPLE_ITEMS", Cardinality: diagram.OneToMany, Label: "contains"},
	}

	prompt := fmt.Sprintf(`Please design an Oracle database schema based on the following business requirements:

%s

Business analysis results:
%s

Identify the following:
1. Main entities with their attributes and data types
2. Primary keys for each entity
3. Foreign keys and relationships between entities
4. Any necessary indexes for performance
5. Any needed sequences, views, or materialized views

Document the entities and relationships using this table format:

%s

Follow Oracle database design best practices and aim for 3NF normalization unless there's a good reason not to.`,
		input.Requirements, input.AnalysisDoc,
		diagram.ERDDescription("<Project> Data Model", exampleEntities, exampleRelationships))

	content, err := a.runAgent(ctx, input.ProjectID, PhaseDatabaseDesign, agent, prompt)
	if err != nil {
		return nil, err
	}

	exampleERD := diagram.ERD(exampleEntities, exampleRelationships)

	erdPrompt := fmt.Sprintf(`Based on this database design, produce only a mermaid erDiagram describing the schema, in this format:

%s
Mark primary keys with a PK prefix and foreign keys with FK.
Respond with the fenced mermaid block and nothing else.

Database design:
%s`, exampleERD, content)

	erd, err := a.LLM.Complete(ctx, agent.SystemPrompt(), erdPrompt, agent.Temperature)
	if err != nil {
		// The design document stands on its own; a missing diagram is
		// not worth failing the phase for.
		a.Logger.Warn(logging.WithProjectID(ctx, input.ProjectID), "erd generation failed", zap.Error(err))
		erd = ""
	}

	result := &PhaseResult{
		Content: content,
		Artifacts: []artifacts.Artifact{
			{Name: "database_design", Type: artifacts.TypeDocument, Content: content, CreatedBy: agent.Role},
		},
	}
	if erd != "" {
		result.Artifacts = append(result.Artifacts,
			artifacts.Artifact{Name: "erd_diagram", Type: artifacts.TypeDiagram, Content: erd, CreatedBy: agent.Role})
	}
	a.publishArtifacts(ctx, input.ProjectID, result.Artifacts)
	return result, nil
}

// DatabaseImplementation produces the SQL scripts for all database
// objects.
func (a *Activities) DatabaseImplementation(ctx context.Context, input ImplementationInput) (*PhaseResult, error) {
	agent := agents.DatabaseDeveloper()

	// Ground the model on the exact script format the project uses.
	exampleTable := oracle.TableDDL("example_items", []oracle.Column{
		{Name: "item_id", DataType: "NUMBER", NotNull: true, Comment: "Surrogate key"},
		{Name: "name", DataType: "VARCHAR2(200)", NotNull: true},
	}, []oracle.Constraint{
		{Name: "example_items_pk", Type: "PRIMARY KEY", Columns: []string{"item_id"}},
	})
	exampleSequence := oracle.SequenceDDL("example_items_seq", oracle.SequenceOptions{})
	exampleTrigger := oracle.TriggerDDL("example_items_bi", "BEFORE", "INSERT", "example_items",
		"    :NEW.item_id := example_items_seq.NEXTVAL;")
	exampleIndex := oracle.IndexDDL("example_items_name_idx", "example_items", []string{"name"}, false)
	exampleView := oracle.ViewDDL("example_items_v",
		"SELECT i.item_id, i.name, c.category_id\nFROM example_items i\nJOIN example_categories c ON c.category_id = i.category_id")
	exampleProcedure := oracle.ProcedureDDL("example_items_rename",
		[]oracle.Column{
			{Name: "p_item_id", DataType: "NUMBER"},
			{Name: "p_name", DataType: "VARCHAR2"},
		},
		"    UPDATE example_items SET name = p_name WHERE item_id = p_item_id;")
	exampleFunction := oracle.FunctionDDL("example_items_count",
		[]oracle.Column{{Name: "p_category_id", DataType: "NUMBER"}}, "NUMBER",
		"    RETURN 0;")

	prompt := fmt.Sprintf(`Based on the following database design, create SQL scripts to implement all necessary database objects.
Include tables, constraints, indexes, sequences, views, triggers, functions, procedures, and packages.
Follow Oracle best practices for naming, performance, security, and maintainability.

Database design:
%s

Follow this script format exactly:

%s
%s
%s
%s
%s
%s
%s

For each table:
1. Create table with appropriate columns and data types
2. Add primary and foreign key constraints
3. Create indexes for frequently queried columns
4. Add sequences for auto-incrementing primary keys
5. Add comments to document the table and columns

For business logic:
1. Create triggers for auditing and enforcing complex business rules
2. Create functions and procedures for complex operations
3. Create packages to organize related functionality`,
		input.DesignDoc, exampleTable, exampleSequence, exampleTrigger,
		exampleIndex, exampleView, exampleProcedure, exampleFunction)

	content, err := a.runAgent(ctx, input.ProjectID, PhaseDatabaseImplementation, agent, prompt)
	if err != nil {
		return nil, err
	}

	result := &PhaseResult{
		Content: content,
		Artifacts: []artifacts.Artifact{
			{Name: "database_scripts", Type: artifacts.TypeCode, Content: content, CreatedBy: agent.Role},
		},
	}
	a.publishArtifacts(ctx, input.ProjectID, result.Artifacts)
	return result, nil
}

// APEXDevelopment produces the APEX application install script and
// development document.
func (a *Activities) APEXDevelopment(ctx context.Context, input APEXInput) (*PhaseResult, error) {
	agent := agents.APEXDeveloper()

	exampleApp := oracle.ApplicationScript(oracle.AppOptions{
		Name:   input.ProjectName,
		Alias:  "EXAMPLE",
		Schema: "APP_SCHEMA",
		Pages: []oracle.Page{
			{Name: "Items", Type: "Report", SourceTable: "example_items"},
			{Name: "Item Detail", Type: "Form", SourceTable: "example_items"},
		},
	})
	examplePage := oracle.PageScript(oracle.PageOptions{
		Name:        "Item Detail",
		Title:       "Item Detail",
		Type:        "Form",
		SourceTable: "example_items",
	})

	prompt := fmt.Sprintf(`Develop an Oracle APEX application based on the following business requirements and database design.
Create a comprehensive application structure with appropriate pages, components, and functionality.

Business requirements:
%s

Database design:
%s

Database scripts:
%s

Include the following in your response:
1. Application structure with all pages
2. Navigation design
3. List, form, and report pages for each main entity
4. Dashboard/home page design
5. Security implementation (authentication and authorization)
6. An application installation script in the following wwv_flow_api format:

%s

7. One installation script per additional page, in this format:

%s`,
		input.Requirements, input.DesignDoc, input.DatabaseScripts, exampleApp, examplePage)

	content, err := a.runAgent(ctx, input.ProjectID, PhaseAPEXDevelopment, agent, prompt)
	if err != nil {
		return nil, err
	}

	result := &PhaseResult{
		Content: content,
		Artifacts: []artifacts.Artifact{
			{Name: "apex_application", Type: artifacts.TypeCode, Content: content, CreatedBy: agent.Role},
		},
	}
	a.publishArtifacts(ctx, input.ProjectID, result.Artifacts)
	return result, nil
}

// FrontendEnhancement produces custom CSS/JS assets for the generated
// application.
func (a *Activities) FrontendEnhancement(ctx context.Context, input FrontendInput) (*PhaseResult, error) {
	agent := agents.FrontendDeveloper()
	prompt := fmt.Sprintf(`Enhance the following Oracle APEX application with custom frontend assets.

APEX application:
%s

Provide:
1. A custom CSS stylesheet improving layout, typography and responsive behavior
2. JavaScript enhancements for interactivity and validation
3. Notes on where each asset is attached in the APEX application

Keep the assets compatible with the APEX 24.2 Universal Theme.`, input.APEXApplication)

	content, err := a.runAgent(ctx, input.ProjectID, PhaseFrontendEnhancement, agent, prompt)
	if err != nil {
		return nil, err
	}

	result := &PhaseResult{
		Content: content,
		Artifacts: []artifacts.Artifact{
			{Name: "frontend_assets", Type: artifacts.TypeCode, Content: content, CreatedBy: agent.Role},
		},
	}
	a.publishArtifacts(ctx, input.ProjectID, result.Artifacts)
	return result, nil
}

// QATesting produces the test report.
func (a *Activities) QATesting(ctx context.Context, input QAInput) (*PhaseResult, error) {
	agent := agents.QAEngineer()

	caseTemplate := docs.TestCase("<feature>", "functional", []string{"<requirement>"})

	prompt := fmt.Sprintf(`Test the following Oracle APEX application thoroughly to identify issues, bugs, and areas for improvement.
Verify that all functional requirements are met and the application works as expected.

Business requirements:
%s

APEX application:
%s
`, input.Requirements, input.APEXApplication)

	if input.FrontendAssets != "" {
		prompt += fmt.Sprintf("\nFrontend assets:\n%s\n", input.FrontendAssets)
	}

	prompt += fmt.Sprintf(`
Please provide a comprehensive test report including:

1. Testing approach and methodology
2. Test cases for major functionality, using this template:

%s

3. Test results with pass/fail status
4. Detailed list of issues found with severity (Critical, High, Medium, Low)
5. Performance, security, and usability findings
6. Recommendations for improvement

Format your response as a professional test report document.`, caseTemplate)

	content, err := a.runAgent(ctx, input.ProjectID, PhaseQATesting, agent, prompt)
	if err != nil {
		return nil, err
	}

	result := &PhaseResult{
		Content: content,
		Artifacts: []artifacts.Artifact{
			{Name: "test_report", Type: artifacts.TypeDocument, Content: content, CreatedBy: agent.Role},
		},
	}
	a.publishArtifacts(ctx, input.ProjectID, result.Artifacts)
	return result, nil
}

// ProjectCompletion produces the final report and the project plan,
// then announces completion.
func (a *Activities) ProjectCompletion(ctx context.Context, input CompletionInput) (*PhaseResult, error) {
	agent := agents.ProjectManager()

	summary := input.Requirements
	if len(summary) > 500 {
		summary = summary[:500] + "..."
	}

	var artifactList strings.Builder
	for _, name := range input.ArtifactNames {
		fmt.Fprintf(&artifactList, "- %s\n", name)
	}

	prompt := fmt.Sprintf(`Create a final project report for Oracle APEX development project %s.

Business requirements:
%s

Project artifacts include:
%s
Include the following sections in your report:

1. Executive Summary
2. Project Overview (objectives, scope, team structure)
3. Development Process (business analysis through QA testing)
4. Deliverables (database objects, APEX application, frontend assets, documentation)
5. Implementation Guide (deployment, configuration, user setup)
6. Recommendations (future enhancements, maintenance plan, knowledge transfer)
7. Conclusion

Format your response as a comprehensive project report document.`,
		input.ProjectID, summary, artifactList.String())

	content, err := a.runAgent(ctx, input.ProjectID, PhaseProjectCompletion, agent, prompt)
	if err != nil {
		return nil, err
	}

	plan := docs.ProjectPlan(input.ProjectName, time.Now().Format("2006-01-02"),
		planRequirements(), []docs.TeamMember{
			{Name: "Business Analyst Agent", Role: "Business Analyst"},
			{Name: "Database Designer Agent", Role: "Database Designer"},
			{Name: "Database Developer Agent", Role: "Database Developer"},
			{Name: "APEX Developer Agent", Role: "Oracle APEX Developer"},
			{Name: "Frontend Developer Agent", Role: "UI/Frontend Developer"},
			{Name: "QA Engineer Agent", Role: "QA Engineer"},
			{Name: "Project Manager Agent", Role: "Project Manager"},
		}, nil)

	status := docs.StatusReport(input.ProjectName, time.Now().Format("2006-01-02"),
		phaseProgress(input.CompletedPhases), nil, completionIssues(input.Errors), nil)

	result := &PhaseResult{
		Content: content,
		Artifacts: []artifacts.Artifact{
			{Name: artifacts.FinalReportName, Type: artifacts.TypeDocument, Content: content, CreatedBy: agent.Role},
			{Name: "project_plan", Type: artifacts.TypeDocument, Content: plan, CreatedBy: agent.Role},
			{Name: "status_report", Type: artifacts.TypeDocument, Content: status, CreatedBy: agent.Role},
		},
	}
	a.publishArtifacts(ctx, input.ProjectID, result.Artifacts)

	if err := a.Events.Completed(input.ProjectID); err != nil {
		a.Logger.Warn(ctx, "failed to publish completion event", zap.Error(err))
	}
	pipelineCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", "completed")))
	return result, nil
}

// NotifyFailure announces pipeline failure to the event bus.
func (a *Activities) NotifyFailure(ctx context.Context, input FailureInput) error {
	pipelineCounter.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", "failed")))
	return a.Events.Failed(input.ProjectID, input.Error)
}

func planRequirements() []docs.PlanRequirement {
	reqs := make([]docs.PlanRequirement, 0, len(Phases))
	for i, phase := range Phases {
		reqs = append(reqs, docs.PlanRequirement{
			ID:           fmt.Sprintf("REQ-%d", i+1),
			Name:         strings.ReplaceAll(phase, "_", " "),
			Priority:     "High",
			EstimateDays: 3,
		})
	}
	return reqs
}

func phaseProgress(completed []string) []docs.PhaseProgress {
	done := make(map[string]bool, len(completed))
	for _, phase := range completed {
		done[phase] = true
	}
	progress := make([]docs.PhaseProgress, 0, len(Phases))
	for _, phase := range Phases {
		p := docs.PhaseProgress{Name: strings.ReplaceAll(phase, "_", " "), Status: "Not Started"}
		if done[phase] || phase == PhaseProjectCompletion {
			p.Status = "Completed"
			p.PercentComplete = 100
		}
		progress = append(progress, p)
	}
	return progress
}

func completionIssues(errs []string) []docs.Issue {
	issues := make([]docs.Issue, 0, len(errs))
	for _, e := range errs {
		issues = append(issues, docs.Issue{Description: e, Severity: "Medium", Status: "Open"})
	}
	return issues
}

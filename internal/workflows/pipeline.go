package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

// PipelineWorkflow runs the full APEX development pipeline.
//
// Phases execute in order, each consuming the output of the previous
// one. Every phase except frontend_enhancement is required: a required
// phase failing after retries fails the workflow (and notifies the
// event bus), while a frontend failure is recorded and the pipeline
// continues without custom assets.
func PipelineWorkflow(ctx workflow.Context, input PipelineInput) (*PipelineResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting APEX pipeline",
		"project_id", input.ProjectID,
		"project", input.ProjectName)

	// LLM-backed activities get a long timeout and few retries; a
	// failing model call rarely recovers on immediate retry.
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 5 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: 5 * time.Second,
			MaximumAttempts: 2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	result := &PipelineResult{ProjectID: input.ProjectID}
	var a *Activities

	fail := func(phase string, err error) (*PipelineResult, error) {
		result.Errors = append(result.Errors, FormatErrorForResult(phase, err))
		notifyFailure(ctx, input.ProjectID, WrapActivityError(phase, err).Error())
		return result, NewPipelineError(phase, ErrorSeverityCritical, err, "")
	}

	record := func(phase string, res *PhaseResult) {
		result.CompletedPhases = append(result.CompletedPhases, phase)
		for _, art := range res.Artifacts {
			result.ArtifactNames = append(result.ArtifactNames, art.Name)
		}
	}

	// Phase 1: business analysis
	var analysis PhaseResult
	err := workflow.ExecuteActivity(ctx, a.BusinessAnalysis, AnalysisInput{
		ProjectID:    input.ProjectID,
		ProjectName:  input.ProjectName,
		Requirements: input.Requirements,
	}).Get(ctx, &analysis)
	if err != nil {
		return fail(PhaseBusinessAnalysis, err)
	}
	record(PhaseBusinessAnalysis, &analysis)

	// Phase 2: database design
	var design PhaseResult
	err = workflow.ExecuteActivity(ctx, a.DatabaseDesign, DesignInput{
		ProjectID:    input.ProjectID,
		ProjectName:  input.ProjectName,
		Requirements: input.Requirements,
		AnalysisDoc:  analysis.Content,
	}).Get(ctx, &design)
	if err != nil {
		return fail(PhaseDatabaseDesign, err)
	}
	record(PhaseDatabaseDesign, &design)

	// Phase 3: database implementation
	var scripts PhaseResult
	err = workflow.ExecuteActivity(ctx, a.DatabaseImplementation, ImplementationInput{
		ProjectID: input.ProjectID,
		DesignDoc: design.Content,
	}).Get(ctx, &scripts)
	if err != nil {
		return fail(PhaseDatabaseImplementation, err)
	}
	record(PhaseDatabaseImplementation, &scripts)

	// Phase 4: APEX development
	var apexApp PhaseResult
	err = workflow.ExecuteActivity(ctx, a.APEXDevelopment, APEXInput{
		ProjectID:       input.ProjectID,
		ProjectName:     input.ProjectName,
		Requirements:    input.Requirements,
		DesignDoc:       design.Content,
		DatabaseScripts: scripts.Content,
	}).Get(ctx, &apexApp)
	if err != nil {
		return fail(PhaseAPEXDevelopment, err)
	}
	record(PhaseAPEXDevelopment, &apexApp)

	// Phase 5: frontend enhancement (optional, record but continue)
	var frontend PhaseResult
	err = workflow.ExecuteActivity(ctx, a.FrontendEnhancement, FrontendInput{
		ProjectID:       input.ProjectID,
		ProjectName:     input.ProjectName,
		APEXApplication: apexApp.Content,
	}).Get(ctx, &frontend)
	if err != nil {
		logger.Error("Frontend enhancement failed, continuing without custom assets", "error", err)
		result.Errors = append(result.Errors, FormatErrorForResult(PhaseFrontendEnhancement, err))
	} else {
		record(PhaseFrontendEnhancement, &frontend)
	}

	// Phase 6: QA testing
	var qa PhaseResult
	err = workflow.ExecuteActivity(ctx, a.QATesting, QAInput{
		ProjectID:       input.ProjectID,
		ProjectName:     input.ProjectName,
		Requirements:    input.Requirements,
		APEXApplication: apexApp.Content,
		FrontendAssets:  frontend.Content,
	}).Get(ctx, &qa)
	if err != nil {
		return fail(PhaseQATesting, err)
	}
	record(PhaseQATesting, &qa)

	// Phase 7: project completion
	var completion PhaseResult
	err = workflow.ExecuteActivity(ctx, a.ProjectCompletion, CompletionInput{
		ProjectID:       input.ProjectID,
		ProjectName:     input.ProjectName,
		Requirements:    input.Requirements,
		CompletedPhases: result.CompletedPhases,
		ArtifactNames:   result.ArtifactNames,
		Errors:          result.Errors,
	}).Get(ctx, &completion)
	if err != nil {
		return fail(PhaseProjectCompletion, err)
	}
	record(PhaseProjectCompletion, &completion)

	logger.Info("APEX pipeline completed",
		"project_id", input.ProjectID,
		"phases", len(result.CompletedPhases),
		"artifacts", len(result.ArtifactNames))
	return result, nil
}

// notifyFailure tells the event bus the pipeline failed. Best effort:
// a short timeout and one retry, and the error is only logged.
func notifyFailure(ctx workflow.Context, projectID, errMsg string) {
	var a *Activities
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	err := workflow.ExecuteActivity(ctx, a.NotifyFailure, FailureInput{
		ProjectID: projectID,
		Error:     errMsg,
	}).Get(ctx, nil)
	if err != nil {
		workflow.GetLogger(ctx).Error("Failed to publish failure notification", "error", err)
	}
}

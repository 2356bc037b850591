package workflows

import (
	"strings"
	"time"

	"markrecon/internal/activities"
	"markrecon/internal/models"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	QueryGetRunStatus     = "GetRunStatus"
	QueryGetBatchProgress = "GetBatchProgress"
	StatusCompleted       = "completed"
	StatusCompletedClean  = "completed_clean"
	StatusFailed          = "failed"
)

// ReconcileWorkflow runs one master/document pair end to end: fingerprint
// the document, load master rows, extract document records, compare, write
// report artifacts, and record the run. The fatal input conditions (missing
// master columns, an empty-text document, zero extractable records) end the
// run as status "failed" with a reason instead of erroring the workflow.
func ReconcileWorkflow(ctx workflow.Context, input ReconcileInput) (string, error) {
	status := RunStatus{
		RunID:        input.RunID,
		Phase:        input.Phase,
		DocumentPath: input.DocumentPath,
		CurrentStep:  "init",
		Status:       "processing",
		Steps:        map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetRunStatus, func() (RunStatus, error) {
		return status, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	run := models.Run{
		RunID:        input.RunID,
		Phase:        string(input.Phase),
		MasterFile:   filepathBase(input.MasterPath),
		DocumentFile: filepathBase(input.DocumentPath),
		Status:       "processing",
	}
	_ = workflow.ExecuteActivity(ctx, "UpsertRunActivity", activities.UpsertRunInput{Run: run}).Get(ctx, nil)

	status.CurrentStep = "fingerprint_document"
	status.Steps[status.CurrentStep] = "processing"
	var fpOut activities.FingerprintDocumentOutput
	if err := workflow.ExecuteActivity(ctx, "FingerprintDocumentActivity", activities.FingerprintDocumentInput{DocumentPath: input.DocumentPath}).Get(ctx, &fpOut); err != nil {
		return "", err
	}
	status.DocumentSHA256 = fpOut.SHA256
	run.DocumentSHA256 = fpOut.SHA256
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "load_master"
	status.Steps[status.CurrentStep] = "processing"
	var masterOut activities.LoadMasterOutput
	if err := workflow.ExecuteActivity(ctx, "LoadMasterActivity", activities.LoadMasterInput{MasterPath: input.MasterPath, Phase: input.Phase}).Get(ctx, &masterOut); err != nil {
		if isMissingColumnsError(err) {
			return failRun(ctx, &status, run, "master data missing required columns")
		}
		return "", err
	}
	run.SourceRecords = len(masterOut.Records)
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "extract_document"
	status.Steps[status.CurrentStep] = "processing"
	var docOut activities.ExtractDocumentOutput
	if err := workflow.ExecuteActivity(ctx, "ExtractDocumentActivity", activities.ExtractDocumentInput{DocumentPath: input.DocumentPath, Phase: input.Phase}).Get(ctx, &docOut); err != nil {
		if isNoTextError(err) {
			return failRun(ctx, &status, run, "no extractable text found in document")
		}
		if isNoRecordsError(err) {
			return failRun(ctx, &status, run, "no extractable records found in document")
		}
		return "", err
	}
	run.TargetRecords = len(docOut.Records)
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "compare"
	status.Steps[status.CurrentStep] = "processing"
	var cmpOut activities.CompareOutput
	if err := workflow.ExecuteActivity(ctx, "CompareActivity", activities.CompareInput{Phase: input.Phase, Source: masterOut.Records, Target: docOut.Records}).Get(ctx, &cmpOut); err != nil {
		return "", err
	}
	status.Mismatched = len(cmpOut.Result.Mismatches)
	status.MissingTarget = len(cmpOut.Result.MissingInTarget)
	status.MissingSource = len(cmpOut.Result.MissingInSource)
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "write_reports"
	status.Steps[status.CurrentStep] = "processing"
	if err := workflow.ExecuteActivity(ctx, "WriteReportsActivity", activities.WriteReportsInput{RunID: input.RunID, Result: cmpOut.Result}).Get(ctx, nil); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"

	status.CurrentStep = "record_run"
	status.Steps[status.CurrentStep] = "processing"
	run.Status = StatusCompleted
	if cmpOut.Result.Clean() {
		run.Status = StatusCompletedClean
	}
	run.Mismatched = status.Mismatched
	run.MissingTarget = status.MissingTarget
	run.MissingSource = status.MissingSource
	if err := workflow.ExecuteActivity(ctx, "UpsertRunActivity", activities.UpsertRunInput{Run: run}).Get(ctx, nil); err != nil {
		return "", err
	}
	status.Steps[status.CurrentStep] = "done"
	status.CurrentStep = "done"
	status.Status = run.Status
	return status.Status, nil
}

// BatchReconcileWorkflow fans one master file out over every document in a
// directory, one child run per document, with bounded concurrency.
func BatchReconcileWorkflow(ctx workflow.Context, input BatchReconcileInput) (string, error) {
	progress := BatchProgress{
		BatchID:       input.BatchID,
		PerDocument:   map[string]string{},
		ChildWorkflow: map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetBatchProgress, func() (BatchProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var listOut activities.ListDocumentsOutput
	if err := workflow.ExecuteActivity(ctx, "ListDocumentsActivity", activities.ListDocumentsInput{InputDir: input.InputDir}).Get(ctx, &listOut); err != nil {
		return "", err
	}
	paths := listOut.Paths
	progress.Total = len(paths)

	maxChildren := input.MaxConcurrentChildren
	if maxChildren <= 0 {
		maxChildren = 3
	}

	for i := 0; i < len(paths); i += maxChildren {
		end := i + maxChildren
		if end > len(paths) {
			end = len(paths)
		}
		futures := make([]workflow.ChildWorkflowFuture, 0, end-i)
		childPaths := make([]string, 0, end-i)
		for _, path := range paths[i:end] {
			progress.PerDocument[path] = "processing"
			runID := "run-" + sanitizeID(input.BatchID) + "-" + sanitizeID(filepathBase(path))
			cwo := workflow.ChildWorkflowOptions{WorkflowID: runID}
			childCtx := workflow.WithChildOptions(ctx, cwo)
			f := workflow.ExecuteChildWorkflow(childCtx, ReconcileWorkflow, ReconcileInput{
				RunID:        runID,
				Phase:        input.Phase,
				MasterPath:   input.MasterPath,
				DocumentPath: path,
			})
			futures = append(futures, f)
			childPaths = append(childPaths, path)
			progress.ChildWorkflow[path] = runID
		}

		for idx, f := range futures {
			var childStatus string
			err := f.Get(ctx, &childStatus)
			path := childPaths[idx]
			if err != nil {
				progress.Failed++
				progress.PerDocument[path] = StatusFailed
				continue
			}
			if childStatus == StatusFailed {
				progress.Failed++
			}
			progress.Done++
			progress.PerDocument[path] = childStatus
		}
	}
	return StatusCompleted, nil
}

func failRun(ctx workflow.Context, status *RunStatus, run models.Run, reason string) (string, error) {
	status.Status = StatusFailed
	status.FailReason = reason
	status.Steps[status.CurrentStep] = StatusFailed
	_ = workflow.ExecuteActivity(ctx, "UpdateRunStatusActivity", activities.UpdateRunStatusInput{
		RunID:      run.RunID,
		Status:     StatusFailed,
		FailReason: reason,
	}).Get(ctx, nil)
	return status.Status, nil
}

func isNoTextError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "no extractable text")
}

func isNoRecordsError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "no extractable records")
}

func isMissingColumnsError(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "missing required columns")
}

func filepathBase(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) == 0 {
		return path
	}
	return parts[len(parts)-1]
}

func sanitizeID(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, ".", "-")
	s = strings.ReplaceAll(s, "/", "-")
	return s
}

package workflows

import "markrecon/internal/models"

type ReconcileInput struct {
	RunID        string       `json:"run_id"`
	Phase        models.Phase `json:"phase"`
	MasterPath   string       `json:"master_path"`
	DocumentPath string       `json:"document_path"`
}

type BatchReconcileInput struct {
	BatchID               string       `json:"batch_id"`
	Phase                 models.Phase `json:"phase"`
	MasterPath            string       `json:"master_path"`
	InputDir              string       `json:"input_dir"`
	MaxConcurrentChildren int          `json:"max_concurrent_children"`
}

// RunStatus is exposed through the status query handler while a
// reconciliation run is in flight.
type RunStatus struct {
	RunID          string            `json:"run_id"`
	Phase          models.Phase      `json:"phase"`
	DocumentPath   string            `json:"document_path"`
	DocumentSHA256 string            `json:"document_sha256,omitempty"`
	CurrentStep    string            `json:"current_step"`
	Steps          map[string]string `json:"steps"`
	Status         string            `json:"status"`
	FailReason     string            `json:"fail_reason,omitempty"`
	Mismatched     int               `json:"mismatched"`
	MissingTarget  int               `json:"missing_in_target"`
	MissingSource  int               `json:"missing_in_source"`
}

type BatchProgress struct {
	BatchID       string            `json:"batch_id"`
	Total         int               `json:"total"`
	Done          int               `json:"done"`
	Failed        int               `json:"failed"`
	PerDocument   map[string]string `json:"per_document"`
	ChildWorkflow map[string]string `json:"child_workflow"`
}

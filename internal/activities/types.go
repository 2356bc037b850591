package activities

import "markrecon/internal/models"

type ListDocumentsInput struct {
	InputDir string `json:"input_dir"`
}

type ListDocumentsOutput struct {
	Paths []string `json:"paths"`
}

type FingerprintDocumentInput struct {
	DocumentPath string `json:"document_path"`
}

type FingerprintDocumentOutput struct {
	SHA256 string `json:"sha256"`
}

type LoadMasterInput struct {
	MasterPath string       `json:"master_path"`
	Phase      models.Phase `json:"phase"`
}

type LoadMasterOutput struct {
	Records []models.Record `json:"records"`
}

type ExtractDocumentInput struct {
	DocumentPath string       `json:"document_path"`
	Phase        models.Phase `json:"phase"`
}

type ExtractDocumentOutput struct {
	Records []models.Record `json:"records"`
}

type CompareInput struct {
	Phase  models.Phase    `json:"phase"`
	Source []models.Record `json:"source"`
	Target []models.Record `json:"target"`
}

type CompareOutput struct {
	Result models.ComparisonResult `json:"result"`
}

type WriteReportsInput struct {
	RunID  string                  `json:"run_id"`
	Result models.ComparisonResult `json:"result"`
}

type WriteReportsOutput struct {
	Paths []string `json:"paths"`
}

type UpsertRunInput struct {
	Run models.Run `json:"run"`
}

type UpdateRunStatusInput struct {
	RunID      string `json:"run_id"`
	Status     string `json:"status"`
	FailReason string `json:"fail_reason,omitempty"`
}

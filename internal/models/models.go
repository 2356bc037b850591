package models

import "time"

// Phase selects which record layout and composite key a run operates on.
type Phase string

const (
	PhaseMarks Phase = "marks"
	PhaseInfo  Phase = "info"
)

func (p Phase) Valid() bool {
	return p == PhaseMarks || p == PhaseInfo
}

// CourseRecord is one student-subject outcome in canonical form.
// Keyed by (RegisterNo, SubCode); not unique per source, since a subject
// may legitimately repeat across exam attempts.
type CourseRecord struct {
	RegisterNo   string `json:"register_no"`
	SubCode      string `json:"sub_code"`
	SubjectName  string `json:"subject_name"`
	CourseCredit string `json:"course_credit"`
	Grade        string `json:"grade"`
	GradePoint   string `json:"grade_point"`
	Result       string `json:"result"`
}

// StudentInfoRecord is one student's demographic/enrolment facts in
// canonical form, keyed by (RegisterNo, UmisNo). Fields that could not be
// extracted stay empty; the record itself is retained.
type StudentInfoRecord struct {
	UmisNo     string `json:"umis_no"`
	RegisterNo string `json:"register_no"`
	Name       string `json:"name"`
	DOB        string `json:"dob"`
	Gender     string `json:"gender"`
	Programme  string `json:"programme"`
}

// Record is the phase-independent row shape the comparator operates on:
// a composite key plus named canonical field values.
type Record struct {
	Key    RecordKey         `json:"key"`
	Fields map[string]string `json:"fields"`
}

type RecordKey struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

func (k RecordKey) String() string {
	return k.Primary + "|" + k.Secondary
}

// FieldDiff is one differing field within a mismatched record pair.
type FieldDiff struct {
	Field       string `json:"field"`
	SourceValue string `json:"source_value"`
	TargetValue string `json:"target_value"`
}

// Mismatch is a record present in both sources whose compared fields differ.
type Mismatch struct {
	Key    RecordKey   `json:"key"`
	Source Record      `json:"source"`
	Target Record      `json:"target"`
	Diffs  []FieldDiff `json:"diffs"`
}

func (m Mismatch) DiffFields() []string {
	out := make([]string, 0, len(m.Diffs))
	for _, d := range m.Diffs {
		out = append(out, d.Field)
	}
	return out
}

// ComparisonResult holds the three disjoint classified sets produced by one
// reconciliation.
type ComparisonResult struct {
	Phase           Phase      `json:"phase"`
	Mismatches      []Mismatch `json:"mismatches"`
	MissingInTarget []Record   `json:"missing_in_target"`
	MissingInSource []Record   `json:"missing_in_source"`
}

func (r ComparisonResult) Clean() bool {
	return len(r.Mismatches) == 0 && len(r.MissingInTarget) == 0 && len(r.MissingInSource) == 0
}

// Run is one reconciliation invocation as recorded in run history.
type Run struct {
	RunID          string    `json:"run_id"`
	Phase          string    `json:"phase"`
	MasterFile     string    `json:"master_file"`
	DocumentFile   string    `json:"document_file"`
	DocumentSHA256 string    `json:"document_sha256"`
	Status         string    `json:"status"`
	FailReason     string    `json:"fail_reason,omitempty"`
	SourceRecords  int       `json:"source_records"`
	TargetRecords  int       `json:"target_records"`
	Mismatched     int       `json:"mismatched"`
	MissingTarget  int       `json:"missing_in_target"`
	MissingSource  int       `json:"missing_in_source"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

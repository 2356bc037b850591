// Package master ingests the spreadsheet side of a reconciliation as
// delimited rows: a header row matched case-insensitively against a fixed
// vocabulary, then one record per data row, normalized on load.
package master

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"markrecon/internal/compare"
	"markrecon/internal/models"
	"markrecon/internal/normalize"
	"markrecon/internal/util"
)

// headerMap translates recognized spreadsheet headers to canonical field
// names. Unrecognized headers are ignored, never errored.
var headerMap = map[string]string{
	"EXAM":          "EXAM",
	"PROGRAMME":     compare.FieldProgramme,
	"REGISTER NO":   compare.FieldRegisterNo,
	"STUDENT NAME":  compare.FieldName,
	"SEM":           "SEM_NO",
	"SUBJECT ORDER": "SUB_ORDER",
	"SUB CODE":      compare.FieldSubCode,
	"SUBJECT NAME":  compare.FieldSubjectName,
	"INT":           "INT",
	"EXT":           "EXT",
	"TOT":           "TOTAL",
	"RESULT":        compare.FieldResult,
	"GRADE":         compare.FieldGrade,
	"GRADE POINT":   compare.FieldGradePoint,
	"DATE OF BIRTH": compare.FieldDOB,
	"GENDER":        compare.FieldGender,
	"UMIS NO":       compare.FieldUmisNo,
}

var requiredColumns = map[models.Phase][]string{
	models.PhaseMarks: {compare.FieldRegisterNo, compare.FieldSubCode},
	models.PhaseInfo:  {compare.FieldRegisterNo, compare.FieldUmisNo},
}

// Load reads master rows for a phase from delimited text. The header row is
// mapped first; missing phase-required columns are a fatal input error
// naming every absent column.
func Load(r io.Reader, phase models.Phase) ([]models.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read master rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("master data has no header row")
	}

	cols := mapHeader(rows[0])
	if missing := missingColumns(cols, phase); len(missing) > 0 {
		return nil, &util.MissingColumnsError{Columns: missing}
	}

	out := make([]models.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		out = append(out, buildRecord(row, cols, phase))
	}
	return out, nil
}

// LoadFile is the path-based variant used by the CLI and activities.
func LoadFile(path string, phase models.Phase) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open master file: %w", err)
	}
	defer f.Close()
	return Load(f, phase)
}

func mapHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToUpper(strings.TrimSpace(h))
		if canon, ok := headerMap[key]; ok {
			cols[canon] = i
		}
	}
	return cols
}

func missingColumns(cols map[string]int, phase models.Phase) []string {
	var missing []string
	for _, c := range requiredColumns[phase] {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func buildRecord(row []string, cols map[string]int, phase models.Phase) models.Record {
	cell := func(field string) string {
		i, ok := cols[field]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	fields := make(map[string]string, len(cols))
	for canon := range cols {
		fields[canon] = cell(canon)
	}

	// Normalization on load mirrors the document side so comparison always
	// runs canonical-vs-canonical.
	fields[compare.FieldRegisterNo] = normalize.Register(fields[compare.FieldRegisterNo])
	if v, ok := fields[compare.FieldSubjectName]; ok {
		fields[compare.FieldSubjectName] = normalize.SubjectName(v)
	}
	if v, ok := fields[compare.FieldResult]; ok {
		fields[compare.FieldResult] = normalize.Result(v)
	}

	key := models.RecordKey{Primary: fields[compare.FieldRegisterNo]}
	switch phase {
	case models.PhaseInfo:
		fields[compare.FieldUmisNo] = normalize.Register(fields[compare.FieldUmisNo])
		if v, ok := fields[compare.FieldName]; ok {
			fields[compare.FieldName] = normalize.Name(v)
		}
		if v, ok := fields[compare.FieldDOB]; ok {
			fields[compare.FieldDOB] = normalize.DOB(v)
		}
		if v, ok := fields[compare.FieldGender]; ok {
			fields[compare.FieldGender] = normalize.Gender(v)
		}
		if v, ok := fields[compare.FieldProgramme]; ok {
			fields[compare.FieldProgramme] = normalize.Text(v)
		}
		key.Secondary = fields[compare.FieldUmisNo]
	default:
		fields[compare.FieldSubCode] = strings.ToUpper(fields[compare.FieldSubCode])
		key.Secondary = fields[compare.FieldSubCode]
	}

	return models.Record{Key: key, Fields: fields}
}

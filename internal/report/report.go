// Package report renders the three classified result sets as delimited
// tabular artifacts plus a JSON run summary, written atomically under one
// run directory.
package report

import (
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"markrecon/internal/compare"
	"markrecon/internal/models"
	"markrecon/internal/util"
)

const (
	MismatchFile      = "mismatch_report.csv"
	MissingTargetFile = "missing_in_document.csv"
	MissingSourceFile = "extra_in_document.csv"
	SummaryFile       = "summary.json"
)

// columns is the exported canonical column set per phase, key fields first.
var columns = map[models.Phase][]string{
	models.PhaseMarks: {
		compare.FieldRegisterNo, compare.FieldSubCode, compare.FieldSubjectName,
		compare.FieldCourseCredit, compare.FieldGrade, compare.FieldGradePoint, compare.FieldResult,
	},
	models.PhaseInfo: {
		compare.FieldRegisterNo, compare.FieldUmisNo, compare.FieldName,
		compare.FieldDOB, compare.FieldGender, compare.FieldProgramme,
	},
}

// Write renders every artifact for one run and returns the written paths.
func Write(outDir string, runID string, res models.ComparisonResult) ([]string, error) {
	dir := filepath.Join(outDir, runID)
	paths := make([]string, 0, 4)

	p := filepath.Join(dir, MismatchFile)
	if err := util.WriteTextAtomic(p, mismatchCSV(res)); err != nil {
		return nil, fmt.Errorf("write mismatch report: %w", err)
	}
	paths = append(paths, p)

	p = filepath.Join(dir, MissingTargetFile)
	if err := util.WriteTextAtomic(p, recordsCSV(res.Phase, res.MissingInTarget)); err != nil {
		return nil, fmt.Errorf("write missing-in-document report: %w", err)
	}
	paths = append(paths, p)

	p = filepath.Join(dir, MissingSourceFile)
	if err := util.WriteTextAtomic(p, recordsCSV(res.Phase, res.MissingInSource)); err != nil {
		return nil, fmt.Errorf("write extra-in-document report: %w", err)
	}
	paths = append(paths, p)

	p = filepath.Join(dir, SummaryFile)
	summary := map[string]any{
		"run_id":            runID,
		"phase":             res.Phase,
		"mismatched":        len(res.Mismatches),
		"missing_in_target": len(res.MissingInTarget),
		"missing_in_source": len(res.MissingInSource),
		"clean":             res.Clean(),
		"generated_at":      time.Now().UTC(),
	}
	if err := util.WriteJSONAtomic(p, summary); err != nil {
		return nil, fmt.Errorf("write run summary: %w", err)
	}
	paths = append(paths, p)

	return paths, nil
}

// recordsCSV renders one record set: canonical header row plus one row per
// record, empty file body reduced to just the header.
func recordsCSV(phase models.Phase, recs []models.Record) string {
	cols := columns[phase]
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(cols)
	for _, r := range recs {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = r.Fields[c]
		}
		_ = w.Write(row)
	}
	w.Flush()
	return b.String()
}

// mismatchCSV renders mismatched pairs side by side: key columns, then a
// SOURCE/TARGET column pair per compared field, then the differing-field
// list.
func mismatchCSV(res models.ComparisonResult) string {
	keyCols := columns[res.Phase][:2]
	cmpCols := compare.ComparedFields(res.Phase)

	header := make([]string, 0, len(keyCols)+2*len(cmpCols)+1)
	header = append(header, keyCols...)
	for _, c := range cmpCols {
		header = append(header, c+"_SOURCE", c+"_TARGET")
	}
	header = append(header, "DIFF_FIELDS")

	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(header)
	for _, m := range res.Mismatches {
		row := make([]string, 0, len(header))
		row = append(row, m.Key.Primary, m.Key.Secondary)
		for _, c := range cmpCols {
			row = append(row, m.Source.Fields[c], m.Target.Fields[c])
		}
		row = append(row, strings.Join(m.DiffFields(), ";"))
		_ = w.Write(row)
	}
	w.Flush()
	return b.String()
}

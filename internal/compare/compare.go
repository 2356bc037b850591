// Package compare joins canonical records from the master spreadsheet
// (source) and the document extraction (target) on a composite key and
// classifies every key as matched, mismatched, missing-in-target or
// missing-in-source.
package compare

import (
	"sort"
	"strings"

	"markrecon/internal/models"
	"markrecon/internal/normalize"
)

// Field names of the canonical schema. Key fields never participate in the
// mismatch comparison; the compared set is fixed per phase.
const (
	FieldRegisterNo   = "REGISTER_NO"
	FieldSubCode      = "SUB_CODE"
	FieldSubjectName  = "SUBJECT_NAME"
	FieldCourseCredit = "COURSE_CREDIT"
	FieldGrade        = "GRADE"
	FieldGradePoint   = "GRADE_POINT"
	FieldResult       = "RESULT"
	FieldUmisNo       = "UMIS_NO"
	FieldName         = "NAME"
	FieldDOB          = "DOB"
	FieldGender       = "GENDER"
	FieldProgramme    = "PROGRAMME"
)

var comparedFields = map[models.Phase][]string{
	models.PhaseMarks: {FieldSubjectName, FieldGrade, FieldGradePoint, FieldResult},
	models.PhaseInfo:  {FieldName, FieldDOB, FieldGender, FieldProgramme},
}

// ComparedFields returns the non-key fields compared for a phase.
func ComparedFields(phase models.Phase) []string {
	return comparedFields[phase]
}

// CourseRecords projects course records onto the generic comparable shape.
func CourseRecords(recs []models.CourseRecord) []models.Record {
	out := make([]models.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, models.Record{
			Key: models.RecordKey{Primary: r.RegisterNo, Secondary: r.SubCode},
			Fields: map[string]string{
				FieldRegisterNo:   r.RegisterNo,
				FieldSubCode:      r.SubCode,
				FieldSubjectName:  r.SubjectName,
				FieldCourseCredit: r.CourseCredit,
				FieldGrade:        r.Grade,
				FieldGradePoint:   r.GradePoint,
				FieldResult:       r.Result,
			},
		})
	}
	return out
}

// InfoRecords projects student-info records onto the comparable shape.
func InfoRecords(recs []models.StudentInfoRecord) []models.Record {
	out := make([]models.Record, 0, len(recs))
	for _, r := range recs {
		out = append(out, models.Record{
			Key: models.RecordKey{Primary: r.RegisterNo, Secondary: r.UmisNo},
			Fields: map[string]string{
				FieldRegisterNo: r.RegisterNo,
				FieldUmisNo:     r.UmisNo,
				FieldName:       r.Name,
				FieldDOB:        r.DOB,
				FieldGender:     r.Gender,
				FieldProgramme:  r.Programme,
			},
		})
	}
	return out
}

// Compare produces the three disjoint result sets. Duplicate keys within one
// side are collapsed to their first occurrence before the set logic runs, so
// repeated subject attempts never inflate missing/extra counts.
func Compare(source, target []models.Record, phase models.Phase) models.ComparisonResult {
	src := dedupe(source)
	tgt := dedupe(target)

	res := models.ComparisonResult{
		Phase:           phase,
		Mismatches:      []models.Mismatch{},
		MissingInTarget: []models.Record{},
		MissingInSource: []models.Record{},
	}

	fields := comparedFields[phase]
	for _, k := range sortedKeys(src) {
		s := src[k]
		tr, ok := tgt[k]
		if !ok {
			res.MissingInTarget = append(res.MissingInTarget, s)
			continue
		}
		if diffs := diffFields(s, tr, fields); len(diffs) > 0 {
			res.Mismatches = append(res.Mismatches, models.Mismatch{
				Key:    s.Key,
				Source: s,
				Target: tr,
				Diffs:  diffs,
			})
		}
	}
	for _, k := range sortedKeys(tgt) {
		if _, ok := src[k]; !ok {
			res.MissingInSource = append(res.MissingInSource, tgt[k])
		}
	}
	return res
}

func dedupe(recs []models.Record) map[string]models.Record {
	out := make(map[string]models.Record, len(recs))
	for _, r := range recs {
		k := r.Key.String()
		if _, seen := out[k]; seen {
			continue
		}
		out[k] = r
	}
	return out
}

func sortedKeys(m map[string]models.Record) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// diffFields compares one field list with case-insensitive trimmed equality.
// Subject names are renormalized here a second time; on already-canonical
// values that is a no-op, but it keeps comparison safe for callers that feed
// raw master cells through.
func diffFields(s, t models.Record, fields []string) []models.FieldDiff {
	var diffs []models.FieldDiff
	for _, f := range fields {
		sv := canonical(f, s.Fields[f])
		tv := canonical(f, t.Fields[f])
		if !strings.EqualFold(sv, tv) {
			diffs = append(diffs, models.FieldDiff{Field: f, SourceValue: sv, TargetValue: tv})
		}
	}
	return diffs
}

func canonical(field, v string) string {
	if field == FieldSubjectName {
		return normalize.SubjectName(v)
	}
	return strings.TrimSpace(v)
}

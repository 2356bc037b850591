package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"markrecon/internal/compare"
	"markrecon/internal/models"

	"github.com/stretchr/testify/require"
)

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	res := models.ComparisonResult{
		Phase: models.PhaseMarks,
		Mismatches: []models.Mismatch{{
			Key: models.RecordKey{Primary: "920423104001", Secondary: "CS101"},
			Source: models.Record{Fields: map[string]string{
				compare.FieldSubjectName: "PROGRAMMING IN C", compare.FieldGrade: "A",
				compare.FieldGradePoint: "9", compare.FieldResult: "PASS",
			}},
			Target: models.Record{Fields: map[string]string{
				compare.FieldSubjectName: "PROGRAMMING IN C", compare.FieldGrade: "B",
				compare.FieldGradePoint: "9", compare.FieldResult: "PASS",
			}},
			Diffs: []models.FieldDiff{{Field: compare.FieldGrade, SourceValue: "A", TargetValue: "B"}},
		}},
		MissingInTarget: []models.Record{{
			Key: models.RecordKey{Primary: "920423104002", Secondary: "CS102"},
			Fields: map[string]string{
				compare.FieldRegisterNo: "920423104002", compare.FieldSubCode: "CS102",
				compare.FieldSubjectName: "DATA STRUCTURES", compare.FieldGrade: "B",
				compare.FieldGradePoint: "8", compare.FieldResult: "PASS",
			},
		}},
		MissingInSource: []models.Record{},
	}

	paths, err := Write(dir, "run-1", res)
	require.NoError(t, err)
	require.Len(t, paths, 4)

	mm := readCSV(t, filepath.Join(dir, "run-1", MismatchFile))
	require.Len(t, mm, 2)
	require.Equal(t, "REGISTER_NO", mm[0][0])
	require.Equal(t, "DIFF_FIELDS", mm[0][len(mm[0])-1])
	require.Equal(t, "GRADE", mm[1][len(mm[1])-1])

	missing := readCSV(t, filepath.Join(dir, "run-1", MissingTargetFile))
	require.Len(t, missing, 2)
	require.Equal(t, "920423104002", missing[1][0])

	extra := readCSV(t, filepath.Join(dir, "run-1", MissingSourceFile))
	require.Len(t, extra, 1) // header only

	_, err = os.Stat(filepath.Join(dir, "run-1", SummaryFile))
	require.NoError(t, err)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(string(b))).ReadAll()
	require.NoError(t, err)
	return rows
}

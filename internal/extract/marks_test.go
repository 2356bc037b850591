package extract

import (
	"testing"

	"markrecon/internal/models"

	"github.com/stretchr/testify/require"
)

func TestMarksStrictRow(t *testing.T) {
	recs := Marks("REGISTER NO : 920423104001 01 CS101 Programming In C 4 A 9 PASS")
	require.Len(t, recs, 1)
	require.Equal(t, models.CourseRecord{
		RegisterNo:   "920423104001",
		SubCode:      "CS101",
		SubjectName:  "PROGRAMMING IN C",
		CourseCredit: "4",
		Grade:        "A",
		GradePoint:   "9",
		Result:       "PASS",
	}, recs[0])
}

func TestMarksAuditRowWithStarPrefix(t *testing.T) {
	recs := Marks("REGISTER NO : 920423104001 04 AUD101 *Constitution of India 0 S 0 PASS")
	require.Len(t, recs, 1)
	require.Equal(t, "AUD101", recs[0].SubCode)
	require.Equal(t, "CONSTITUTION OF INDIA", recs[0].SubjectName)
	require.Equal(t, "0", recs[0].CourseCredit)
	require.Equal(t, "S", recs[0].Grade)
	require.Equal(t, "0", recs[0].GradePoint)
	require.Equal(t, "PASS", recs[0].Result)
}

func TestMarksLenientRowDefaults(t *testing.T) {
	recs := Marks("REGISTER NO : 920423104001 AUD102 Value Education PASS")
	require.Len(t, recs, 1)
	require.Equal(t, "AUD102", recs[0].SubCode)
	require.Equal(t, "VALUE EDUCATION", recs[0].SubjectName)
	require.Equal(t, "0", recs[0].CourseCredit)
	require.Equal(t, "S", recs[0].Grade)
	require.Equal(t, "0", recs[0].GradePoint)
}

func TestMarksLayoutPrecedence(t *testing.T) {
	// Both layouts can explain this row; only the strict one may emit it.
	recs := Marks("REGISTER NO : 920423104001 CS102 Data Structures 4 B 8 PASS")
	require.Len(t, recs, 1)
	require.Equal(t, "4", recs[0].CourseCredit)
	require.Equal(t, "B", recs[0].Grade)
}

func TestMarksNonOverlappingSpans(t *testing.T) {
	block := Segment("REGISTER NO : 920423104001 "+
		"01 CS101 Programming In C 4 A 9 PASS "+
		"02 CS102 Data Structures 4 B+ 8 PASS "+
		"AUD101 Constitution of India PASS", RegisterAnchor)[0]

	var spans []span
	for _, m := range layoutA.FindAllStringSubmatchIndex(block.Text, -1) {
		spans = append(spans, span{m[0], m[1]})
	}
	for _, m := range layoutB.FindAllStringSubmatchIndex(block.Text, -1) {
		s := span{m[0], m[1]}
		if overlaps(s, spans) {
			continue
		}
		spans = append(spans, s)
	}
	for i := range spans {
		for j := i + 1; j < len(spans); j++ {
			if !(spans[i].end <= spans[j].start || spans[i].start >= spans[j].end) {
				t.Fatalf("accepted spans overlap: %v and %v", spans[i], spans[j])
			}
		}
	}

	recs := MarksRecords(block)
	require.Len(t, recs, 3)
	require.Equal(t, "B+", recs[1].Grade)
	require.Equal(t, "S", recs[2].Grade)
}

func TestMarksResultAbbreviations(t *testing.T) {
	recs := Marks("REGISTER NO : 920423104001 CS103 Operating Systems 4 U 0 RA " +
		"CS104 Computer Networks 4 A 8 P")
	require.Len(t, recs, 2)
	require.Equal(t, "RA", recs[0].Result)
	require.Equal(t, "PASS", recs[1].Result)
}

func TestMarksStudentWithNoSubjects(t *testing.T) {
	recs := Marks("REGISTER NO : 920423104001 WITHHELD " +
		"REGISTER NO : 920423104002 CS101 Programming In C 4 A 9 PASS")
	require.Len(t, recs, 1)
	require.Equal(t, "920423104002", recs[0].RegisterNo)
}

func TestMarksSubjectRepeatsAcrossAttempts(t *testing.T) {
	recs := Marks("REGISTER NO : 920423104001 " +
		"CS105 Discrete Mathematics 4 U 0 RA " +
		"CS105 Discrete Mathematics 4 C 6 PASS")
	require.Len(t, recs, 2)
	require.Equal(t, recs[0].SubCode, recs[1].SubCode)
}

package extract

import (
	"regexp"
	"strings"

	"markrecon/internal/models"
	"markrecon/internal/normalize"
)

// Two competing row layouts cover the marks tables seen in practice.
//
// layoutA is the strict six-column form: optional serial, subject code,
// subject name (no digits), course credit, grade letter, grade point,
// terminal result. layoutB keeps the code/name/result anchors but makes
// credit, grade and grade point optional, which covers short audit-course
// rows. layoutA wins wherever both could match; layoutB fills in only rows
// layoutA could not explain.
var (
	layoutA = regexp.MustCompile(
		`(?i)(?:\d{1,3}\s+)?([A-Z]{2,3}\d{3,4})\s+([^\d]{2,160}?)\s+(\d+(?:\.\d+)?)\s+([A-Z+OU]{1,2})\s+(\d+)\s+(PASS|RA|P)\b`)
	layoutB = regexp.MustCompile(
		`(?i)(?:\d{1,3}\s+)?([A-Z]{2,3}\d{3,4})\s+([A-Za-z*\x{2217}\x{2731}\x{204E}\x{FE61}\x{FF0A}0-9()\-:,/&\s]{1,160}?)\s+(?:([\d.]+)\s+)?(?:([A-Z+OU]{1,2})\s+)?(?:(\d+)\s+)?(PASS|RA|P)\b`)
)

type span struct{ start, end int }

func overlaps(s span, used []span) bool {
	for _, u := range used {
		if !(s.end <= u.start || s.start >= u.end) {
			return true
		}
	}
	return false
}

// MarksRecords extracts every subject row of one student block. The strict
// layout is scanned first and records its match spans; lenient-layout
// matches overlapping any strict span are discarded so no row is counted
// twice. Zero rows is legal (a student with no completed subjects).
func MarksRecords(b Block) []models.CourseRecord {
	regno := normalize.Register(b.AnchorRaw)
	records := make([]models.CourseRecord, 0, 8)
	used := make([]span, 0, 8)

	for _, m := range layoutA.FindAllStringSubmatchIndex(b.Text, -1) {
		records = append(records, courseRecord(b.Text, m, regno, false))
		used = append(used, span{m[0], m[1]})
	}
	for _, m := range layoutB.FindAllStringSubmatchIndex(b.Text, -1) {
		if overlaps(span{m[0], m[1]}, used) {
			continue
		}
		records = append(records, courseRecord(b.Text, m, regno, true))
		used = append(used, span{m[0], m[1]})
	}
	return records
}

// courseRecord builds one canonical record from a submatch index vector.
// The lenient layout's optional groups default to credit 0, grade S,
// grade point 0 when absent.
func courseRecord(text string, m []int, regno string, lenient bool) models.CourseRecord {
	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return strings.TrimSpace(text[m[2*i]:m[2*i+1]])
	}
	credit, grade, point := group(3), group(4), group(5)
	if lenient {
		if credit == "" {
			credit = "0"
		}
		if grade == "" {
			grade = "S"
		}
		if point == "" {
			point = "0"
		}
	}
	// Result is normalized inline and again by the comparator; both sides
	// must agree even if one path is skipped.
	result := strings.ToUpper(group(6))
	if result == "P" {
		result = "PASS"
	}
	return models.CourseRecord{
		RegisterNo:   regno,
		SubCode:      strings.ToUpper(group(1)),
		SubjectName:  normalize.SubjectName(group(2)),
		CourseCredit: credit,
		Grade:        strings.ToUpper(grade),
		GradePoint:   point,
		Result:       normalize.Result(result),
	}
}

// Marks runs segmentation plus row extraction over a whole document text.
func Marks(text string) []models.CourseRecord {
	out := make([]models.CourseRecord, 0, 64)
	for _, b := range Segment(text, RegisterAnchor) {
		out = append(out, MarksRecords(b)...)
	}
	return out
}

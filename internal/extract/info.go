package extract

import (
	"regexp"

	"markrecon/internal/models"
	"markrecon/internal/normalize"
)

// Student-info documents label fields inconsistently: the candidate-name and
// register-number labels appear in either order, so the combined phrase is
// tried both ways. The remaining fields are independent labeled patterns
// anywhere in the block; a pattern that fails yields an empty field, never a
// dropped student.
var (
	nameThenReg = regexp.MustCompile(
		`(?i)NAME\s+OF\s+(?:THE\s+)?CANDIDATE\s*:?\s*([A-Za-z][A-Za-z0-9.\s]{1,120}?)\s+REGISTER\s*NO\.?\s*:?\s*([0-9A-Za-z.\-E+]+)`)
	regThenName = regexp.MustCompile(
		`(?i)REGISTER\s*NO\.?\s*:?\s*([0-9A-Za-z.\-E+]+)\s+NAME\s+OF\s+(?:THE\s+)?CANDIDATE\s*:?\s*([A-Za-z][A-Za-z0-9.\s]{1,120}?)\s*(?:DATE\s+OF\s+BIRTH|DOB|GENDER|PROGRAMME|$)`)
	dobField = regexp.MustCompile(
		`(?i)(?:DATE\s+OF\s+BIRTH|DOB)\s*:?\s*([0-9]{1,4}[-/][A-Za-z0-9]{1,3}[-/][0-9]{2,4})`)
	genderField = regexp.MustCompile(
		`(?i)GENDER\s*:?\s*([A-Za-z]+)`)
	programmeField = regexp.MustCompile(
		`(?i)PROGRAMME\s*:?\s*([A-Za-z][A-Za-z0-9.&()\-:,/\s]{1,160}?)\s*(?:DATE\s+OF\s+BIRTH|DOB|GENDER|REGISTER\s*NO|NAME\s+OF|UMIS|$)`)
)

// InfoRecord extracts one student's demographic facts from a UMIS-anchored
// block. Partial records are retained so the comparator can surface missing
// fields instead of silently dropping the student.
func InfoRecord(b Block) models.StudentInfoRecord {
	rec := models.StudentInfoRecord{
		UmisNo: normalize.Register(b.AnchorRaw),
	}

	if m := nameThenReg.FindStringSubmatch(b.Text); m != nil {
		rec.Name = normalize.Name(m[1])
		rec.RegisterNo = normalize.Register(m[2])
	} else if m := regThenName.FindStringSubmatch(b.Text); m != nil {
		rec.RegisterNo = normalize.Register(m[1])
		rec.Name = normalize.Name(m[2])
	}

	if m := dobField.FindStringSubmatch(b.Text); m != nil {
		rec.DOB = normalize.DOB(m[1])
	}
	if m := genderField.FindStringSubmatch(b.Text); m != nil {
		rec.Gender = normalize.Gender(m[1])
	}
	if m := programmeField.FindStringSubmatch(b.Text); m != nil {
		rec.Programme = normalize.Text(m[1])
	}
	return rec
}

// Info runs segmentation plus field extraction over a whole document text.
func Info(text string) []models.StudentInfoRecord {
	blocks := Segment(text, UmisAnchor)
	out := make([]models.StudentInfoRecord, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, InfoRecord(b))
	}
	return out
}

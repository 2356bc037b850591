// Package normalize converts raw textual field values into canonical
// comparable forms. Every function is total: unparseable input degrades to a
// best-effort or empty canonical value, never an error.
package normalize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	ws        = regexp.MustCompile(`\s+`)
	digitRuns = regexp.MustCompile(`\d+`)
	trailDotZ = regexp.MustCompile(`\.0+$`)
	// Star/asterisk/bullet variants used interchangeably by typesetting
	// systems to mark elective/audit subjects.
	stars = regexp.MustCompile(`[*\x{2217}\x{2731}\x{204E}\x{FE61}\x{FF0A}]+`)
	// Everything outside the allowed subject-name character set.
	subjectNoise = regexp.MustCompile(`[^A-Za-z0-9\-():,/&\s]`)
)

// dobLayouts is tried in order; the first successful parse wins.
var dobLayouts = []string{
	"2006-01-02",
	"02-Jan-2006",
	"02/Jan/2006",
	"02/01/2006",
	"02-01-2006",
}

const dobCanonical = "02-Jan-2006"

// Register produces a digit-only canonical identifier. Spreadsheet tools
// coerce long numeric IDs into scientific notation (9.20423E+11), so a
// numeric parse is tried first and round-tripped through float64 to integer
// digits. IDs beyond float64's 53-bit integer range are an accepted
// precision-loss risk.
func Register(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return ""
	}
	// Infinities and magnitudes past int64 cannot round-trip through
	// FormatInt; those fall through to digit extraction.
	if f, err := strconv.ParseFloat(s, 64); err == nil && math.Abs(f) < 1<<63 {
		return strconv.FormatInt(int64(f), 10)
	}
	digits := strings.Join(digitRuns.FindAllString(s, -1), "")
	if len(digits) >= 5 {
		return digits
	}
	return trailDotZ.ReplaceAllString(s, "")
}

// Text collapses whitespace runs to single spaces, trims, and uppercases.
func Text(raw string) string {
	return strings.ToUpper(strings.TrimSpace(ws.ReplaceAllString(raw, " ")))
}

// Name canonicalizes a person name the same way as free text.
func Name(raw string) string {
	return Text(raw)
}

// Gender maps any value starting with M to MALE and F to FEMALE; anything
// else passes through uppercased.
func Gender(raw string) string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(v, "M"):
		return "MALE"
	case strings.HasPrefix(v, "F"):
		return "FEMALE"
	default:
		return v
	}
}

// DOB reformats any recognized date representation to DD-Mon-YYYY. On total
// failure the trimmed raw string is returned unchanged, so an unparseable
// date is still visible downstream.
func DOB(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	candidate := titleCaseMonth(s)
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format(dobCanonical)
		}
	}
	return s
}

// titleCaseMonth rewrites alphabetic runs as Xxx so that JUN/jun both
// satisfy the Jan month token in time layouts.
func titleCaseMonth(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevAlpha := false
	for _, r := range s {
		alpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		switch {
		case alpha && !prevAlpha:
			b.WriteRune(toUpper(r))
		case alpha:
			b.WriteRune(toLower(r))
		default:
			b.WriteRune(r)
		}
		prevAlpha = alpha
	}
	return b.String()
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}

// SubjectName strips elective/audit star glyphs and decorative punctuation
// that would otherwise cause false mismatches, then canonicalizes like Text.
func SubjectName(raw string) string {
	s := stars.ReplaceAllString(raw, "")
	s = subjectNoise.ReplaceAllString(s, "")
	return Text(s)
}

// Result maps pass/fail abbreviations to the canonical forms: F becomes RA,
// P becomes PASS, everything else passes through uppercased.
func Result(raw string) string {
	v := strings.ToUpper(strings.TrimSpace(raw))
	switch v {
	case "F":
		return "RA"
	case "P":
		return "PASS"
	default:
		return v
	}
}

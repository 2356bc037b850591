package util

import (
	"regexp"
	"strings"
)

var wsRun = regexp.MustCompile(`\s+`)

// CollapseText flattens extracted document text into a single
// space-separated line: NUL bytes and non-printing controls are dropped
// (PDF extractors emit them), NBSP and zero-width spaces are unified, and
// every whitespace run collapses to one space.
func CollapseText(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x00", "")
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, "​", "")

	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			r = append(r, ' ')
			continue
		}
		if ch < 0x20 {
			continue
		}
		r = append(r, ch)
	}
	return strings.TrimSpace(wsRun.ReplaceAllString(string(r), " "))
}

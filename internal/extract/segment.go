// Package extract turns the linear text of a marksheet/transcript PDF into
// discrete student and subject records. Layout recognition is regexp driven:
// each document family is described by an anchor that delimits per-student
// blocks and one or more row layouts matched inside every block.
package extract

import "regexp"

// Anchor identifies a record-start marker. Primary tolerates alphanumeric
// and scientific-notation identifiers (spreadsheet-mangled register numbers
// survive that way); Fallback requires purely numeric identifiers and is
// tried only when Primary matches nothing.
type Anchor struct {
	Primary  *regexp.Regexp
	Fallback *regexp.Regexp
}

var (
	// RegisterAnchor delimits per-student marks blocks.
	RegisterAnchor = Anchor{
		Primary:  regexp.MustCompile(`(?i)REGISTER\s*NO\.?\s*:?\s*([0-9A-Za-z.\-E+]+)`),
		Fallback: regexp.MustCompile(`(?i)REGISTER\s*NO\.?\s*:?\s*([0-9]+)`),
	}
	// UmisAnchor delimits per-student demographic blocks.
	UmisAnchor = Anchor{
		Primary:  regexp.MustCompile(`(?i)UMIS\s*NO\.?\s*:?\s*([0-9A-Za-z.\-E+]+)`),
		Fallback: regexp.MustCompile(`(?i)UMIS\s*NO\.?\s*:?\s*([0-9]+)`),
	}
)

// Block is one student's contiguous span of document text. Start/End are
// offsets of Text within the segmented document; AnchorStart is where the
// anchor match itself begins.
type Block struct {
	AnchorRaw   string
	Text        string
	AnchorStart int
	Start       int
	End         int
}

// Segment splits whitespace-collapsed document text into per-student blocks.
// Block i runs from the end of anchor match i to the start of anchor match
// i+1 (end-of-text for the last block), so consecutive blocks partition the
// text with no gaps or overlaps. Zero anchor matches from both patterns
// yields an empty slice, not an error: callers treat that as an
// empty extraction.
func Segment(text string, anchor Anchor) []Block {
	matches := anchor.Primary.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 && anchor.Fallback != nil {
		matches = anchor.Fallback.FindAllStringSubmatchIndex(text, -1)
	}
	if len(matches) == 0 {
		return nil
	}

	blocks := make([]Block, 0, len(matches))
	for i, m := range matches {
		start := m[1]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		blocks = append(blocks, Block{
			AnchorRaw:   text[m[2]:m[3]],
			Text:        text[start:end],
			AnchorStart: m[0],
			Start:       start,
			End:         end,
		})
	}
	return blocks
}

package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"markrecon/internal/util"

	"github.com/ledongthuc/pdf"
)

// DocumentText recovers the concatenated text of a PDF file and collapses
// it to a single whitespace-normalized line, ready for segmentation.
func DocumentText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return plainText(r)
}

// DocumentTextFromBytes is the in-memory variant used by callers that
// receive uploaded document bytes rather than a path.
func DocumentTextFromBytes(b []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	return plainText(r)
}

func plainText(r *pdf.Reader) (string, error) {
	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, reader); err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}
	text := util.CollapseText(buf.String())
	if text == "" {
		return "", util.ErrNoExtractableText
	}
	return text, nil
}

package util

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoExtractableText = errors.New("no extractable text found in PDF")

	// ErrNoRecords means the document parsed but no record anchors matched
	// at all. A student block with zero subject rows is legal and does NOT
	// produce this error.
	ErrNoRecords = errors.New("no extractable records found in document")
)

// MissingColumnsError reports master-data headers required by the selected
// phase that are absent after header mapping.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("master data missing required columns: %s", strings.Join(e.Columns, ", "))
}

func IsMissingColumns(err error) bool {
	var mc *MissingColumnsError
	return errors.As(err, &mc)
}

// Package extractor turns an uploaded notice document into ordered table
// rows of raw cell text.
package extractor

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNoText = errors.New("document contains no extractable text")
	ErrNotPDF = errors.New("document is not a PDF")
)

// Row is one table row as extracted, cells in column order
type Row []string

// Extractor produces table rows from raw document bytes
type Extractor interface {
	Extract(ctx context.Context, data []byte) ([]Row, error)
}

// ExtractionError reports an unreadable or empty document. It is fatal to
// the request that carried the document.
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func newExtractionError(message string, cause error) *ExtractionError {
	return &ExtractionError{Message: message, Cause: cause}
}

// Package extract defines the document text extraction boundary.
//
// Extraction is a black box to the rest of the system: document path in,
// plain text out. Empty output is a handled outcome, not an error; callers
// must treat it as "nothing could be read from this document".
package extract

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// TextExtractor converts a document into plain text, possibly empty.
type TextExtractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// PDFExtractor extracts the digital text layer of a PDF. Scanned or
// handwritten pages have no text layer and yield an empty string, which
// callers handle as an extraction failure.
type PDFExtractor struct{}

// NewPDFExtractor creates a PDFExtractor.
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText returns the trimmed plain text of the PDF at path.
func (e *PDFExtractor) ExtractText(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", path, err)
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("reading text from %s: %w", path, err)
	}

	return strings.TrimSpace(buf.String()), nil
}

var _ TextExtractor = (*PDFExtractor)(nil)

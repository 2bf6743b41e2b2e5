// Package document turns uploaded resume files into plain text.
//
// Extraction never fails outright: damaged or unsupported input degrades to
// partial or empty text. The returned error only reports that degradation
// happened so callers can log it.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrCorruptDocument marks input that could not be fully decoded.
var ErrCorruptDocument = errors.New("unsupported or corrupt document")

// Format is the extraction strategy chosen for a file.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatText Format = "text"
)

// FormatOf picks the extraction strategy from the file extension.
func FormatOf(filename string) Format {
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(filename))) {
	case ".pdf":
		return FormatPDF
	case ".doc", ".docx":
		return FormatDOCX
	default:
		return FormatText
	}
}

// Extract returns the text content of data. The text is always usable, even
// when err is non-nil; err wraps ErrCorruptDocument.
func Extract(filename string, data []byte) (string, error) {
	switch FormatOf(filename) {
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	default:
		return extractPlain(data), nil
	}
}

func extractPlain(data []byte) string {
	return string(bytes.ToValidUTF8(data, nil))
}

func corrupt(format Format, err error) error {
	return fmt.Errorf("%s: %w: %v", format, ErrCorruptDocument, err)
}

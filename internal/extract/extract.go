package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"resumescreen/internal/errors"
)

// Extractor converts a document file into plain text.
type Extractor interface {
	ExtractText(path string) (string, error)
}

// SupportedExtensions lists the document formats the extractor accepts.
var SupportedExtensions = []string{".pdf", ".doc", ".docx"}

// IsSupported reports whether the file has an accepted document extension.
func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// DocumentExtractor dispatches on the file extension. On any failure it
// returns empty text together with the reason; it never panics, so one bad
// file stays contained to its own record.
type DocumentExtractor struct {
	logger *errors.Logger
}

// NewDocumentExtractor creates an extractor for PDF and Word documents.
func NewDocumentExtractor(logger *errors.Logger) *DocumentExtractor {
	return &DocumentExtractor{logger: logger}
}

// ExtractText extracts plain text from a .pdf, .doc or .docx file.
func (e *DocumentExtractor) ExtractText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".pdf":
		return e.extractPDF(path)
	case ".doc", ".docx":
		// Legacy .doc goes through the DOCX parser too. That can come back
		// empty for old binary files, which surfaces as an empty-text record
		// downstream rather than a crash.
		return e.extractDOCX(path)
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFile,
			fmt.Sprintf("Unsupported file type: %s", ext), nil).
			WithContext("path", path)
	}
}

package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"resumescreen/internal/errors"
)

// extractPDF concatenates the plain text of every page in document order.
// Pages with no extractable text contribute an empty string, not an error.
func (e *DocumentExtractor) extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("Failed to open PDF: %s", path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && e.logger != nil {
			e.logger.Warn("Failed to close PDF file", "path", path, "error", cerr)
		}
	}()

	var textBuilder strings.Builder
	totalPages := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPages; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page degrades to empty text for that page.
			if e.logger != nil {
				e.logger.Debug("Skipping unreadable PDF page",
					"path", path, "page", pageIndex, "error", err)
			}
			continue
		}

		textBuilder.WriteString(text)
	}

	return textBuilder.String(), nil
}

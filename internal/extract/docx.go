package extract

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/nguyenthenguyen/docx"

	"resumescreen/internal/errors"
)

// extractDOCX concatenates paragraph text in document order, one newline per
// paragraph.
func (e *DocumentExtractor) extractDOCX(path string) (string, error) {
	r, err := docx.ReadDocxFile(path)
	if err != nil {
		return "", errors.NewIOError(errors.ErrCodeExtractionFailed,
			fmt.Sprintf("Failed to open Word document: %s", path), err)
	}
	defer func() {
		if cerr := r.Close(); cerr != nil && e.logger != nil {
			e.logger.Warn("Failed to close Word document", "path", path, "error", cerr)
		}
	}()

	return paragraphsFromDocumentXML(r.Editable().GetContent()), nil
}

// paragraphsFromDocumentXML pulls the text runs out of a WordprocessingML
// document body. Each w:p paragraph becomes one line; w:br and w:tab inside a
// run become a newline and a tab. Unparseable trailing XML ends the scan with
// whatever was collected so far.
func paragraphsFromDocumentXML(content string) string {
	decoder := xml.NewDecoder(strings.NewReader(content))

	var out strings.Builder
	var paragraph strings.Builder
	inText := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "br":
				paragraph.WriteByte('\n')
			case "tab":
				paragraph.WriteByte('\t')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				out.WriteString(paragraph.String())
				out.WriteByte('\n')
				paragraph.Reset()
			}
		case xml.CharData:
			if inText {
				paragraph.Write(t)
			}
		}
	}

	// Text outside any closed paragraph still counts.
	if paragraph.Len() > 0 {
		out.WriteString(paragraph.String())
		out.WriteByte('\n')
	}

	return out.String()
}

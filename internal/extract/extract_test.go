package extract

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumescreen/internal/errors"
)

func TestIsSupported(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"pdf", "resume.pdf", true},
		{"uppercase pdf", "RESUME.PDF", true},
		{"docx", "cv.docx", true},
		{"legacy doc", "cv.doc", true},
		{"plain text", "notes.txt", false},
		{"image", "scan.png", false},
		{"no extension", "resume", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSupported(tt.path); got != tt.expected {
				t.Errorf("IsSupported(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestExtractTextUnsupportedExtension(t *testing.T) {
	e := NewDocumentExtractor(nil)

	text, err := e.ExtractText("resume.txt")
	if err == nil {
		t.Fatal("expected error for unsupported extension")
	}
	if text != "" {
		t.Errorf("expected empty text on failure, got %q", text)
	}

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		t.Fatalf("expected *errors.AppError, got %T", err)
	}
	if appErr.Code != errors.ErrCodeUnsupportedFile {
		t.Errorf("expected code %s, got %s", errors.ErrCodeUnsupportedFile, appErr.Code)
	}
	if got := appErr.Context["path"]; got != "resume.txt" {
		t.Errorf("expected offending path in error context, got %v", got)
	}
}

func TestExtractTextCorruptFiles(t *testing.T) {
	tmpDir := t.TempDir()
	e := NewDocumentExtractor(nil)

	tests := []struct {
		name     string
		fileName string
		content  []byte
	}{
		{"garbage pdf", "broken.pdf", []byte("this is not a pdf at all")},
		{"garbage docx", "broken.docx", []byte{0x00, 0x01, 0x02, 0x03}},
		{"empty pdf", "empty.pdf", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, tt.fileName)
			if err := os.WriteFile(path, tt.content, 0o600); err != nil {
				t.Fatal(err)
			}

			text, err := e.ExtractText(path)
			if err == nil {
				t.Error("expected error for corrupt file")
			}
			if text != "" {
				t.Errorf("expected empty text on failure, got %q", text)
			}
		})
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	e := NewDocumentExtractor(nil)

	if _, err := e.ExtractText(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParagraphsFromDocumentXML(t *testing.T) {
	tests := []struct {
		name     string
		xml      string
		expected string
	}{
		{
			name:     "single paragraph",
			xml:      `<w:document><w:body><w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p></w:body></w:document>`,
			expected: "Jane Doe\n",
		},
		{
			name: "paragraphs in document order with split runs",
			xml: `<w:document><w:body>` +
				`<w:p><w:r><w:t>Jane </w:t></w:r><w:r><w:t>Doe</w:t></w:r></w:p>` +
				`<w:p><w:r><w:t>6 years Go/K8s</w:t></w:r></w:p>` +
				`</w:body></w:document>`,
			expected: "Jane Doe\n6 years Go/K8s\n",
		},
		{
			name:     "empty paragraph keeps its newline",
			xml:      `<w:body><w:p></w:p><w:p><w:r><w:t>after blank</w:t></w:r></w:p></w:body>`,
			expected: "\nafter blank\n",
		},
		{
			name:     "line break and tab inside a run",
			xml:      `<w:body><w:p><w:r><w:t>a</w:t><w:br/><w:t>b</w:t><w:tab/><w:t>c</w:t></w:r></w:p></w:body>`,
			expected: "a\nb\tc\n",
		},
		{
			name:     "text outside w:t is ignored",
			xml:      `<w:body><w:p>ignored<w:r><w:t>kept</w:t></w:r></w:p></w:body>`,
			expected: "kept\n",
		},
		{
			name:     "no paragraphs",
			xml:      `<w:body></w:body>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := paragraphsFromDocumentXML(tt.xml); got != tt.expected {
				t.Errorf("paragraphsFromDocumentXML() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParagraphsFromDocumentXMLTruncatedInput(t *testing.T) {
	// A truncated document keeps whatever text was collected before the
	// decoder gave up.
	got := paragraphsFromDocumentXML(`<w:body><w:p><w:r><w:t>partial`)
	if !strings.Contains(got, "partial") {
		t.Errorf("expected collected text from truncated XML, got %q", got)
	}
}

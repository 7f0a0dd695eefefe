package common

import (
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"resumescreen/internal/errors"
)

func TestValidateOutputFormat(t *testing.T) {
	supported := []string{"json", "text", "markdown"}

	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"json is supported", "json", false},
		{"text is supported", "text", false},
		{"yaml is not supported", "yaml", true},
		{"empty format is not supported", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, supported)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
		})
	}

	if err := ValidateOutputFormat("anything", nil); err != nil {
		t.Errorf("no restrictions should accept any format, got %v", err)
	}
}

func TestValidateInputFile(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "resume.pdf")
	if err := os.WriteFile(existing, []byte("content"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"existing file", existing, false},
		{"missing file", filepath.Join(dir, "missing.pdf"), true},
		{"directory", dir, true},
		{"empty path", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateInputFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateInputFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePositiveWorkers(t *testing.T) {
	if err := ValidatePositiveWorkers(0); err == nil {
		t.Error("expected error for zero workers")
	}
	if err := ValidatePositiveWorkers(4); err != nil {
		t.Errorf("ValidatePositiveWorkers(4) error = %v", err)
	}
}

func TestHandleOutputUnknownFormat(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)
	oh := NewOutputHandler(logger)

	err := oh.HandleOutput(struct{}{}, CommandConfig{OutputFormat: "yaml"})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}

	appErr, ok := err.(*errors.AppError)
	if !ok || appErr.Code != errors.ErrCodeInvalidFormat {
		t.Fatalf("error = %v, want code %s", err, errors.ErrCodeInvalidFormat)
	}
	// The message names the bad format and lists what the registry can render.
	if !strings.Contains(appErr.Message, "yaml") || !strings.Contains(appErr.Message, "json") {
		t.Errorf("message = %q, want format name and supported list", appErr.Message)
	}
}

func TestCollectResumeFiles(t *testing.T) {
	logger := errors.NewLogger(slog.LevelError)
	dir := t.TempDir()

	mustWrite := func(name string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	zed := mustWrite("zed.pdf")
	alice := mustWrite("folder/alice.pdf")
	bob := mustWrite("folder/bob.docx")
	mustWrite("folder/notes.txt") // unsupported, silently skipped in dirs

	t.Run("explicit files keep argument order", func(t *testing.T) {
		files, err := CollectResumeFiles([]string{zed, alice}, logger)
		if err != nil {
			t.Fatalf("CollectResumeFiles() error = %v", err)
		}
		if !reflect.DeepEqual(files, []string{zed, alice}) {
			t.Errorf("files = %v, want argument order", files)
		}
	})

	t.Run("directories are walked and sorted", func(t *testing.T) {
		files, err := CollectResumeFiles([]string{filepath.Join(dir, "folder")}, logger)
		if err != nil {
			t.Fatalf("CollectResumeFiles() error = %v", err)
		}
		if !reflect.DeepEqual(files, []string{alice, bob}) {
			t.Errorf("files = %v, want sorted supported files", files)
		}
	})

	t.Run("explicit unsupported file fails loudly", func(t *testing.T) {
		_, err := CollectResumeFiles([]string{filepath.Join(dir, "folder/notes.txt")}, logger)
		if err == nil {
			t.Fatal("expected error for explicit unsupported file")
		}
		appErr, ok := err.(*errors.AppError)
		if !ok || appErr.Code != errors.ErrCodeUnsupportedFile {
			t.Errorf("error = %v, want code %s", err, errors.ErrCodeUnsupportedFile)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := CollectResumeFiles([]string{filepath.Join(dir, "nope.pdf")}, logger)
		if err == nil {
			t.Fatal("expected error for missing path")
		}
	})

	t.Run("directory with no supported files", func(t *testing.T) {
		empty := filepath.Join(dir, "empty")
		if err := os.MkdirAll(empty, 0750); err != nil {
			t.Fatal(err)
		}
		_, err := CollectResumeFiles([]string{empty}, logger)
		if err == nil {
			t.Fatal("expected error for directory without supported files")
		}
	})
}

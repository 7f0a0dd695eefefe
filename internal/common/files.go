package common

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"resumescreen/internal/errors"
	"resumescreen/internal/extract"
)

// CollectResumeFiles expands the command arguments into a flat, sorted list
// of supported resume files. A path may be a single file or a directory;
// directories are walked recursively and unsupported files inside them are
// skipped with a debug log. A file named explicitly must be supported, so a
// typo'd argument fails loudly instead of vanishing from the report.
func CollectResumeFiles(paths []string, logger *errors.Logger) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NewIOError(errors.ErrCodeFileNotFound,
					fmt.Sprintf("File not found: %s", path), err)
			}
			return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
				fmt.Sprintf("Cannot access path: %s", path), err)
		}

		if !info.IsDir() {
			if !extract.IsSupported(path) {
				return nil, errors.NewValidationError(errors.ErrCodeUnsupportedFile,
					fmt.Sprintf("Unsupported file type: %s (supported: %v)", path, extract.SupportedExtensions), nil)
			}
			files = append(files, path)
			continue
		}

		var walked []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !extract.IsSupported(p) {
				logger.Debug("Skipping unsupported file in directory", "file", p)
				return nil
			}
			walked = append(walked, p)
			return nil
		})
		if err != nil {
			return nil, errors.NewIOError(errors.ErrCodeFileNotReadable,
				fmt.Sprintf("Failed to walk directory: %s", path), err)
		}

		// Arguments keep their given order; a directory's contents are
		// sorted so its rows are stable across filesystems.
		sort.Strings(walked)
		files = append(files, walked...)
	}

	if len(files) == 0 {
		return nil, errors.NewValidationError(errors.ErrCodeFileNotFound,
			"No supported resume files found in the given paths", nil)
	}

	return files, nil
}

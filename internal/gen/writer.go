package gen

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes every generated file into its package directory. Files
// whose content is unchanged are left untouched so that watchers do not
// see spurious writes. It returns the paths that were written.
func WriteFiles(files []GeneratedFile) ([]string, error) {
	var written []string

	for _, file := range files {
		path := file.Path()

		old, err := os.ReadFile(path)
		if err == nil && bytes.Equal(old, file.Content) {
			continue
		}

		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return written, fmt.Errorf("reading %s: %w", path, err)
		}

		if err := os.MkdirAll(file.Dir, dirPerm); err != nil {
			return written, fmt.Errorf("creating output directory: %w", err)
		}

		if err := os.WriteFile(path, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", path, err)
		}

		written = append(written, path)
	}

	return written, nil
}

// Check compares files against what is on disk and returns the paths that
// are missing or out of date.
func Check(files []GeneratedFile) ([]string, error) {
	var stale []string

	for _, file := range files {
		old, err := os.ReadFile(file.Path())

		switch {
		case errors.Is(err, fs.ErrNotExist):
			stale = append(stale, file.Path())
		case err != nil:
			return nil, fmt.Errorf("reading %s: %w", file.Path(), err)
		case !bytes.Equal(old, file.Content):
			stale = append(stale, file.Path())
		}
	}

	return stale, nil
}

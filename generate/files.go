// Package generate implements subcommands producing stylesheets and
// prerendered documents.
package generate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// createOutput opens destination file, empty name means STDOUT. Existing
// files are replaced only when overwrite is requested.
func createOutput(name string, overwrite bool) (io.WriteCloser, error) {
	if len(name) == 0 {
		return nopCloser{os.Stdout}, nil
	}
	if _, err := os.Stat(name); err == nil {
		if !overwrite {
			return nil, fmt.Errorf("destination '%s' already exists", name)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to check destination '%s': %w", name, err)
	}
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("unable to create destination directory '%s': %w", dir, err)
		}
	}
	out, err := os.Create(name)
	if err != nil {
		return nil, fmt.Errorf("unable to create destination file '%s': %w", name, err)
	}
	return out, nil
}

func displayName(name string) string {
	if len(name) == 0 {
		return "STDOUT"
	}
	return name
}

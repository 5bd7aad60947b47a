// Package download writes exports fetched from the grading service to disk.
package download

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/etis-cli/internal/core/ports/driven"
)

// Ensure DirSaver implements the interface.
var _ driven.FileSaver = (*DirSaver)(nil)

// DirSaver saves payloads into a directory, replacing files of the same name.
type DirSaver struct {
	dir string
}

// NewDirSaver creates a saver for dir. An empty dir means the working directory.
func NewDirSaver(dir string) *DirSaver {
	if dir == "" {
		dir = "."
	}
	return &DirSaver{dir: dir}
}

// Dir returns the target directory.
func (s *DirSaver) Dir() string {
	return s.dir
}

// Save writes data to <dir>/<name> and returns the absolute path.
func (s *DirSaver) Save(name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

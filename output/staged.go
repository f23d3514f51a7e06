package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Staged is an output file fully written next to its target and not yet
// visible under the target name.
type Staged struct {
	Path    string
	tmpPath string
}

func stage(path, pattern string, write func(io.Writer) error) (*Staged, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return nil, fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("close temp file for %s: %w", path, err)
	}
	return &Staged{Path: path, tmpPath: tmpPath}, nil
}

// Commit moves the staged file into place.
func (s *Staged) Commit() error {
	if err := os.Rename(s.tmpPath, s.Path); err != nil {
		_ = os.Remove(s.tmpPath)
		return fmt.Errorf("save %s: %w", s.Path, err)
	}
	return nil
}

// Discard drops the staged file. Safe to call after Commit.
func (s *Staged) Discard() {
	if s == nil {
		return
	}
	_ = os.Remove(s.tmpPath)
}

// Package output writes finished exports to standard output or a file.
package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stdout is the path that selects standard output.
const Stdout = "-"

// Sink is a destination for an encoded export.
type Sink struct {
	// Path is a file path, or Stdout.
	Path string

	// Stdout receives the data when Path is Stdout. Defaults to os.Stdout.
	Stdout io.Writer
}

// String names the destination for logs.
func (s Sink) String() string {
	if s.Path == "" || s.Path == Stdout {
		return "stdout"
	}
	return s.Path
}

// Write writes data in full. A file is written to a temporary file in the
// target directory and renamed into place, so a failed write leaves any
// existing file untouched and no partial file behind.
func (s Sink) Write(ctx context.Context, data []byte) error {
	// Check for context cancellation before starting work
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if s.Path == "" || s.Path == Stdout {
		w := s.Stdout
		if w == nil {
			w = os.Stdout
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	// Check for context cancellation before replacing the target
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := os.Rename(tmpName, s.Path); err != nil {
		return fmt.Errorf("rename output file: %w", err)
	}
	committed = true
	return nil
}

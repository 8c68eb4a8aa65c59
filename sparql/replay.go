package sparql

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// RecordingName returns the file name results for q are recorded under.
func RecordingName(q Query) string {
	return q.Name + ".json"
}

// ReplayExecutor serves previously recorded results from a directory tree.
// A query named "connectivity" is answered from the first file matching
// **/connectivity.json under Dir, in lexical order.
type ReplayExecutor struct {
	Dir string
}

// Execute decodes the recording for q.
func (r *ReplayExecutor) Execute(ctx context.Context, q Query) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, &QueryError{Query: q.Name, Err: err}
	}

	path, err := r.find(q)
	if err != nil {
		return nil, &QueryError{Query: q.Name, Err: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &QueryError{Query: q.Name, Err: fmt.Errorf("read recording: %w", err)}
	}
	rows, err := DecodeResults(bytes.NewReader(data))
	if err != nil {
		return nil, &QueryError{Query: q.Name, Err: fmt.Errorf("%s: %w", path, err)}
	}
	return rows, nil
}

func (r *ReplayExecutor) find(q Query) (string, error) {
	absDir, err := filepath.Abs(r.Dir)
	if err != nil {
		return "", fmt.Errorf("resolve replay dir: %w", err)
	}
	pattern := filepath.Join(absDir, "**", RecordingName(q))
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return "", fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("%w for %s in %s", ErrNoRecording, q.Name, r.Dir)
	}
	sort.Strings(matches)
	return matches[0], nil
}

// RecordingExecutor forwards queries to Next and writes each successful
// result set to Dir so a later run can replay it.
type RecordingExecutor struct {
	Next Executor
	Dir  string
}

// Execute runs q on Next and records the rows.
func (r *RecordingExecutor) Execute(ctx context.Context, q Query) ([]Row, error) {
	rows, err := r.Next.Execute(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create recording dir: %w", err)
	}
	var buf bytes.Buffer
	if err := EncodeResults(&buf, q.Vars, rows); err != nil {
		return nil, err
	}
	path := filepath.Join(r.Dir, RecordingName(q))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("write recording: %w", err)
	}
	return rows, nil
}

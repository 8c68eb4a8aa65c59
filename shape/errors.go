package shape

import (
	"errors"
	"fmt"
)

// ErrMissingBinding is wrapped by every ShapingError.
var ErrMissingBinding = errors.New("missing required binding")

// ShapingError reports a row that lacks a binding its query always projects.
// It points at a broken query, not at incomplete data.
type ShapingError struct {
	Query string
	Field string
}

func (e *ShapingError) Error() string {
	return fmt.Sprintf("%s row: %s: %v", e.Query, e.Field, ErrMissingBinding)
}

func (e *ShapingError) Unwrap() error {
	return ErrMissingBinding
}

// RowError pairs a rejected row's position with the reason it was rejected.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

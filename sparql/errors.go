package sparql

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryFailed is wrapped by every failure to execute a query.
	ErrQueryFailed = errors.New("query failed")

	// ErrNoRecording is returned by ReplayExecutor when no recording matches a query.
	ErrNoRecording = errors.New("no recorded results")
)

// QueryError describes a failed query execution.
type QueryError struct {
	// Query is the name of the query that failed.
	Query string

	// StatusCode is the HTTP status returned by the endpoint, or 0 for transport errors.
	StatusCode int

	// Body holds the start of the endpoint's error response.
	Body string

	// Err is the underlying transport or decoding error, if any.
	Err error
}

func (e *QueryError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("query %s: endpoint returned %d: %s", e.Query, e.StatusCode, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("query %s: %v", e.Query, e.Err)
	default:
		return fmt.Sprintf("query %s: failed", e.Query)
	}
}

// Unwrap exposes both ErrQueryFailed and the underlying cause to errors.Is.
func (e *QueryError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrQueryFailed}
	}
	return []error{ErrQueryFailed, e.Err}
}

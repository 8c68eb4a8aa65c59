package npo

import "errors"

// ErrUnknownPrefix is returned when a CURIE uses a prefix with no registered namespace.
var ErrUnknownPrefix = errors.New("unknown CURIE prefix")

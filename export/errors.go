package export

import "errors"

// ErrSchemaViolation is returned when an assembled document does not satisfy
// its own schema.
var ErrSchemaViolation = errors.New("document violates schema")

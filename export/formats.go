package export

import (
	"encoding/json"
	"fmt"
	"io"
)

// Format identifies an artifact the exporter can produce.
type Format string

const (
	// FormatDocument is the SCKAN JSON document.
	FormatDocument Format = "document"

	// FormatSchema is the standalone JSON Schema of the document.
	FormatSchema Format = "schema"
)

// FormatInfo provides metadata about an export format.
type FormatInfo struct {
	// Name is the format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatDocument: {
		Name:        FormatDocument,
		MIMEType:    "application/json",
		Extension:   ".json",
		Description: "SCKAN JSON - connectivity, metadata, segments, locations and labels",
	},
	FormatSchema: {
		Name:        FormatSchema,
		MIMEType:    "application/schema+json",
		Extension:   ".schema.json",
		Description: "JSON Schema draft 2020-12 of the SCKAN JSON document",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// Encode writes v as JSON followed by a newline. Object keys are sorted. An
// empty indent produces compact output.
func Encode(w io.Writer, v any, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

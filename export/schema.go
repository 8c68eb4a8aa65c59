package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaID is the $id of the generated schema.
const SchemaID = "https://sckan.org/schemas/sckan-export-" + SchemaVersion + ".json"

// Schema reflects the JSON Schema of Document.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		DoNotReference:             true,
		Anonymous:                  true,
		ExpandedStruct:             true,
	}
	s := r.Reflect(&Document{})
	s.ID = jsonschema.ID(SchemaID)
	s.Title = "SCKAN JSON Format"
	s.Description = Description
	return s
}

// SchemaJSON returns the schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

// schemaTree returns the schema as a generic JSON object for embedding.
func schemaTree(s *jsonschema.Schema) (map[string]any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode schema: %w", err)
	}
	return tree, nil
}

// Documentation renders a field guide from s, one line per field in
// declaration order.
func Documentation(s *jsonschema.Schema) string {
	var sb strings.Builder
	sb.WriteString(s.Title)
	sb.WriteString(" version ")
	sb.WriteString(SchemaVersion)
	sb.WriteString("\n")
	if s.Description != "" {
		sb.WriteString(s.Description)
		sb.WriteString("\n")
	}
	sb.WriteString("\nFields (* = always present):\n")
	describeProperties(&sb, "", s)
	sb.WriteString("\nIdentifiers are CURIEs. Look up any id in labels for its display label and synonyms.\n")
	return sb.String()
}

func describeProperties(sb *strings.Builder, path string, s *jsonschema.Schema) {
	if s.Properties == nil {
		return
	}
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		describeField(sb, path+pair.Key, pair.Value, required[pair.Key])
	}
}

func describeField(sb *strings.Builder, path string, s *jsonschema.Schema, required bool) {
	marker := " "
	if required {
		marker = "*"
	}
	fmt.Fprintf(sb, "%s %s (%s)", marker, path, typeName(s))
	if s.Description != "" {
		fmt.Fprintf(sb, ": %s", s.Description)
	}
	if len(s.Enum) > 0 {
		values := make([]string, 0, len(s.Enum))
		for _, v := range s.Enum {
			values = append(values, fmt.Sprint(v))
		}
		fmt.Fprintf(sb, " [%s]", strings.Join(values, "|"))
	}
	sb.WriteString("\n")

	switch {
	case s.Items != nil:
		describeProperties(sb, path+"[].", s.Items)
	case s.Properties != nil:
		describeProperties(sb, path+".", s)
	case s.AdditionalProperties != nil && s.AdditionalProperties.Properties != nil:
		describeProperties(sb, path+"{id}.", s.AdditionalProperties)
	}
}

func typeName(s *jsonschema.Schema) string {
	switch {
	case s.Type == "array" && s.Items != nil:
		return "array of " + typeName(s.Items)
	case s.Type == "object" && s.AdditionalProperties != nil && s.AdditionalProperties.Type != "":
		return "map of " + typeName(s.AdditionalProperties)
	case s.Type == "":
		return "any"
	default:
		return s.Type
	}
}

var (
	compileOnce sync.Once
	compiled    *validator.Schema
	compileErr  error
)

func compiledSchema() (*validator.Schema, error) {
	compileOnce.Do(func() {
		data, err := SchemaJSON()
		if err != nil {
			compileErr = err
			return
		}
		c := validator.NewCompiler()
		c.Draft = validator.Draft2020
		if err := c.AddResource(SchemaID, bytes.NewReader(data)); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(SchemaID)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Validate checks a pruned document tree against the generated schema.
func Validate(tree map[string]any) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := s.Validate(tree); err != nil {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}
	return nil
}

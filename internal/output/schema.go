package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// OutlineSchema describes a result document, including the error form.
const OutlineSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["title", "outline"],
  "additionalProperties": false,
  "properties": {
    "title": {"type": "string"},
    "outline": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["level", "text", "page"],
        "additionalProperties": false,
        "properties": {
          "level": {"enum": ["H1", "H2", "H3"]},
          "text": {"type": "string", "minLength": 1},
          "page": {"type": "integer", "minimum": 1}
        }
      }
    },
    "error": {"type": "string", "minLength": 1}
  },
  "if": {"required": ["error"]},
  "then": {"properties": {"title": {"const": ""}, "outline": {"maxItems": 0}}}
}`

// Schema validates encoded outlines against OutlineSchema.
type Schema struct {
	schema *jsonschema.Schema
}

// CompileSchema compiles OutlineSchema.
func CompileSchema() (*Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("outline.json", strings.NewReader(OutlineSchema)); err != nil {
		return nil, fmt.Errorf("load outline schema: %w", err)
	}
	s, err := compiler.Compile("outline.json")
	if err != nil {
		return nil, fmt.Errorf("compile outline schema: %w", err)
	}
	return &Schema{schema: s}, nil
}

// ValidateJSON checks an encoded outline.
func (s *Schema) ValidateJSON(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode outline for validation: %w", err)
	}
	if err := s.schema.Validate(doc); err != nil {
		return fmt.Errorf("outline does not match schema: %w", err)
	}
	return nil
}

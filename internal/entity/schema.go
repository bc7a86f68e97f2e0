package entity

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// recordSchema is the shape every persisted record must satisfy.
// Validated before each insert so a malformed record never reaches the
// document database.
var recordSchema = map[string]any{
	"type":     "object",
	"required": []any{"fileUrl", "filename", "mediaType", "uploadedAt"},
	"properties": map[string]any{
		"fileUrl":              map[string]any{"type": "string", "minLength": 1},
		"filename":             map[string]any{"type": "string", "minLength": 1},
		"mediaType":            map[string]any{"type": "string"},
		"uploadedAt":           map[string]any{"type": "string", "minLength": 1},
		"extractedTextSummary": map[string]any{"type": "string", "maxLength": 600},
		"extractionError":      map[string]any{"type": "string"},
	},
	"additionalProperties": false,
}

// ValidateRecord checks a record against the persisted-record schema.
func ValidateRecord(rec QuotationRecord) error {
	rec.ID = ""
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	return validateJSONAgainstSchema(recordSchema, data)
}

// validateJSONAgainstSchema validates "data" against "schemaMap".
func validateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

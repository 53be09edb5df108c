package registry

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildCatalogueJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map, describing the nutrient catalogue override file format. It is
// compiled locally to validate operator-supplied catalogues before they reach
// the registry constructor.
func BuildCatalogueJSONSchema() map[string]any {
	rangeProp := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"low":  map[string]any{"type": "number"},
			"high": map[string]any{"type": "number"},
		},
		"required": []string{"low", "high"},
	}
	nutrientProp := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"key":       map[string]any{"type": "string", "minLength": 1, "pattern": `^[a-z0-9_]+$`},
			"unit":      map[string]any{"type": "string", "minLength": 1},
			"normal":    rangeProp,
			"plausible": rangeProp,
			"aliases": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
		},
		"required": []string{"key", "unit", "normal", "plausible"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"replace":   map[string]any{"type": "boolean"},
			"nutrients": map[string]any{"type": "array", "items": nutrientProp, "minItems": 1},
		},
		"required": []string{"nutrients"},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
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
		return fmt.Errorf("catalogue does not match schema: %w", err)
	}
	return nil
}

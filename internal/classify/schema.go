package classify

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/ufpr-cpa/inep-extractor/internal/common"
)

// BuildResultJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. We pass it to the model as a structured output constraint and
// also use it locally to validate what came back.
func BuildResultJSONSchema(categories []string) map[string]any {
	categoria := map[string]any{"type": "string", "minLength": 1}
	if len(categories) > 0 {
		categoria = map[string]any{"type": "string", "enum": categories}
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"categoria": categoria,
			"tags": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string", "minLength": 1},
				"maxItems": 8,
			},
			"pontos_negativos": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "minLength": 1},
			},
		},
		"required": []string{"categoria", "tags", "pontos_negativos"},
	}
}

// ValidateAgainstSchema checks the raw JSON document against the schema map.
// A failure maps to the validation-rejected sentinel so callers can decide to
// keep the row unclassified instead of failing the batch.
func ValidateAgainstSchema(schemaMap map[string]any, doc []byte) error {
	schemaBytes, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("result.json", bytes.NewReader(schemaBytes)); err != nil {
		return fmt.Errorf("add schema resource: %w", err)
	}
	schema, err := compiler.Compile("result.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var instance any
	if err := json.Unmarshal(doc, &instance); err != nil {
		return common.WrapError(common.ErrValidationRejected, err.Error())
	}
	if err := schema.Validate(instance); err != nil {
		return common.WrapError(common.ErrValidationRejected, err.Error())
	}
	return nil
}

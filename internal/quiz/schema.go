package quiz

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema describes the shape of a question bank document. Cross-field
// rules (answer among options, per-level counts) are checked in validateBank.
var bankSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"level": map[string]any{
				"type":    "integer",
				"minimum": 1,
				"maximum": TotalLevels,
			},
			"question": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"options": map[string]any{
				"type":        "array",
				"minItems":    2,
				"uniqueItems": true,
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
			},
			"answer": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"explanation": map[string]any{
				"type": "string",
			},
		},
		"required":             []any{"level", "question", "options", "answer", "explanation"},
		"additionalProperties": false,
	},
}

const bankSchemaURL = "schema://question-bank.json"

var compileBankSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	// The compiler wants a decoded JSON value, not a Go map literal with
	// typed slices, so round-trip through encoding/json.
	raw, err := json.Marshal(bankSchema)
	if err != nil {
		return nil, fmt.Errorf("marshal bank schema: %w", err)
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse bank schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(bankSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(bankSchemaURL)
})

// validateShape checks raw JSON against the bank schema.
func validateShape(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := compileBankSchema()
	if err != nil {
		return fmt.Errorf("compile bank schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

package ai

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// requirementsSchema is the contract the model output must satisfy before it
// is trusted over the deterministic analyzer.
const requirementsSchema = `{
  "type": "object",
  "required": ["requiredSkills", "preferredSkills", "jobLevel", "industry"],
  "properties": {
    "requiredSkills": {"type": "array", "items": {"type": "string"}},
    "preferredSkills": {"type": "array", "items": {"type": "string"}},
    "jobLevel": {"type": "string", "enum": ["entry", "mid", "senior"]},
    "industry": {"type": "string"},
    "responsibilities": {"type": "array", "items": {"type": "string"}},
    "qualifications": {"type": "array", "items": {"type": "string"}}
  },
  "additionalProperties": false
}`

var schemaLoader = gojsonschema.NewStringLoader(requirementsSchema)

// validateRequirements checks raw model output against requirementsSchema.
func validateRequirements(raw json.RawMessage) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if !result.Valid() {
		if errs := result.Errors(); len(errs) > 0 {
			return fmt.Errorf("model output violates schema: %s", errs[0].String())
		}
		return fmt.Errorf("model output violates schema")
	}
	return nil
}

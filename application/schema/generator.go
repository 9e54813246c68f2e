// Package schema provides JSON schema generation for episodes, observations and
// configuration records.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// GenerateSchema creates a JSON schema (Draft 2020-12) from a Go value.
// Nested types are inlined rather than referenced through $defs, and no $id is
// emitted, so the document can be compiled standalone under any resource name.
// Unknown properties are allowed: dataset files carry extra keys.
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
		Anonymous:      true,

		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

package regen

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// OutcomeSchema returns the JSON schema of the Outcome record, for
// hosts that validate or document the pipeline's output format.
func OutcomeSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{DoNotReference: false}
	schema := reflector.Reflect(&Outcome{})
	return json.MarshalIndent(schema, "", "  ")
}

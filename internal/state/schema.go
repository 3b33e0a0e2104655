package state

import (
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema is the minimum shape a usable state file must have: an
// object with non-empty credentials. Other keys are decoded leniently by
// AgentState.UnmarshalJSON and preserved when unknown.
const documentSchema = `{
  "type": "object",
  "required": ["agentId", "apiKey"],
  "properties": {
    "agentId": {"type": "string", "minLength": 1},
    "apiKey":  {"type": "string", "minLength": 1}
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	})
	return schema, schemaErr
}

// validateDocument checks raw state file bytes against documentSchema.
func validateDocument(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile state schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("parse state file: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("invalid state file: %s", strings.Join(msgs, "; "))
	}
	return nil
}

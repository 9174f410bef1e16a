// Package schema holds the extraction contract: the JSON Schema the vision
// model's structured output must satisfy before a page result is accepted.
package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var schemaFS embed.FS

// TranscriptSchemaName is the embedded schema for one transcript page.
const TranscriptSchemaName = "transcript"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Raw returns the embedded transcript page schema document. This is what
// gets sent to the model as the response format and embedded in the prompt.
func Raw() (json.RawMessage, error) {
	data, err := schemaFS.ReadFile(fmt.Sprintf("schemas/%s.schema.json", TranscriptSchemaName))
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded schema: %w", err)
	}
	return data, nil
}

// compile compiles the embedded schema once.
func compile() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := Raw()
		if err != nil {
			compileErr = err
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("transcript.schema.json", bytes.NewReader(raw)); err != nil {
			compileErr = fmt.Errorf("failed to load transcript schema: %w", err)
			return
		}
		compiled, compileErr = compiler.Compile("transcript.schema.json")
	})
	return compiled, compileErr
}

// Validate checks a model output document against the transcript page
// schema. The input must be raw JSON (already stripped of code fences).
func Validate(raw json.RawMessage) error {
	s, err := compile()
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("failed to decode extraction for validation: %w", err)
	}

	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("extraction does not match transcript schema: %w", err)
	}
	return nil
}

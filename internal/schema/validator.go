// Package schema validates tool arguments against the JSON-schema input
// descriptors published in the tool catalog.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// maxReportedErrors caps how many violations end up in an error message.
const maxReportedErrors = 3

// ValidationError lists the schema violations found in a set of arguments.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid arguments: " + dumpErrors(e.Errors)
}

// Validator checks argument types against input schemas. Compiled schemas
// are cached, so a Validator should be reused across calls.
//
// Only the shape of supplied arguments is checked. "required" and
// "additionalProperties" are advisory: missing arguments fall back to the
// operation's defaults and unknown ones are ignored downstream.
type Validator struct {
	cache sync.Map // map[string]*gojsonschema.Schema
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks args against schemaData, which may be a json.RawMessage,
// a JSON string or any value that marshals to a JSON schema object.
func (v *Validator) Validate(schemaData any, args map[string]any) error {
	schema, err := v.compile(schemaData)
	if err != nil {
		return fmt.Errorf("invalid schema definition: %w", err)
	}

	if args == nil {
		args = map[string]any{}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(args))
	if err != nil {
		return fmt.Errorf("validation execution failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return &ValidationError{Errors: errs}
}

func (v *Validator) compile(schemaData any) (*gojsonschema.Schema, error) {
	raw, err := toJSON(schemaData)
	if err != nil {
		return nil, err
	}
	key := string(raw)

	if val, ok := v.cache.Load(key); ok {
		return val.(*gojsonschema.Schema), nil
	}

	relaxed, err := relax(raw)
	if err != nil {
		return nil, err
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(relaxed))
	if err != nil {
		return nil, err
	}

	v.cache.Store(key, schema)
	return schema, nil
}

func toJSON(schemaData any) ([]byte, error) {
	switch s := schemaData.(type) {
	case json.RawMessage:
		return s, nil
	case []byte:
		return s, nil
	case string:
		return []byte(s), nil
	default:
		return json.Marshal(schemaData)
	}
}

// relax drops the top-level keywords that are advertised but not enforced.
func relax(raw []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	delete(m, "required")
	delete(m, "additionalProperties")
	return m, nil
}

func dumpErrors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	truncated := ""
	if len(errs) > maxReportedErrors {
		truncated = fmt.Sprintf("; and %d more", len(errs)-maxReportedErrors)
		errs = errs[:maxReportedErrors]
	}
	return strings.Join(errs, "; ") + truncated
}

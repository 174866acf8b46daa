// Package jsonschema validates model output against JSON Schemas.
package jsonschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/sangga"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed property.schema.json
var propertySchema []byte

const propertySchemaURL = "property.schema.json"

var _ sangga.PropertyValidator = (*Validator)(nil)

// Validator checks raw listings against the property schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the embedded property schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(propertySchemaURL, bytes.NewReader(propertySchema)); err != nil {
		return nil, fmt.Errorf("failed to add property schema: %w", err)
	}
	schema, err := compiler.Compile(propertySchemaURL)
	if err != nil {
		return nil, fmt.Errorf("failed to compile property schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// ValidateProperty returns EINVALID if raw is not a JSON object matching
// the property schema.
func (v *Validator) ValidateProperty(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return sangga.Errorf(sangga.EINVALID, "property is not valid JSON: %v", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return sangga.Errorf(sangga.EINVALID, "property does not match schema: %v", err)
	}
	return nil
}

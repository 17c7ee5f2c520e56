package config

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var (
	compiledSchema *gojsonschema.Schema
	compileErr     error
	compileOnce    sync.Once
)

// Returns the compiled configuration schema, compiling it on first use.
func getSchema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		loader := gojsonschema.NewBytesLoader(schemaJSON)
		compiledSchema, compileErr = gojsonschema.NewSchema(loader)
	})
	return compiledSchema, compileErr
}

// Validates a decoded YAML document against the configuration schema.
//
// A nil document (an empty file) is valid: all sections are optional.
func validate(doc any) error {
	if doc == nil {
		return nil
	}

	schema, err := getSchema()
	if err != nil {
		return fmt.Errorf("%w: compiling schema: %v", ErrConfig, err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfig, err)
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return fmt.Errorf("%w: %s", ErrConfig, strings.Join(problems, "; "))
	}

	return nil
}

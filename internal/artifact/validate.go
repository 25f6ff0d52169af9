package artifact

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schemas/*.schema.json
var schemasFS embed.FS

// schemaFiles maps artifact prefixes to their embedded schema documents.
var schemaFiles = map[string]string{
	InstallationPrefix: "schemas/installation.schema.json",
	ReproPrefix:        "schemas/reproducibility.schema.json",
	DXPrefix:           "schemas/dx.schema.json",
}

var (
	validators  map[string]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiled := make(map[string]*jsonschema.Schema, len(schemaFiles))

		for prefix, file := range schemaFiles {
			data, err := schemasFS.ReadFile(file)
			if err != nil {
				compileErr = fmt.Errorf("read %s schema: %w", prefix, err)
				return
			}

			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshal %s schema: %w", prefix, err)
				return
			}

			if err := compiler.AddResource(file, doc); err != nil {
				compileErr = fmt.Errorf("add %s schema resource: %w", prefix, err)
				return
			}

			compiled[prefix], err = compiler.Compile(file)
			if err != nil {
				compileErr = fmt.Errorf("compile %s schema: %w", prefix, err)
				return
			}
		}

		validators = compiled
	})

	return compileErr
}

// validateArtifact validates JSON data against the schema for a prefix.
// Malformed or foreign files are rejected before unmarshalling so a stray
// file in the raw directory cannot poison downstream scoring.
func validateArtifact(prefix string, data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := validators[prefix].Validate(v); err != nil {
		return fmt.Errorf("%s validation failed: %w", prefix, err)
	}

	return nil
}

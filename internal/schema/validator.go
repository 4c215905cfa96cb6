package schema

import (
	"fmt"

	"github.com/fulmenhq/svdregress/internal/assets"
	"github.com/xeipuuv/gojsonschema"
)

// CatalogSchema is the registry name of the test case catalog schema.
const CatalogSchema = "test-cases-v1.0.0"

// ValidationError represents a single validation error.
type ValidationError struct {
	Path     string `json:"path,omitempty"`     // Dotted path into the document (e.g., "3.group")
	Property string `json:"property,omitempty"` // Offending property when the schema reports one (required, additionalProperties)
	Message  string `json:"message"`
}

// Result holds the validation result.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// registry holds pre-compiled schemas for known schema names.
var registry = make(map[string]*gojsonschema.Schema)

func init() {
	known := map[string]string{
		CatalogSchema: assets.CatalogSchemaPath,
	}
	for name, path := range known {
		schemaBytes, ok := assets.GetSchema(path)
		if !ok || len(schemaBytes) == 0 {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaBytes))
		if err != nil {
			// Skip on error; Validate reports the schema as missing
			continue
		}
		registry[name] = schema
	}
}

// Validate validates data (interface{}) against the named schema.
func Validate(data interface{}, schemaName string) (*Result, error) {
	schema, ok := registry[schemaName]
	if !ok {
		return nil, fmt.Errorf("schema %s not found in registry", schemaName)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(data))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	res := &Result{Valid: result.Valid()}
	if !result.Valid() {
		for _, verr := range result.Errors() {
			field := verr.Field()
			if field == "" || field == "(root)" {
				field = "root"
			}
			var property string
			if p, ok := verr.Details()["property"].(string); ok {
				property = p
			}
			res.Errors = append(res.Errors, ValidationError{
				Path:     field,
				Property: property,
				Message:  verr.Description(),
			})
		}
	}

	return res, nil
}

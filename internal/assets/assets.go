// Package assets embeds the catalog schema and the starter catalog.
package assets

import (
	"embed"
	"io/fs"
)

//go:embed embedded_schemas
var Schemas embed.FS

//go:embed embedded_templates
var Templates embed.FS

// CatalogSchemaPath is the embedded path of the current catalog schema.
const CatalogSchemaPath = "embedded_schemas/catalog/test-cases-v1.0.0.json"

// StarterCatalogPath is the embedded path of the starter catalog written by `svdregress init`.
const StarterCatalogPath = "embedded_templates/" + starterCatalogFile

const starterCatalogFile = "catalog/tests.yml"

// GetSchema returns the embedded schema bytes by path relative to the embed root.
func GetSchema(relPath string) ([]byte, bool) {
	data, err := Schemas.ReadFile(relPath)
	return data, err == nil
}

// GetTemplatesFS returns the embedded templates rooted at embedded_templates.
func GetTemplatesFS() fs.FS {
	if sub, err := fs.Sub(Templates, "embedded_templates"); err == nil {
		return sub
	}
	return Templates
}

// StarterCatalog returns the starter catalog YAML.
func StarterCatalog() ([]byte, error) {
	return fs.ReadFile(GetTemplatesFS(), starterCatalogFile)
}

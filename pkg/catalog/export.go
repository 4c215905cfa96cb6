package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names a catalog serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat resolves a format from a name ("json", "yaml", "yml", "toml")
// or from a file path's suffix.
func ParseFormat(s string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if ext := filepath.Ext(key); ext != "" {
		key = strings.TrimPrefix(ext, ".")
	}
	switch key {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported format %q (expected json, yaml or toml)", s)
	}
}

// tomlDocument wraps the list; TOML has no top-level arrays.
type tomlDocument struct {
	Tests []TestCase `toml:"tests"`
}

// Encode writes cases in the given format. Optional fields that are unset
// are omitted rather than written as null.
func Encode(w io.Writer, cases []TestCase, format Format) error {
	if cases == nil {
		cases = []TestCase{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cases)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cases); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(tomlDocument{Tests: cases})
	default:
		return fmt.Errorf("unsupported format %q", string(format))
	}
}

// DecodeTOML reads a TOML document written by Encode.
func DecodeTOML(data []byte) ([]TestCase, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Tests, nil
}

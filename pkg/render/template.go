package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aymerick/raymond"
)

// Template is a compiled Handlebars template.
type Template struct {
	tpl *raymond.Template
}

// Compile parses a Handlebars source and registers the render helpers.
func Compile(source string) (*Template, error) {
	tpl, err := raymond.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	tpl.RegisterHelpers(map[string]interface{}{
		"join": func(items interface{}, sep string) string {
			var parts []string
			switch v := items.(type) {
			case []string:
				parts = v
			case []interface{}:
				for _, item := range v {
					parts = append(parts, raymond.Str(item))
				}
			default:
				return raymond.Str(items)
			}
			return strings.Join(parts, sep)
		},
		"default": func(value interface{}, fallback string) string {
			s := raymond.Str(value)
			if s == "" {
				return fallback
			}
			return s
		},
	})
	return &Template{tpl: tpl}, nil
}

// CompileFile reads and compiles a template file.
func CompileFile(path string) (*Template, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- user-selected template
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return Compile(string(data))
}

// Render executes the template against data.
func (t *Template) Render(data interface{}) (string, error) {
	out, err := t.tpl.Exec(data)
	if err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return out, nil
}

package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/fulmenhq/svdregress/internal/schema"
	"github.com/fulmenhq/svdregress/pkg/logger"
	"gopkg.in/yaml.v3"
)

// Catalog loads a test case list once and serves the cached list afterwards.
// Construct one per process and pass it to whatever needs the test cases.
type Catalog struct {
	mu     sync.Mutex
	loaded bool
	source string
	cases  []TestCase
}

// New returns an empty catalog. Nothing is read until the first Load.
func New() *Catalog {
	return &Catalog{}
}

// Load returns the test cases, reading path on the first successful call.
// Once loaded, the cached list is returned and path is ignored. A failed
// load caches nothing. The returned slice is shared and must not be modified.
func (c *Catalog) Load(path string) ([]TestCase, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		if path != "" && path != c.source {
			logger.Debug("Catalog already loaded; ignoring path",
				logger.String("loaded", c.source), logger.String("requested", path))
		}
		return c.cases, nil
	}
	if path == "" {
		return nil, ErrNoSource
	}

	cases, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	c.cases = cases
	c.source = path
	c.loaded = true
	logger.Debug("Loaded test case catalog", logger.String("path", path), logger.Int("cases", len(cases)))
	return c.cases, nil
}

// Loaded reports whether a catalog has been loaded.
func (c *Catalog) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Source returns the path the catalog was loaded from, or "" before the first load.
func (c *Catalog) Source() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.source
}

// ReadFile reads and parses a catalog file without caching.
func ReadFile(path string) ([]TestCase, error) {
	clean := filepath.Clean(path)
	// #nosec G304 -- catalog path is supplied by the operator
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, &FileAccessError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes catalog content. The format is chosen by the suffix of name:
// .yml and .yaml are YAML, .json is JSON, anything else is rejected.
func Parse(name string, data []byte) ([]TestCase, error) {
	format, err := formatForPath(name)
	if err != nil {
		return nil, &ParseError{Path: name, Index: -1, Err: fmt.Errorf("%w for %s", err, name)}
	}

	var doc interface{}
	switch format {
	case FormatYAML:
		err = unmarshalYAML(data, &doc)
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, &ParseError{Path: name, Index: -1, Err: err}
	}
	if err := validateDocument(name, doc); err != nil {
		return nil, err
	}

	cases, err := decode(format, data)
	if err != nil {
		return nil, &ParseError{Path: name, Index: -1, Err: err}
	}

	for i, tc := range cases {
		if tc.SVDURL != "" {
			continue
		}
		if _, ok := tc.Vendor(); !ok {
			return nil, &ParseError{
				Path:  name,
				Index: i,
				Field: "group",
				Err:   fmt.Errorf("group %s has no vendor in the CMSIS SVD repo; set svd_url", tc.Group),
			}
		}
	}

	if cases == nil {
		cases = []TestCase{}
	}
	return cases, nil
}

func formatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", ErrUnknownExtension
	}
}

func decode(format Format, data []byte) ([]TestCase, error) {
	var cases []TestCase
	switch format {
	case FormatYAML:
		if err := unmarshalYAML(data, &cases); err != nil {
			return nil, err
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cases); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %s", format)
	}
	return cases, nil
}

// unmarshalYAML decodes data into v and rejects any document after the first.
func unmarshalYAML(data []byte, v interface{}) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	var next yaml.Node
	switch err := dec.Decode(&next); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return ErrMultipleDocuments
	}
}

// validateDocument checks the generic document against the catalog schema and
// reports the first violation's record and field, with every violation joined.
func validateDocument(name string, doc interface{}) error {
	res, err := schema.Validate(doc, schema.CatalogSchema)
	if err != nil {
		return &ParseError{Path: name, Index: -1, Err: err}
	}
	if res.Valid {
		return nil
	}

	details := make([]error, 0, len(res.Errors))
	for _, e := range res.Errors {
		details = append(details, fmt.Errorf("%s: %s", e.Path, e.Message))
	}
	index, field := locate(res.Errors[0])
	return &ParseError{Path: name, Index: index, Field: field, Err: errors.Join(details...)}
}

// locate splits a schema error path like "3.group" into record index and field.
func locate(e schema.ValidationError) (int, string) {
	parts := strings.Split(e.Path, ".")
	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return -1, e.Property
	}
	field := strings.Join(parts[1:], ".")
	if e.Property != "" {
		if field != "" {
			field += "."
		}
		field += e.Property
	}
	return index, field
}

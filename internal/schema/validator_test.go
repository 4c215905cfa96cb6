package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fulmenhq/svdregress/internal/assets"
	"github.com/fulmenhq/svdregress/pkg/taxonomy"
	"gopkg.in/yaml.v3"
)

func decodeYAML(t *testing.T, src string) interface{} {
	t.Helper()
	var doc interface{}
	if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestValidate(t *testing.T) {
	valid := decodeYAML(t, `
- arch: cortex-m
  group: Nordic
  chip: nrf52
- arch: riscv
  group: Unknown
  chip: e310x
  svd_url: https://example.com/e310x.svd
  opts: [--atomics]
  should_pass: false
  skip_check: true
  run_when: not-short
`)
	res, err := Validate(valid, CatalogSchema)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Valid {
		t.Errorf("expected valid catalog, got errors: %v", res.Errors)
	}

	// Non-existent schema
	_, err = Validate(valid, "nonexistent")
	if err == nil || !strings.Contains(err.Error(), "not found in registry") {
		t.Errorf("expected schema not found error, got %v", err)
	}
}

func TestValidate_Violations(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		path     string
		property string
	}{
		{
			name:     "missing chip",
			doc:      "- arch: cortex-m\n  group: Nordic\n",
			path:     "0",
			property: "chip",
		},
		{
			name:     "unknown field",
			doc:      "- arch: cortex-m\n  group: Nordic\n  chip: nrf52\n  mfgr: Nordic\n",
			path:     "0",
			property: "mfgr",
		},
		{
			name: "bad group",
			doc:  "- arch: cortex-m\n  group: Nordic\n  chip: a\n- arch: cortex-m\n  group: Acme\n  chip: b\n",
			path: "1.group",
		},
		{
			name: "null suffix",
			doc:  "- arch: cortex-m\n  group: Nordic\n  chip: nrf52\n  suffix: null\n",
			path: "0.suffix",
		},
		{
			name: "bad run_when",
			doc:  "- arch: cortex-m\n  group: Nordic\n  chip: nrf52\n  run_when: sometimes\n",
			path: "0.run_when",
		},
		{
			name: "not a list",
			doc:  "arch: cortex-m\n",
			path: "root",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Validate(decodeYAML(t, tt.doc), CatalogSchema)
			if err != nil {
				t.Fatal(err)
			}
			if res.Valid {
				t.Fatal("expected invalid catalog")
			}
			found := false
			for _, e := range res.Errors {
				if e.Path == tt.path && (tt.property == "" || e.Property == tt.property) {
					found = true
				}
			}
			if !found {
				t.Errorf("expected error at %q (property %q), got %+v", tt.path, tt.property, res.Errors)
			}
		})
	}
}

// The schema enumerates groups by hand; keep it in lockstep with the taxonomy.
func TestCatalogSchema_GroupEnumMatchesTaxonomy(t *testing.T) {
	raw, ok := assets.GetSchema(assets.CatalogSchemaPath)
	if !ok {
		t.Fatal("catalog schema not embedded")
	}
	var doc struct {
		Definitions struct {
			TestCase struct {
				Properties struct {
					Group struct {
						Enum []string `json:"enum"`
					} `json:"group"`
				} `json:"properties"`
			} `json:"testCase"`
		} `json:"definitions"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	enum := doc.Definitions.TestCase.Properties.Group.Enum
	groups := taxonomy.AllGroups()
	if len(enum) != len(groups) {
		t.Fatalf("schema lists %d groups, taxonomy declares %d", len(enum), len(groups))
	}
	for i, g := range groups {
		if enum[i] != g.String() {
			t.Errorf("enum[%d] = %s, want %s", i, enum[i], g)
		}
	}
}

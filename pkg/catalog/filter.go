package catalog

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fulmenhq/svdregress/pkg/taxonomy"
)

// Filter selects test cases. Empty criteria match everything. Within one
// criterion any value may match; across criteria all must match.
type Filter struct {
	// Chips are glob patterns matched against the chip identifier.
	Chips []string
	// Names are glob patterns matched against TestCase.Name.
	Names   []string
	Groups  []string
	Vendors []string
	Arches  []string
	// Short selects short mode for the run decision. Cases for which
	// TestCase.ShouldRun(Short) is false are dropped, including never cases.
	Short bool
	// IncludeSkipped disables the run decision so every case is considered.
	IncludeSkipped bool
}

// Validate checks glob syntax and that group, vendor and arch names exist.
func (f Filter) Validate() error {
	for _, p := range append(append([]string{}, f.Chips...), f.Names...) {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid pattern %q", p)
		}
	}
	for _, g := range f.Groups {
		if _, err := taxonomy.ParseGroup(g); err != nil {
			return err
		}
	}
	for _, v := range f.Vendors {
		if _, err := taxonomy.ParseVendor(v); err != nil {
			return err
		}
	}
	for _, a := range f.Arches {
		if _, err := ParseArch(a); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns the matching cases in catalog order.
func (f Filter) Apply(cases []TestCase) []TestCase {
	out := make([]TestCase, 0, len(cases))
	for _, tc := range cases {
		if f.Match(tc) {
			out = append(out, tc)
		}
	}
	return out
}

// Match reports whether tc satisfies every criterion.
func (f Filter) Match(tc TestCase) bool {
	if !f.IncludeSkipped && !tc.ShouldRun(f.Short) {
		return false
	}
	if len(f.Chips) > 0 && !matchAnyGlob(f.Chips, tc.Chip) {
		return false
	}
	if len(f.Names) > 0 && !matchAnyGlob(f.Names, tc.Name()) {
		return false
	}
	if len(f.Groups) > 0 && !matchAnyFold(f.Groups, tc.Group.String()) {
		return false
	}
	if len(f.Vendors) > 0 {
		v, ok := tc.Vendor()
		if !ok || !matchAnyFold(f.Vendors, v.String()) {
			return false
		}
	}
	if len(f.Arches) > 0 && !matchAnyFold(f.Arches, tc.Arch.String()) {
		return false
	}
	return true
}

func matchAnyGlob(patterns []string, s string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, s); err == nil && ok {
			return true
		}
	}
	return false
}

func matchAnyFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

package taxonomy

import (
	"fmt"
	"strings"
)

// ParseVendor resolves a vendor by its symbolic name. Matching ignores case.
func ParseVendor(s string) (Vendor, error) {
	for _, v := range vendors {
		if strings.EqualFold(string(v), s) {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown vendor %q", s)
}

// ParseGroup resolves a group by its symbolic name. Matching ignores case.
func ParseGroup(s string) (Group, error) {
	for _, g := range groups {
		if strings.EqualFold(string(g), s) {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown group %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Vendor) MarshalText() ([]byte, error) {
	if _, ok := VendorSet()[v]; !ok {
		return nil, fmt.Errorf("unknown vendor %q", string(v))
	}
	return []byte(v), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names must match exactly.
func (v *Vendor) UnmarshalText(text []byte) error {
	s := string(text)
	if _, ok := VendorSet()[Vendor(s)]; !ok {
		return fmt.Errorf("unknown vendor %q", s)
	}
	*v = Vendor(s)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (g Group) MarshalText() ([]byte, error) {
	if _, ok := GroupSet()[g]; !ok {
		return nil, fmt.Errorf("unknown group %q", string(g))
	}
	return []byte(g), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names must match exactly.
func (g *Group) UnmarshalText(text []byte) error {
	s := string(text)
	if _, ok := GroupSet()[Group(s)]; !ok {
		return fmt.Errorf("unknown group %q", s)
	}
	*g = Group(s)
	return nil
}

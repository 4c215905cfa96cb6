// Package taxonomy defines the closed set of silicon vendors and the finer
// chip-family groups used to classify regression test cases.
//
// The CMSIS SVD data repository is organized by Vendor, so every Group has to
// resolve to exactly one Vendor before a download URL can be built.
package taxonomy

import (
	"fmt"
	"sort"
)

// Vendor identifies a silicon manufacturer. The value is the folder name used
// by the CMSIS SVD data repository.
type Vendor string

const (
	VendorAtmel            Vendor = "Atmel"
	VendorFreescale        Vendor = "Freescale"
	VendorFujitsu          Vendor = "Fujitsu"
	VendorHoltek           Vendor = "Holtek"
	VendorMicrochip        Vendor = "Microchip"
	VendorNordic           Vendor = "Nordic"
	VendorNuvoton          Vendor = "Nuvoton"
	VendorNXP              Vendor = "NXP"
	VendorSiliconLabs      Vendor = "SiliconLabs"
	VendorSpansion         Vendor = "Spansion"
	VendorSTMicro          Vendor = "STMicro"
	VendorToshiba          Vendor = "Toshiba"
	VendorSiFive           Vendor = "SiFive"
	VendorTexasInstruments Vendor = "TexasInstruments"
	VendorEspressif        Vendor = "Espressif"
	VendorUnknown          Vendor = "Unknown"
)

// Group refines Vendor by chip family. Several groups may share a vendor.
type Group string

const (
	GroupAtmel            Group = "Atmel"
	GroupFreescale        Group = "Freescale"
	GroupFujitsu          Group = "Fujitsu"
	GroupFujitsuMB9AF1    Group = "FujitsuMB9AF1"
	GroupFujitsuMB9AF3    Group = "FujitsuMB9AF3"
	GroupFujitsuMB9AF4    Group = "FujitsuMB9AF4"
	GroupFujitsuMB9AFA    Group = "FujitsuMB9AFA"
	GroupFujitsuMB9AFB    Group = "FujitsuMB9AFB"
	GroupFujitsuMB9B      Group = "FujitsuMB9B"
	GroupFujitsuMB9BF1    Group = "FujitsuMB9BF1"
	GroupFujitsuMB9BF2    Group = "FujitsuMB9BF2"
	GroupFujitsuMB9BF3    Group = "FujitsuMB9BF3"
	GroupFujitsuMB9BF4    Group = "FujitsuMB9BF4"
	GroupFujitsuMB9BF5    Group = "FujitsuMB9BF5"
	GroupFujitsuMB9BF6    Group = "FujitsuMB9BF6"
	GroupFujitsuMB9BFD    Group = "FujitsuMB9BFD"
	GroupHoltek           Group = "Holtek"
	GroupMicrochip        Group = "Microchip"
	GroupNordic           Group = "Nordic"
	GroupNuvoton          Group = "Nuvoton"
	GroupNXP              Group = "NXP"
	GroupSiliconLabs      Group = "SiliconLabs"
	GroupSpansion         Group = "Spansion"
	GroupSTMicroF0        Group = "STMicroF0"
	GroupSTMicroF1        Group = "STMicroF1"
	GroupSTMicroF2        Group = "STMicroF2"
	GroupSTMicroF3        Group = "STMicroF3"
	GroupSTMicroF4        Group = "STMicroF4"
	GroupSTMicro          Group = "STMicro"
	GroupToshiba          Group = "Toshiba"
	GroupSiFive           Group = "SiFive"
	GroupTexasInstruments Group = "TexasInstruments"
	GroupEspressif        Group = "Espressif"
	GroupUnknown          Group = "Unknown"
)

var vendors = []Vendor{
	VendorAtmel,
	VendorFreescale,
	VendorFujitsu,
	VendorHoltek,
	VendorMicrochip,
	VendorNordic,
	VendorNuvoton,
	VendorNXP,
	VendorSiliconLabs,
	VendorSpansion,
	VendorSTMicro,
	VendorToshiba,
	VendorSiFive,
	VendorTexasInstruments,
	VendorEspressif,
	VendorUnknown,
}

var groups = []Group{
	GroupAtmel,
	GroupFreescale,
	GroupFujitsu,
	GroupFujitsuMB9AF1,
	GroupFujitsuMB9AF3,
	GroupFujitsuMB9AF4,
	GroupFujitsuMB9AFA,
	GroupFujitsuMB9AFB,
	GroupFujitsuMB9B,
	GroupFujitsuMB9BF1,
	GroupFujitsuMB9BF2,
	GroupFujitsuMB9BF3,
	GroupFujitsuMB9BF4,
	GroupFujitsuMB9BF5,
	GroupFujitsuMB9BF6,
	GroupFujitsuMB9BFD,
	GroupHoltek,
	GroupMicrochip,
	GroupNordic,
	GroupNuvoton,
	GroupNXP,
	GroupSiliconLabs,
	GroupSpansion,
	GroupSTMicroF0,
	GroupSTMicroF1,
	GroupSTMicroF2,
	GroupSTMicroF3,
	GroupSTMicroF4,
	GroupSTMicro,
	GroupToshiba,
	GroupSiFive,
	GroupTexasInstruments,
	GroupEspressif,
	GroupUnknown,
}

// groupVendors must cover every group except GroupUnknown.
var groupVendors = map[Group]Vendor{
	GroupAtmel:            VendorAtmel,
	GroupFreescale:        VendorFreescale,
	GroupFujitsu:          VendorFujitsu,
	GroupFujitsuMB9AF1:    VendorFujitsu,
	GroupFujitsuMB9AF3:    VendorFujitsu,
	GroupFujitsuMB9AF4:    VendorFujitsu,
	GroupFujitsuMB9AFA:    VendorFujitsu,
	GroupFujitsuMB9AFB:    VendorFujitsu,
	GroupFujitsuMB9B:      VendorFujitsu,
	GroupFujitsuMB9BF1:    VendorFujitsu,
	GroupFujitsuMB9BF2:    VendorFujitsu,
	GroupFujitsuMB9BF3:    VendorFujitsu,
	GroupFujitsuMB9BF4:    VendorFujitsu,
	GroupFujitsuMB9BF5:    VendorFujitsu,
	GroupFujitsuMB9BF6:    VendorFujitsu,
	GroupFujitsuMB9BFD:    VendorFujitsu,
	GroupHoltek:           VendorHoltek,
	GroupMicrochip:        VendorMicrochip,
	GroupNordic:           VendorNordic,
	GroupNuvoton:          VendorNuvoton,
	GroupNXP:              VendorNXP,
	GroupSiliconLabs:      VendorSiliconLabs,
	GroupSpansion:         VendorSpansion,
	GroupSTMicroF0:        VendorSTMicro,
	GroupSTMicroF1:        VendorSTMicro,
	GroupSTMicroF2:        VendorSTMicro,
	GroupSTMicroF3:        VendorSTMicro,
	GroupSTMicroF4:        VendorSTMicro,
	GroupSTMicro:          VendorSTMicro,
	GroupToshiba:          VendorToshiba,
	// SiFive files live under SiFive/ in the data repo, not Toshiba/.
	GroupSiFive:           VendorSiFive,
	GroupTexasInstruments: VendorTexasInstruments,
	GroupEspressif:        VendorEspressif,
}

// String returns the symbolic vendor name.
func (v Vendor) String() string { return string(v) }

// String returns the symbolic group name.
func (g Group) String() string { return string(g) }

// AllVendors returns every declared vendor in declaration order.
func AllVendors() []Vendor {
	out := make([]Vendor, len(vendors))
	copy(out, vendors)
	return out
}

// AllGroups returns every declared group in declaration order.
func AllGroups() []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	return out
}

// VendorSet returns the declared vendors as a set.
func VendorSet() map[Vendor]struct{} {
	set := make(map[Vendor]struct{}, len(vendors))
	for _, v := range vendors {
		set[v] = struct{}{}
	}
	return set
}

// GroupSet returns the declared groups as a set.
func GroupSet() map[Group]struct{} {
	set := make(map[Group]struct{}, len(groups))
	for _, g := range groups {
		set[g] = struct{}{}
	}
	return set
}

// VendorOf returns the vendor a group belongs to. GroupUnknown, and any
// value outside the declared set, has no vendor.
func VendorOf(g Group) (Vendor, bool) {
	v, ok := groupVendors[g]
	return v, ok
}

// MustVendorOf is like VendorOf but panics when the group has no vendor.
// Reaching the panic means a catalog entry or the table itself is wrong.
func MustVendorOf(g Group) Vendor {
	v, ok := groupVendors[g]
	if !ok {
		panic(fmt.Sprintf("taxonomy: no vendor for group %q", string(g)))
	}
	return v
}

// GroupsOf returns the groups that map to v, in declaration order.
func GroupsOf(v Vendor) []Group {
	var out []Group
	for _, g := range groups {
		if gv, ok := groupVendors[g]; ok && gv == v {
			out = append(out, g)
		}
	}
	return out
}

// CheckTotal verifies that every group except GroupUnknown has a vendor and
// that the table only references declared vendors.
func CheckTotal() error {
	var missing []string
	for _, g := range groups {
		if g == GroupUnknown {
			continue
		}
		if _, ok := groupVendors[g]; !ok {
			missing = append(missing, string(g))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("groups without vendor mapping: %v", missing)
	}
	known := VendorSet()
	for g, v := range groupVendors {
		if _, ok := known[v]; !ok {
			return fmt.Errorf("group %s maps to undeclared vendor %q", g, string(v))
		}
		if v == VendorUnknown {
			return fmt.Errorf("group %s maps to vendor Unknown", g)
		}
	}
	return nil
}

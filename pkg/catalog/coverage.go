package catalog

import (
	"github.com/fulmenhq/svdregress/pkg/taxonomy"
)

// CoverageReport counts test cases per vendor and per group.
type CoverageReport struct {
	Total    int                     `json:"total"`
	ByVendor map[taxonomy.Vendor]int `json:"by_vendor"`
	ByGroup  map[taxonomy.Group]int  `json:"by_group"`
	// Unvendored counts cases whose group has no vendor (they carry svd_url).
	Unvendored int `json:"unvendored"`
}

// Coverage builds a CoverageReport for cases.
func Coverage(cases []TestCase) CoverageReport {
	r := CoverageReport{
		Total:    len(cases),
		ByVendor: make(map[taxonomy.Vendor]int),
		ByGroup:  make(map[taxonomy.Group]int),
	}
	for _, tc := range cases {
		r.ByGroup[tc.Group]++
		if v, ok := tc.Vendor(); ok {
			r.ByVendor[v]++
		} else {
			r.Unvendored++
		}
	}
	return r
}

// Missing lists vendors, other than Unknown, with no test case, in declaration order.
func (r CoverageReport) Missing() []taxonomy.Vendor {
	var out []taxonomy.Vendor
	for _, v := range taxonomy.AllVendors() {
		if v == taxonomy.VendorUnknown {
			continue
		}
		if r.ByVendor[v] == 0 {
			out = append(out, v)
		}
	}
	return out
}

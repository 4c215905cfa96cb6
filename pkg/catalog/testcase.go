package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fulmenhq/svdregress/pkg/taxonomy"
	"gopkg.in/yaml.v3"
)

// CMSISDataBaseURL is the root of the CMSIS SVD data repository, organized by vendor.
const CMSISDataBaseURL = "https://raw.githubusercontent.com/cmsis-svd/cmsis-svd-data/main/data"

// Arch identifies the target architecture handed to the code generator.
type Arch string

const (
	ArchCortexM  Arch = "cortex-m"
	ArchMSP430   Arch = "msp430"
	ArchRISCV    Arch = "riscv"
	ArchXtensaLX Arch = "xtensa-lx"
	ArchMips     Arch = "mips"
	ArchNone     Arch = "none"
)

var arches = []Arch{ArchCortexM, ArchMSP430, ArchRISCV, ArchXtensaLX, ArchMips, ArchNone}

// AllArches returns every known architecture.
func AllArches() []Arch {
	out := make([]Arch, len(arches))
	copy(out, arches)
	return out
}

// ParseArch resolves an architecture by name, ignoring case.
func ParseArch(s string) (Arch, error) {
	for _, a := range arches {
		if strings.EqualFold(string(a), s) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown arch %q", s)
}

func (a Arch) String() string { return string(a) }

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Arch) UnmarshalText(text []byte) error {
	for _, known := range arches {
		if string(known) == string(text) {
			*a = known
			return nil
		}
	}
	return fmt.Errorf("unknown arch %q", string(text))
}

// RunWhen controls whether a test case runs in short mode.
type RunWhen string

const (
	// Always runs in every mode. This is the default.
	Always RunWhen = "always"
	// NotShort is skipped when the harness runs in short mode.
	NotShort RunWhen = "not-short"
	// Never is skipped in every mode.
	Never RunWhen = "never"
)

func (r RunWhen) String() string {
	if r == "" {
		return string(Always)
	}
	return string(r)
}

// MarshalText implements encoding.TextMarshaler. The zero value encodes as Always.
func (r RunWhen) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RunWhen) UnmarshalText(text []byte) error {
	switch RunWhen(text) {
	case Always, NotShort, Never:
		*r = RunWhen(text)
		return nil
	default:
		return fmt.Errorf("unknown run_when %q", string(text))
	}
}

// TestCase is one catalog entry: an SVD file to fetch and a generator run to perform.
type TestCase struct {
	Arch       Arch           `json:"arch" yaml:"arch" toml:"arch"`
	Group      taxonomy.Group `json:"group" yaml:"group" toml:"group"`
	Chip       string         `json:"chip" yaml:"chip" toml:"chip"`
	Suffix     string         `json:"suffix,omitempty" yaml:"suffix,omitempty" toml:"suffix,omitempty"`
	Opts       []string       `json:"opts,omitempty" yaml:"opts,omitempty" toml:"opts,omitempty"`
	SVDURL     string         `json:"svd_url,omitempty" yaml:"svd_url,omitempty" toml:"svd_url,omitempty"`
	ShouldPass bool           `json:"should_pass" yaml:"should_pass" toml:"should_pass"`
	SkipCheck  bool           `json:"skip_check" yaml:"skip_check" toml:"skip_check"`
	RunWhen    RunWhen        `json:"run_when" yaml:"run_when" toml:"run_when"`
}

func defaultTestCase() TestCase {
	return TestCase{ShouldPass: true, RunWhen: Always}
}

// UnmarshalJSON applies field defaults before decoding and rejects unknown fields.
func (tc *TestCase) UnmarshalJSON(data []byte) error {
	type plain TestCase
	p := plain(defaultTestCase())
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return err
	}
	*tc = TestCase(p)
	return nil
}

// UnmarshalYAML applies field defaults before decoding.
func (tc *TestCase) UnmarshalYAML(value *yaml.Node) error {
	type plain TestCase
	p := plain(defaultTestCase())
	if err := value.Decode(&p); err != nil {
		return err
	}
	*tc = TestCase(p)
	return nil
}

// Name is "<group>-<chip>" with dots in chip replaced by underscores,
// followed by "-<suffix>" when a suffix is set.
func (tc TestCase) Name() string {
	name := tc.Group.String() + "-" + strings.ReplaceAll(tc.Chip, ".", "_")
	if tc.Suffix != "" {
		name += "-" + tc.Suffix
	}
	return name
}

// Vendor returns the vendor of the case's group.
func (tc TestCase) Vendor() (taxonomy.Vendor, bool) {
	return taxonomy.VendorOf(tc.Group)
}

// SourceURL returns the explicit svd_url when set, otherwise the CMSIS SVD
// data URL for the chip. It panics when the group has no vendor; Parse
// rejects such entries, so this only fires for hand-built values.
func (tc TestCase) SourceURL() string {
	if tc.SVDURL != "" {
		return tc.SVDURL
	}
	vendor, ok := taxonomy.VendorOf(tc.Group)
	if !ok {
		panic(fmt.Sprintf("could not find a vendor in CMSIS SVD repo for group %s", tc.Group))
	}
	return fmt.Sprintf("%s/%s/%s.svd", CMSISDataBaseURL, vendor, tc.Chip)
}

// ShouldRun reports whether the case runs given the harness mode.
func (tc TestCase) ShouldRun(short bool) bool {
	switch tc.RunWhen {
	case NotShort:
		return !short
	case Never:
		return false
	default:
		return true
	}
}

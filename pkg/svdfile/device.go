// Package svdfile reads device metadata from CMSIS SVD files.
package svdfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
)

// ErrNotSVD is returned when a document has no <device> root element.
var ErrNotSVD = errors.New("not an SVD document: missing <device> root")

// Device is the subset of an SVD <device> element the harness reports on.
type Device struct {
	Name        string `json:"name"`
	Vendor      string `json:"vendor,omitempty"`
	Series      string `json:"series,omitempty"`
	Version     string `json:"version,omitempty"`
	CPU         string `json:"cpu,omitempty"`
	Peripherals int    `json:"peripherals"`
}

// Parse reads device metadata from SVD bytes.
func Parse(data []byte) (Device, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return Device{}, fmt.Errorf("SVD is not well-formed XML: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "device" {
		return Device{}, ErrNotSVD
	}

	d := Device{
		Name:    childText(root, "name"),
		Vendor:  childText(root, "vendor"),
		Series:  childText(root, "series"),
		Version: childText(root, "version"),
	}
	if d.Name == "" {
		return Device{}, fmt.Errorf("SVD device has no <name>")
	}
	if cpu := root.SelectElement("cpu"); cpu != nil {
		d.CPU = childText(cpu, "name")
	}
	if p := root.SelectElement("peripherals"); p != nil {
		d.Peripherals = len(p.SelectElements("peripheral"))
	}
	return d, nil
}

// ReadFile parses the SVD file at path.
func ReadFile(path string) (Device, error) {
	data, err := os.ReadFile(filepath.Clean(path)) // #nosec G304 -- caller-selected SVD file
	if err != nil {
		return Device{}, err
	}
	d, err := Parse(data)
	if err != nil {
		return Device{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Arch maps the SVD CPU name to a catalog architecture name, or "" when unknown.
func (d Device) Arch() string {
	cpu := strings.ToUpper(d.CPU)
	switch {
	case cpu == "":
		return ""
	case strings.HasPrefix(cpu, "CM"), strings.HasPrefix(cpu, "SC"):
		return "cortex-m"
	case strings.HasPrefix(cpu, "RV"), strings.Contains(cpu, "RISCV"), strings.Contains(cpu, "RISC-V"):
		return "riscv"
	case strings.HasPrefix(cpu, "XTENSA"):
		return "xtensa-lx"
	case strings.HasPrefix(cpu, "MSP430"):
		return "msp430"
	case strings.HasPrefix(cpu, "MIPS"):
		return "mips"
	default:
		return ""
	}
}

func childText(e *etree.Element, tag string) string {
	if c := e.SelectElement(tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

// Package render turns the CSR and ISA entity graphs into documentation
// text.
//
// Each Renderer call builds its output in a fresh document context, so a
// single Renderer value can be shared between goroutines and reused for any
// number of blocks.
package render

import (
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/apparentlymart/riscv-docgen/csr"
	"github.com/apparentlymart/riscv-docgen/isa"
)

var logger = loggo.GetLogger("riscvdoc.render")

// Renderer produces one output file's worth of text per block.
type Renderer interface {
	// Suffix is the file name suffix of the output, including the dot.
	Suffix() string
	AddressBlock(b *csr.AddressBlock) (string, error)
	InstructionBlock(b *isa.InstructionBlock) (string, error)
}

// ForFormat returns the renderer for "rst", "md" (or "markdown") or
// "json".
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "rst":
		return RST{}, nil
	case "md", "markdown":
		return Markdown{}, nil
	case "json":
		return JSON{}, nil
	default:
		return nil, errors.NotValidf("output format %q", format)
	}
}

var (
	registerSummaryHeader = []string{"Address", "Register Name", "Description"}
	fieldTableHeader      = []string{"Bits", "Field Name", "Legal Values", "Mask", "Access", "Description"}
	instrSummaryHeader    = []string{"Subset Name", "Name", "Description"}
	variantTableHeader    = []string{"Name", "Format", "Pseudocode", "Invalid Values", "Exception Raised", "Description", "Op Name"}
)

func fieldRow(f csr.Field) []string {
	return []string{f.Bits(), f.Name, f.Legal.String(), f.Bitmask, f.Access, f.Description}
}

func variantRow(v isa.Variant) []string {
	return []string{v.Name, v.Format, v.Pseudocode, v.InvalidValues, v.ExceptionRaised, v.Description, v.OperationName}
}

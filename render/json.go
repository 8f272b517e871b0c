package render

import (
	"github.com/goccy/go-json"
	"github.com/juju/errors"

	"github.com/apparentlymart/riscv-docgen/csr"
	"github.com/apparentlymart/riscv-docgen/isa"
)

// JSON renders the entity graph itself, for consumption by other tools.
// Unlike the document renderers it keeps registers that are not visible.
type JSON struct{}

func (JSON) Suffix() string {
	return ".json"
}

func (JSON) AddressBlock(b *csr.AddressBlock) (string, error) {
	return marshalIndent(b)
}

func (JSON) InstructionBlock(b *isa.InstructionBlock) (string, error) {
	return marshalIndent(b)
}

func marshalIndent(v interface{}) (string, error) {
	src, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errors.Trace(err)
	}
	return string(src) + "\n", nil
}

// Package isa turns ISA YAML instruction blocks into the instruction model
// used by the documentation renderers.
package isa

import (
	"fmt"
	"io"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"gopkg.in/yaml.v3"

	"github.com/apparentlymart/riscv-docgen/yamlnode"
)

var logger = loggo.GetLogger("riscvdoc.isa")

// StructuralError reports an instruction block whose shape cannot be
// documented at all.
type StructuralError struct {
	Block  string
	Key    string
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("instruction block %q %s", e.Block, e.Reason)
	}
	return fmt.Sprintf("instruction block %q: %q %s", e.Block, e.Key, e.Reason)
}

// IsStructural reports whether err, or the error it annotates, is a
// StructuralError.
func IsStructural(err error) bool {
	_, ok := errors.Cause(err).(*StructuralError)
	return ok
}

// ExtractInstruction builds the Instruction for one block. The block's
// "Instructions" mapping is walked in declaration order and every
// (operation, instruction) pair becomes one Variant; optional attributes
// that are missing or empty become empty strings so that every column has
// one entry per row.
func ExtractInstruction(key string, n *yaml.Node) (*Instruction, error) {
	n = yamlnode.Resolve(n)
	if !yamlnode.IsMapping(n) {
		return nil, errors.Trace(&StructuralError{Block: key, Reason: "is not a mapping"})
	}

	inst := &Instruction{
		Key:           key,
		ExtensionName: yamlnode.Text(yamlnode.Lookup(n, "Subset_Name")),
		Description:   yamlnode.Text(yamlnode.Lookup(n, "Description")),
		Standard:      ParseStandard(key),
	}

	instrs := yamlnode.Lookup(n, "Instructions")
	if yamlnode.IsNull(instrs) {
		return inst, nil
	}
	if !yamlnode.IsMapping(instrs) {
		return nil, errors.Trace(&StructuralError{Block: key, Key: "Instructions", Reason: "is not a mapping"})
	}

	for _, op := range yamlnode.Pairs(instrs) {
		if !yamlnode.IsMapping(op.Value) {
			logger.Debugf("instruction block %q: operation %q has no instructions", key, op.Key)
			continue
		}
		for _, in := range yamlnode.Pairs(op.Value) {
			inst.Variants = append(inst.Variants, Variant{
				OperationName:   op.Key,
				Name:            in.Key,
				Format:          yamlnode.Text(yamlnode.Lookup(in.Value, "Format")),
				Description:     yamlnode.Text(yamlnode.Lookup(in.Value, "Description")),
				Pseudocode:      yamlnode.Text(yamlnode.Lookup(in.Value, "Pseudocode")),
				InvalidValues:   yamlnode.Text(yamlnode.Lookup(in.Value, "Invalid_Values")),
				ExceptionRaised: yamlnode.Text(yamlnode.Lookup(in.Value, "Exception_Raised")),
			})
		}
	}
	return inst, nil
}

// Load reads an ISA YAML description, a mapping of block keys to
// instruction blocks, and assembles it into a Document.
func Load(r io.Reader) (*Document, error) {
	root, err := yamlnode.Read(r)
	if err != nil {
		return nil, errors.Annotate(err, "failed to parse ISA description")
	}
	return LoadNode(root)
}

// LoadNode is like Load but starts from an already parsed document.
func LoadNode(root *yaml.Node) (*Document, error) {
	if !yamlnode.IsMapping(root) {
		return nil, errors.Errorf("ISA description is not a mapping of instruction blocks")
	}

	block := &InstructionBlock{Name: "isa"}
	for _, p := range yamlnode.Pairs(root) {
		inst, err := ExtractInstruction(p.Key, p.Value)
		if err != nil {
			return nil, errors.Trace(err)
		}
		logger.Debugf("instruction block %q: %d variants", p.Key, len(inst.Variants))
		block.AddInstruction(inst)
	}

	m := &InstructionMap{Name: "ISA"}
	m.AddInstructionBlock(block)
	d := &Document{Name: "ISA"}
	d.AddInstructionMap(m)
	return d, nil
}

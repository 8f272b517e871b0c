// Package csr turns riscv-config register nodes into the register and field
// model that the documentation renderers consume.
package csr

import (
	"context"
	"fmt"

	"github.com/juju/errors"
	"github.com/juju/loggo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/apparentlymart/riscv-docgen/yamlnode"
)

var logger = loggo.GetLogger("riscvdoc.csr")

// Source is one named register node as it appears in the input.
type Source struct {
	Name string
	Node *yaml.Node
}

// Extractor builds Register values for a hart of the given width.
type Extractor struct {
	Size XLEN
}

// Extract builds the Register for a single register node. Every
// well-formed node yields exactly one Register, including nodes that are
// accessible in neither RV32 nor RV64; a node without an address or an rv32
// view yields a StructuralError naming the register.
func (x *Extractor) Extract(name string, n *yaml.Node) (*Register, error) {
	n = yamlnode.Resolve(n)
	if !yamlnode.IsMapping(n) {
		return nil, badKey(name, "", "is not a mapping")
	}

	address, err := registerAddress(name, yamlnode.Lookup(n, "address"))
	if err != nil {
		return nil, err
	}

	rv32 := yamlnode.Lookup(n, "rv32")
	if rv32 == nil {
		return nil, missingKey(name, "rv32")
	}
	if !yamlnode.IsMapping(rv32) {
		return nil, badKey(name, "rv32", "is not a mapping")
	}
	rv64 := yamlnode.Lookup(n, "rv64")

	reg := &Register{
		Name:        name,
		Address:     address,
		ResetValue:  hexText(yamlnode.Lookup(n, "reset-val")),
		Size:        x.Size,
		Access:      yamlnode.String(yamlnode.Lookup(n, "priv_mode")),
		Description: yamlnode.String(yamlnode.Lookup(n, "description")),
		RV32:        yamlnode.Truthy(yamlnode.Lookup(rv32, "accessible")),
		RV64:        yamlnode.Truthy(yamlnode.Lookup(rv64, "accessible")),
	}

	gen := GeneralizeRegister(reg.Name, reg.Description)
	reg.Name = gen.Name
	reg.Description = gen.Description

	v := view{name: "rv32", node: rv32, width: 32}
	var list []*yaml.Node
	switch {
	case reg.RV32:
		list = yamlnode.Items(yamlnode.Lookup(rv32, "fields"))
	case reg.RV64 && yamlnode.IsMapping(rv64):
		v = view{name: "rv64", node: rv64, width: 64}
		list = yamlnode.Items(yamlnode.Lookup(rv64, "fields"))
	}

	fields, err := synthesizeFields(name, gen, v, list)
	if err != nil {
		return nil, err
	}
	reg.Fields = FillHoles(fields, v.width)
	return reg, nil
}

// ExtractAll extracts every source with up to jobs extractions running at
// once. The result is in source order. The first structural error stops
// the batch.
func (x *Extractor) ExtractAll(ctx context.Context, srcs []Source, jobs int) ([]*Register, error) {
	ret := make([]*Register, len(srcs))
	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reg, err := x.Extract(src.Name, src.Node)
			if err != nil {
				return err
			}
			ret[i] = reg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Trace(err)
	}
	return ret, nil
}

func registerAddress(reg string, n *yaml.Node) (string, error) {
	if yamlnode.IsNull(n) {
		return "", missingKey(reg, "address")
	}
	if yamlnode.IsInt(n) {
		v, ok := yamlnode.Uint(n)
		if !ok {
			return "", badKey(reg, "address", "is not a valid integer")
		}
		return hexValue(v).String(), nil
	}
	s := yamlnode.String(n)
	if s == "" {
		return "", badKey(reg, "address", fmt.Sprintf("has unsupported value %q", n.Value))
	}
	return s, nil
}

// hexText formats integers in hexadecimal and passes anything else
// through as text.
func hexText(n *yaml.Node) string {
	if yamlnode.IsInt(n) {
		if v, ok := yamlnode.Uint(n); ok {
			return hexValue(v).String()
		}
	}
	return yamlnode.String(n)
}

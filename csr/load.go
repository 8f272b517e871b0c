package csr

import (
	"context"
	"io"
	"strings"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"github.com/apparentlymart/riscv-docgen/yamlnode"
)

// Hart is the register section of a riscv-config description.
type Hart struct {
	Name      string
	Size      XLEN
	Registers []Source
}

// Load reads a riscv-config YAML description and returns its first hart.
func Load(r io.Reader) (*Hart, error) {
	root, err := yamlnode.Read(r)
	if err != nil {
		return nil, errors.Annotate(err, "failed to parse CSR description")
	}
	return LoadNode(root)
}

// LoadNode is like Load but starts from an already parsed document. The
// hart is the first top-level entry whose key starts with "hart"; a root
// that itself declares supported_xlen is treated as the hart.
func LoadNode(root *yaml.Node) (*Hart, error) {
	name, hart := findHart(root)
	if hart == nil {
		return nil, errors.Errorf("no hart section found")
	}

	xlens := yamlnode.Items(yamlnode.Lookup(hart, "supported_xlen"))
	if len(xlens) == 0 {
		return nil, missingKey(name, "supported_xlen")
	}
	bits, _ := yamlnode.Int(xlens[0])
	size := ParseXLEN(bits)
	if size == RVInvalid {
		return nil, badKey(name, "supported_xlen", "does not start with 32 or 64")
	}

	ret := &Hart{Name: name, Size: size}
	for _, p := range yamlnode.Pairs(hart) {
		if !isRegisterNode(p.Value) {
			continue
		}
		ret.Registers = append(ret.Registers, Source{Name: p.Key, Node: p.Value})
	}
	logger.Debugf("hart %q: %d register nodes, XLEN %d", name, len(ret.Registers), size)
	return ret, nil
}

// Document extracts every register of the hart and assembles them into a
// Document named after the hart.
func (h *Hart) Document(ctx context.Context, jobs int) (*Document, error) {
	x := &Extractor{Size: h.Size}
	regs, err := x.ExtractAll(ctx, h.Registers, jobs)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return BuildDocument(h.Name, regs), nil
}

func findHart(root *yaml.Node) (string, *yaml.Node) {
	for _, p := range yamlnode.Pairs(root) {
		if strings.HasPrefix(p.Key, "hart") && yamlnode.IsMapping(p.Value) {
			return p.Key, p.Value
		}
	}
	if yamlnode.Has(root, "supported_xlen") {
		return "hart0", root
	}
	return "", nil
}

// isRegisterNode separates register entries from the other hart settings
// (ISA string, physical address size and the like).
func isRegisterNode(n *yaml.Node) bool {
	if !yamlnode.IsMapping(n) {
		return false
	}
	return yamlnode.Has(n, "address") || yamlnode.Has(n, "rv32") || yamlnode.Has(n, "rv64")
}

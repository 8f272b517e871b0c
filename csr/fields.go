package csr

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/apparentlymart/riscv-docgen/yamlnode"
)

// view is one of the per-width sub-maps of a register node ("rv32" or
// "rv64"), which hold the field list and the per-field entries.
type view struct {
	name  string
	node  *yaml.Node
	width int
}

// synthesizeFields produces the fields of a register from its view. An
// empty field list means the register is a single field spanning its own
// bit range; otherwise each entry is either the name of a field described
// in the view or a reserved-range marker.
func synthesizeFields(reg string, gen Generalized, v view, list []*yaml.Node) ([]Field, error) {
	if len(list) == 0 {
		f, err := wholeRegisterField(reg, gen, v)
		if err != nil {
			return nil, err
		}
		return []Field{f}, nil
	}

	var ret []Field
	for _, item := range list {
		switch item.Kind {
		case yaml.ScalarNode:
			f, err := namedField(reg, v, item.Value)
			if err != nil {
				return nil, err
			}
			if gen.Family {
				f.Name = GeneralizeField(f.Name)
			}
			ret = append(ret, f)
		case yaml.SequenceNode:
			for _, r := range reservedMarkers(item) {
				ret = append(ret, reservedField(r))
			}
		default:
			logger.Debugf("register %q: ignoring field list entry %q", reg, item.Value)
		}
	}
	return ret, nil
}

func namedField(reg string, v view, name string) (Field, error) {
	key := v.name + "." + name
	entry := yamlnode.Lookup(v.node, name)
	if !yamlnode.IsMapping(entry) {
		return Field{}, missingKey(reg, key)
	}
	msb, err := bitPosition(reg, key+".msb", yamlnode.Lookup(entry, "msb"))
	if err != nil {
		return Field{}, err
	}
	lsb, err := bitPosition(reg, key+".lsb", yamlnode.Lookup(entry, "lsb"))
	if err != nil {
		return Field{}, err
	}
	if msb < lsb {
		return Field{}, badKey(reg, key, fmt.Sprintf("has msb %d below lsb %d", msb, lsb))
	}

	legal := decodeFieldLegal(reg, name, yamlnode.Lookup(entry, "type"))
	return Field{
		Name:        name,
		Legal:       legal,
		Bitmask:     legal.MaskString(),
		MSB:         msb,
		LSB:         lsb,
		Width:       msb - lsb + 1,
		Description: yamlnode.String(yamlnode.Lookup(entry, "description")),
		Access:      strings.ToUpper(yamlnode.String(yamlnode.Lookup(entry, "shadow_type"))),
	}, nil
}

func bitPosition(reg, key string, n *yaml.Node) (int, error) {
	if yamlnode.IsNull(n) {
		return 0, missingKey(reg, key)
	}
	v, ok := yamlnode.Int(n)
	if !ok {
		return 0, badKey(reg, key, "is not an integer")
	}
	return v, nil
}

// wholeRegisterField describes a register without sub-fields. The bit
// range defaults to [31:0]; when msb is not given the width is left
// unspecified.
func wholeRegisterField(reg string, gen Generalized, v view) (Field, error) {
	lsb := 0
	if n := yamlnode.Lookup(v.node, "lsb"); !yamlnode.IsNull(n) {
		var ok bool
		if lsb, ok = yamlnode.Int(n); !ok {
			return Field{}, badKey(reg, v.name+".lsb", "is not an integer")
		}
	}
	msb, width := 31, 0
	if n := yamlnode.Lookup(v.node, "msb"); !yamlnode.IsNull(n) {
		var ok bool
		if msb, ok = yamlnode.Int(n); !ok {
			return Field{}, badKey(reg, v.name+".msb", "is not an integer")
		}
		if msb < lsb {
			return Field{}, badKey(reg, v.name, fmt.Sprintf("has msb %d below lsb %d", msb, lsb))
		}
		width = msb - lsb + 1
	}

	legal := decodeFieldLegal(reg, "", yamlnode.Lookup(v.node, "type"))
	return Field{
		Name:        gen.Name,
		Legal:       legal,
		Bitmask:     legal.MaskString(),
		MSB:         msb,
		LSB:         lsb,
		Width:       width,
		Description: gen.Description,
		Access:      strings.ToUpper(yamlnode.String(yamlnode.Lookup(v.node, "shadow_type"))),
	}, nil
}

func decodeFieldLegal(reg, field string, typ *yaml.Node) LegalValue {
	legal := DecodeLegal(typ)
	if legal.Kind == LegalUnrecognized {
		if field == "" {
			logger.Debugf("register %q: unrecognized legal value annotation", reg)
		} else {
			logger.Debugf("register %q field %q: unrecognized legal value annotation", reg, field)
		}
	}
	return legal
}

// reservedMarkers reads a reserved-range entry of a field list. The entry
// is either a single marker of bit positions ([9, 10]) or a list of markers
// ([[2], [4], [9, 10]]); in the latter form any bare bit number is a
// one-bit marker. Each marker spans its first to its last bit. Empty or
// non-numeric markers are skipped.
func reservedMarkers(entry *yaml.Node) []bitRange {
	items := yamlnode.Items(entry)
	nested := false
	for _, item := range items {
		if yamlnode.IsSequence(item) {
			nested = true
			break
		}
	}
	if !nested {
		if r, ok := markerRange(items); ok {
			return []bitRange{r}
		}
		return nil
	}

	var ret []bitRange
	for _, item := range items {
		var r bitRange
		var ok bool
		if yamlnode.IsSequence(item) {
			r, ok = markerRange(yamlnode.Items(item))
		} else {
			r, ok = markerRange([]*yaml.Node{item})
		}
		if ok {
			ret = append(ret, r)
		}
	}
	return ret
}

func markerRange(bits []*yaml.Node) (bitRange, bool) {
	if len(bits) == 0 {
		return bitRange{}, false
	}
	first, ok := yamlnode.Int(bits[0])
	if !ok {
		return bitRange{}, false
	}
	last, ok := yamlnode.Int(bits[len(bits)-1])
	if !ok {
		return bitRange{}, false
	}
	if last < first {
		first, last = last, first
	}
	return bitRange{LSB: first, MSB: last}, true
}

func reservedField(r bitRange) Field {
	return Field{
		Name:        fmt.Sprintf("Reserved_%d", r.LSB),
		Legal:       LegalValue{Kind: LegalUnspecified},
		MSB:         r.MSB,
		LSB:         r.LSB,
		Width:       r.width(),
		Description: "Reserved",
		Access:      AccessReserved,
	}
}

// FillHoles sorts fields by lsb and inserts a reserved field for every bit
// range in [0, width) that no field covers. The width grows to include the
// highest msb present. Overlapping fields are kept as they are and logged.
func FillHoles(fields []Field, width int) []Field {
	sorted := make([]Field, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LSB < sorted[j].LSB
	})
	for _, f := range sorted {
		if f.MSB+1 > width {
			width = f.MSB + 1
		}
	}

	ret := make([]Field, 0, len(sorted))
	var covered uint64
	next := 0
	for _, f := range sorted {
		if f.LSB > next {
			ret = append(ret, reservedField(bitRange{LSB: next, MSB: f.LSB - 1}))
		}
		if f.MSB < 64 {
			m := rangeMask(uint(f.MSB), uint(f.LSB))
			if covered&m != 0 {
				logger.Warningf("field %q [%d:%d] overlaps another field", f.Name, f.MSB, f.LSB)
			}
			covered |= m
		}
		ret = append(ret, f)
		if f.MSB+1 > next {
			next = f.MSB + 1
		}
	}
	if next < width {
		ret = append(ret, reservedField(bitRange{LSB: next, MSB: width - 1}))
	}
	return ret
}

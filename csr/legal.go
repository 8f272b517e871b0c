package csr

import (
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/apparentlymart/riscv-docgen/yamlnode"
)

// LegalKind says which shape of legal-value annotation a field carries.
type LegalKind int

const (
	// LegalUnspecified means the field has no "type" node at all.
	LegalUnspecified LegalKind = iota
	// LegalNone means the constraint key is present but carries no value.
	LegalNone
	// LegalExact is a decoded value/mask pair.
	LegalExact
	// LegalUnrecognized means a "type" node was present but matched none of
	// the known shapes. It renders like LegalUnspecified.
	LegalUnrecognized
)

func (k LegalKind) String() string {
	switch k {
	case LegalUnspecified:
		return "unspecified"
	case LegalNone:
		return "none"
	case LegalExact:
		return "exact"
	case LegalUnrecognized:
		return "unrecognized"
	default:
		return "invalid"
	}
}

func (k LegalKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// NoLegalValuesText is what documentation shows for LegalNone.
const NoLegalValuesText = "No Legal values"

// LegalValue is the decoded form of a WARL, WLRL, read-only-constant or
// read-only-variable annotation.
type LegalValue struct {
	Kind  LegalKind `json:"kind"`
	Value uint64    `json:"value,omitempty"`
	Mask  uint64    `json:"mask,omitempty"`
	// Constraint is the key the annotation was found under, such as "warl".
	Constraint string `json:"constraint,omitempty"`
}

// String renders the legal value column of a register table.
func (l LegalValue) String() string {
	switch l.Kind {
	case LegalNone:
		return NoLegalValuesText
	case LegalExact:
		return hexValue(l.Value).String()
	default:
		return ""
	}
}

// MaskString renders the mask column of a register table.
func (l LegalValue) MaskString() string {
	if l.Kind != LegalExact {
		return ""
	}
	return hexValue(l.Mask).String()
}

// constraintKeys are checked in this order when a "type" mapping carries
// more than one of them.
var constraintKeys = []string{"warl", "wlrl", "ro_constant", "ro_variable"}

const hexToken = `(0[xX][0-9A-Fa-f]+|[0-9A-Fa-f]+)`

var (
	// A legal expression such as "extensions[25:0] bitmask [0x0, 0x3FFFFFFF]"
	// or "field[0x10:0x1F]": a bracketed value/bound pair following at
	// least one word of context.
	legalDictPattern = regexp.MustCompile(
		`[\w\[\]:]+\s*\w+\s*\[\s*` + hexToken + `\s*(?:[^0-9A-Fa-fxX\]]+\s*` + hexToken + `)?\s*\]`,
	)

	// A range such as "0x0 - 0xF" or "0:3".
	legalListPattern = regexp.MustCompile(
		`\b` + hexToken + `(?:\s*[^0-9A-Fa-fxX\s]+\s*|\s+)` + hexToken + `\b`,
	)
)

// DecodeLegal turns the "type" node of a register or field into a
// LegalValue. It never fails: input that matches none of the known shapes
// yields LegalUnrecognized so that one unusual field cannot stop the
// documentation of all the others.
func DecodeLegal(typ *yaml.Node) LegalValue {
	if yamlnode.IsNull(typ) {
		return LegalValue{Kind: LegalUnspecified}
	}
	if !yamlnode.IsMapping(typ) {
		return LegalValue{Kind: LegalUnrecognized}
	}

	var constraint string
	var inner *yaml.Node
	for _, key := range constraintKeys {
		if n := yamlnode.Lookup(typ, key); n != nil {
			constraint, inner = key, n
			break
		}
	}
	if constraint == "" {
		return LegalValue{Kind: LegalUnrecognized}
	}
	if yamlnode.IsNull(inner) {
		return LegalValue{Kind: LegalNone, Constraint: constraint}
	}

	var ret LegalValue
	var ok bool
	switch inner.Kind {
	case yaml.MappingNode:
		ret, ok = decodeLegalDict(inner)
	case yaml.SequenceNode:
		ret, ok = decodeLegalList(inner)
	case yaml.ScalarNode:
		ret, ok = decodeLegalScalar(inner)
	}
	if !ok {
		return LegalValue{Kind: LegalUnrecognized, Constraint: constraint}
	}
	ret.Constraint = constraint
	return ret
}

func decodeLegalDict(n *yaml.Node) (LegalValue, bool) {
	legal := yamlnode.Items(yamlnode.Lookup(n, "legal"))
	if len(legal) == 0 {
		return LegalValue{}, false
	}
	m := legalDictPattern.FindStringSubmatch(yamlnode.String(legal[0]))
	if m == nil {
		return LegalValue{}, false
	}
	return exactFromTokens(m[1], m[2])
}

func decodeLegalList(n *yaml.Node) (LegalValue, bool) {
	items := yamlnode.Items(n)
	if len(items) == 0 {
		return LegalValue{}, false
	}
	m := legalListPattern.FindStringSubmatch(yamlnode.String(items[0]))
	if m == nil {
		return LegalValue{}, false
	}
	return exactFromTokens(m[1], m[2])
}

func decodeLegalScalar(n *yaml.Node) (LegalValue, bool) {
	v, ok := yamlnode.Uint(n)
	if !ok {
		return LegalValue{}, false
	}
	return LegalValue{Kind: LegalExact, Value: v}, true
}

func exactFromTokens(rawValue, rawMask string) (LegalValue, bool) {
	v, ok := parseHexToken(rawValue)
	if !ok {
		return LegalValue{}, false
	}
	ret := LegalValue{Kind: LegalExact, Value: v}
	if rawMask != "" {
		mask, ok := parseHexToken(rawMask)
		if !ok {
			return LegalValue{}, false
		}
		ret.Mask = mask
	}
	return ret, true
}

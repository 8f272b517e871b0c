// Package yamlnode contains small helpers for walking a parsed YAML
// document as a tree of yaml.Node values.
//
// The riscv-config inputs are loosely shaped: the same key can carry a
// scalar, a sequence or a mapping depending on the register, and the order
// of mapping keys matters for the generated documentation. Working with
// yaml.Node rather than decoding into map[string]interface{} preserves both
// the node kind and the declaration order.
package yamlnode

import (
	"io"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

// Pair is a single key/value entry of a mapping node.
type Pair struct {
	Key   string
	Value *yaml.Node
}

// Parse parses the given YAML source and returns its top-level content
// node, with the document wrapper already removed.
func Parse(src []byte) (*yaml.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, errors.Trace(err)
	}
	n := Resolve(&doc)
	if n == nil {
		return nil, errors.Errorf("empty YAML document")
	}
	return n, nil
}

// Read is like Parse but reads the whole source from r.
func Read(r io.Reader) (*yaml.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return Parse(src)
}

// Resolve strips document wrappers and follows aliases. It returns nil for
// a nil node or an empty document.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

// IsMapping reports whether n resolves to a mapping node.
func IsMapping(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.MappingNode
}

// IsSequence reports whether n resolves to a sequence node.
func IsSequence(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.SequenceNode
}

// IsNull reports whether n is absent or an explicit YAML null.
func IsNull(n *yaml.Node) bool {
	n = Resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// Lookup returns the value stored under key in mapping n. The result is
// nil when n is not a mapping or has no such key; a present key with an
// empty value yields a null scalar node, which callers can tell apart from
// a missing key.
func Lookup(n *yaml.Node, key string) *yaml.Node {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return Resolve(n.Content[i+1])
		}
	}
	return nil
}

// Has reports whether mapping n has the given key, whatever its value.
func Has(n *yaml.Node, key string) bool {
	return Lookup(n, key) != nil
}

// Pairs returns the entries of mapping n in declaration order.
func Pairs(n *yaml.Node) []Pair {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	ret := make([]Pair, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		ret = append(ret, Pair{
			Key:   n.Content[i].Value,
			Value: Resolve(n.Content[i+1]),
		})
	}
	return ret
}

// Items returns the elements of sequence n.
func Items(n *yaml.Node) []*yaml.Node {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}
	ret := make([]*yaml.Node, len(n.Content))
	for i, c := range n.Content {
		ret[i] = Resolve(c)
	}
	return ret
}

// String returns the text of a scalar node, or the empty string for
// anything else (including null).
func String(n *yaml.Node) string {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode || n.ShortTag() == "!!null" {
		return ""
	}
	return n.Value
}

// Uint parses a scalar as an unsigned integer. Hexadecimal, octal and
// binary prefixes are accepted the way YAML 1.2 writes them.
func Uint(n *yaml.Node) (uint64, bool) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return 0, false
	}
	switch n.ShortTag() {
	case "!!int", "!!str":
	default:
		return 0, false
	}
	raw := strings.ReplaceAll(strings.TrimSpace(n.Value), "_", "")
	if raw == "" {
		return 0, false
	}
	base := 10
	switch lower := strings.ToLower(raw); {
	case strings.HasPrefix(lower, "0x"):
		base, raw = 16, raw[2:]
	case strings.HasPrefix(lower, "0o"):
		base, raw = 8, raw[2:]
	case strings.HasPrefix(lower, "0b"):
		base, raw = 2, raw[2:]
	}
	v, err := strconv.ParseUint(raw, base, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Int is like Uint but returns a plain int, for bit positions and
// similarly small values.
func Int(n *yaml.Node) (int, bool) {
	v, ok := Uint(n)
	if !ok || v > uint64(int(^uint(0)>>1)) {
		return 0, false
	}
	return int(v), true
}

// IsInt reports whether n is a scalar tagged as an integer.
func IsInt(n *yaml.Node) bool {
	n = Resolve(n)
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == "!!int"
}

// Truthy follows the usual scripting-language notion of truthiness: false,
// null, zero, the empty string and empty collections are all false.
func Truthy(n *yaml.Node) bool {
	n = Resolve(n)
	if n == nil {
		return false
	}
	switch n.Kind {
	case yaml.SequenceNode, yaml.MappingNode:
		return len(n.Content) > 0
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!null":
			return false
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err != nil {
				return false
			}
			return b
		case "!!int":
			v, ok := Uint(n)
			return !ok || v != 0
		case "!!float":
			f, err := strconv.ParseFloat(n.Value, 64)
			return err != nil || f != 0
		default:
			return n.Value != ""
		}
	}
	return false
}

// Text flattens a node into display text: scalars yield their value and
// sequences of scalars are joined with ", ". Mappings yield the empty
// string.
func Text(n *yaml.Node) string {
	n = Resolve(n)
	if n == nil {
		return ""
	}
	switch n.Kind {
	case yaml.ScalarNode:
		return String(n)
	case yaml.SequenceNode:
		parts := make([]string, 0, len(n.Content))
		for _, item := range Items(n) {
			if s := Text(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

// WithString returns a shallow copy of mapping n in which the value under
// key is replaced with a plain string scalar. Absent keys are appended.
func WithString(n *yaml.Node, key, value string) *yaml.Node {
	n = Resolve(n)
	scalar := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
	if n == nil || n.Kind != yaml.MappingNode {
		return n
	}
	ret := *n
	ret.Content = make([]*yaml.Node, len(n.Content))
	copy(ret.Content, n.Content)
	for i := 0; i+1 < len(ret.Content); i += 2 {
		if ret.Content[i].Value == key {
			ret.Content[i+1] = scalar
			return &ret
		}
	}
	ret.Content = append(ret.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		scalar,
	)
	return &ret
}

package csr

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/apparentlymart/riscv-docgen/yamlnode"
)

func mustParse(t *testing.T, src string) *yaml.Node {
	t.Helper()
	n, err := yamlnode.Parse([]byte(src))
	if err != nil {
		t.Fatalf("invalid test YAML: %s", err)
	}
	return n
}

// mustSources parses a mapping of register name to register node.
func mustSources(t *testing.T, src string) []Source {
	t.Helper()
	var ret []Source
	for _, p := range yamlnode.Pairs(mustParse(t, src)) {
		ret = append(ret, Source{Name: p.Key, Node: p.Value})
	}
	return ret
}

func mustExtract(t *testing.T, src string) *Register {
	t.Helper()
	srcs := mustSources(t, src)
	if len(srcs) != 1 {
		t.Fatalf("fixture has %d registers, want 1", len(srcs))
	}
	x := &Extractor{Size: RV32}
	reg, err := x.Extract(srcs[0].Name, srcs[0].Node)
	if err != nil {
		t.Fatalf("extraction failed: %s", err)
	}
	return reg
}

// checkCoverage verifies that fields are lsb-ordered, pairwise disjoint and
// together cover [0, size) without gaps.
func checkCoverage(t *testing.T, fields []Field, size int) {
	t.Helper()
	next := 0
	for _, f := range fields {
		if f.LSB != next {
			t.Errorf("field %q starts at bit %d, want %d", f.Name, f.LSB, next)
		}
		if f.MSB < f.LSB {
			t.Errorf("field %q has msb %d below lsb %d", f.Name, f.MSB, f.LSB)
		}
		next = f.MSB + 1
	}
	if next != size {
		t.Errorf("fields end at bit %d, want %d", next, size)
	}
}

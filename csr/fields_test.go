package csr

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/apparentlymart/riscv-docgen/yamlnode"
)

func TestSynthesizeFieldsEmptyList(t *testing.T) {
	n := mustParse(t, `
accessible: true
fields: []
shadow_type: rw
msb: 15
lsb: 4
type:
  ro_constant: 0x5
`)
	gen := Generalized{Name: "mcustom", Description: "Custom register."}
	got, err := synthesizeFields("mcustom", gen, view{name: "rv32", node: n, width: 32}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	want := []Field{{
		Name:        "mcustom",
		Legal:       LegalValue{Kind: LegalExact, Value: 0x5, Constraint: "ro_constant"},
		Bitmask:     "0x0",
		MSB:         15,
		LSB:         4,
		Width:       12,
		Description: "Custom register.",
		Access:      "RW",
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("wrong fields (-want +got):\n%s", diff)
	}
}

func TestSynthesizeFieldsDefaultRange(t *testing.T) {
	n := mustParse(t, "accessible: true\nfields: []\n")
	gen := Generalized{Name: "mscratch"}
	got, err := synthesizeFields("mscratch", gen, view{name: "rv32", node: n, width: 32}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d fields, want 1", len(got))
	}
	f := got[0]
	if f.MSB != 31 || f.LSB != 0 || f.Width != 0 {
		t.Errorf("got [%d:%d] width %d, want [31:0] with unspecified width", f.MSB, f.LSB, f.Width)
	}
	if f.Legal.Kind != LegalUnspecified {
		t.Errorf("got legal kind %s, want unspecified", f.Legal.Kind)
	}
}

func TestReservedMarkers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []bitRange
	}{
		{"single marker", "[9, 10, 11]", []bitRange{{LSB: 9, MSB: 11}}},
		{"nested markers", "[[2], [4, 5], [9, 10]]", []bitRange{{2, 2}, {4, 5}, {9, 10}}},
		{"empty marker skipped", "[[2], [], [23, 30]]", []bitRange{{2, 2}, {23, 30}}},
		{"bare bit among markers", "[[2, 3], 7]", []bitRange{{2, 3}, {7, 7}}},
		{"reversed marker", "[[30, 23]]", []bitRange{{23, 30}}},
		{"empty", "[]", nil},
		{"not numeric", "[[a, b]]", nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			n := mustParse(t, "m: "+test.src+"\n")
			got := reservedMarkers(yamlnode.Lookup(n, "m"))
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("wrong markers (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFillHoles(t *testing.T) {
	fields := []Field{
		{Name: "b", MSB: 7, LSB: 4, Width: 4},
		{Name: "a", MSB: 1, LSB: 0, Width: 2},
	}
	got := FillHoles(fields, 16)

	var names []string
	for _, f := range got {
		names = append(names, f.Name)
	}
	want := []string{"a", "Reserved_2", "b", "Reserved_8"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("wrong field order (-want +got):\n%s", diff)
	}
	checkCoverage(t, got, 16)

	for _, f := range got {
		if f.Reserved() && (f.Description != "Reserved" || f.Legal.Kind != LegalUnspecified) {
			t.Errorf("reserved field %q is %#v", f.Name, f)
		}
	}
}

func TestFillHolesGrowsToHighestField(t *testing.T) {
	got := FillHoles([]Field{{Name: "hi", MSB: 39, LSB: 32, Width: 8}}, 32)
	checkCoverage(t, got, 40)
}

func TestFillHolesKeepsOverlaps(t *testing.T) {
	fields := []Field{
		{Name: "a", MSB: 7, LSB: 0, Width: 8},
		{Name: "b", MSB: 5, LSB: 4, Width: 2},
	}
	got := FillHoles(fields, 8)
	if len(got) != 2 {
		t.Fatalf("got %d fields, want the 2 overlapping ones untouched", len(got))
	}
}

func TestFieldBits(t *testing.T) {
	if got := (Field{MSB: 3, LSB: 3, Width: 1}).Bits(); got != "3" {
		t.Errorf("one-bit field renders as %q", got)
	}
	if got := (Field{MSB: 7, LSB: 4, Width: 4}).Bits(); got != "[7:4]" {
		t.Errorf("multi-bit field renders as %q", got)
	}
	if got := (Field{MSB: 31, LSB: 0}).Bits(); got != "[31:0]" {
		t.Errorf("field of unspecified width renders as %q", got)
	}
}

package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/apparentlymart/riscv-docgen/csr"
	"github.com/apparentlymart/riscv-docgen/isa"
)

func TestGeneratorCSR(t *testing.T) {
	dir := t.TempDir()
	doc := &csr.Document{Name: "hart0"}
	m := &csr.MemoryMap{Name: "hart0"}
	m.AddAddressBlock(testAddressBlock())
	doc.AddMemoryMap(m)

	g := &Generator{Target: dir, Renderer: RST{}}
	written, err := g.GenerateCSR(doc)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []string{filepath.Join(dir, "csr", "csr.rst")}
	if diff := cmp.Diff(want, written); diff != "" {
		t.Errorf("wrong files (-want +got):\n%s", diff)
	}

	src, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatalf("can't read generated file: %s", err)
	}
	expect, _ := RST{}.AddressBlock(testAddressBlock())
	if string(src) != expect {
		t.Errorf("file content differs from the rendered block")
	}
}

func TestGeneratorISA(t *testing.T) {
	dir := t.TempDir()
	m := &isa.InstructionMap{Name: "ISA"}
	m.AddInstructionBlock(testInstructionBlock())
	doc := &isa.Document{Name: "ISA"}
	doc.AddInstructionMap(m)

	g := &Generator{Target: dir, Renderer: Markdown{}}
	written, err := g.GenerateISA(doc)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	want := []string{filepath.Join(dir, "isa", "isa.md")}
	if diff := cmp.Diff(want, written); diff != "" {
		t.Errorf("wrong files (-want +got):\n%s", diff)
	}
	src, err := os.ReadFile(want[0])
	if err != nil {
		t.Fatalf("can't read generated file: %s", err)
	}
	if !strings.Contains(string(src), "### RV32I") {
		t.Errorf("generated file is missing the instruction section:\n%s", src)
	}
}

func TestGeneratorTargetIsFile(t *testing.T) {
	target := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	doc := csr.BuildDocument("hart0", nil)

	g := &Generator{Target: target, Renderer: JSON{}}
	if _, err := g.GenerateCSR(doc); err == nil {
		t.Fatalf("succeeded writing below a regular file")
	}
}

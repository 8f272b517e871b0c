package main

import (
	"bytes"
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/juju/errors"

	"github.com/apparentlymart/riscv-docgen/csr"
)

const csrYAML = `
hart0:
  supported_xlen: [32]
  mstatus:
    description: Machine status.
    address: 0x300
    priv_mode: M
    reset-val: 0x1800
    rv32:
      accessible: true
      fields: [mie, [[0, 2]], [[4, 31]]]
      mie:
        description: machine interrupt enable
        msb: 3
        lsb: 3
        shadow_type: rw
        type:
          warl: ["0x0 - 0x1"]
  pmpaddr0:
    description: Physical memory protection address register pmpaddr0.
    address: 0x3b0
    priv_mode: M
    rv32: {accessible: true, fields: [], msb: 31, lsb: 0, shadow_type: rw}
  pmpaddr1:
    description: Physical memory protection address register pmpaddr1.
    address: 0x3b1
    priv_mode: M
    rv32: {accessible: true, fields: [], msb: 31, lsb: 0, shadow_type: rw}
  pmpaddr2:
    description: Physical memory protection address register pmpaddr2.
    address: 0x3b2
    priv_mode: M
    rv32: {accessible: true, fields: [], msb: 31, lsb: 0, shadow_type: rw}
`

const isaYAML = `
RV32I:
  Subset_Name: RV32I Base Integer Instruction Set
  Instructions:
    Loads:
      LW:
        Description: load word
        Format: lw rd, imm(rs1)
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("can't read %s: %s", path, err)
	}
	return string(src)
}

func TestRunCSR(t *testing.T) {
	src := writeTemp(t, "csr.yaml", csrYAML)
	target := t.TempDir()

	err := run(context.Background(), "csr", []string{"-src", src, "-target", target, "-jobs", "2"}, io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	out := readFile(t, filepath.Join(target, "csr", "csr.rst"))
	for _, want := range []string{
		"`mstatus`_",
		"`pmpaddr[i]`_",
		"0x3b0-0x3b2",
		":Reset Value: 0x00001800",
		"| Reserved_4 ",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "pmpaddr1") {
		t.Errorf("register family was not folded:\n%s", out)
	}
}

func TestRunCSRWithoutFactorizing(t *testing.T) {
	src := writeTemp(t, "csr.yaml", csrYAML)
	target := t.TempDir()

	err := run(context.Background(), "csr", []string{"-src", src, "-target", target, "-format", "md", "-factorize=false"}, io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	out := readFile(t, filepath.Join(target, "csr", "csr.md"))
	if !strings.Contains(out, "### pmpaddr1\n") {
		t.Errorf("output does not document pmpaddr1 on its own:\n%s", out)
	}
}

func TestRunCSRStructuralError(t *testing.T) {
	src := writeTemp(t, "broken.yaml", "hart0:\n  supported_xlen: [32]\n  mstatus:\n    address: 0x300\n    rv64: {accessible: true}\n")

	err := run(context.Background(), "csr", []string{"-src", src, "-target", t.TempDir()}, io.Discard, io.Discard)
	if !csr.IsStructural(err) {
		t.Fatalf("got error %v, want a structural error", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, src) || !strings.Contains(msg, "mstatus") {
		t.Errorf("error %q does not name the file and the register", msg)
	}
}

func TestRunISA(t *testing.T) {
	src := writeTemp(t, "isa.yaml", isaYAML)
	target := t.TempDir()

	err := run(context.Background(), "isa", []string{"-src", src, "-target", target, "-format", "json"}, io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	out := readFile(t, filepath.Join(target, "isa", "isa.json"))
	if !strings.Contains(out, `"lw rd, imm(rs1)"`) {
		t.Errorf("output is missing the instruction format:\n%s", out)
	}
}

func TestRunPorts(t *testing.T) {
	sv := writeTemp(t, "ras.sv", "module ras (\n    // Subsystem Clock - SUBSYSTEM\n    input logic clk_i,\n    input logic flush_bp_i\n);\n")
	out := t.TempDir()

	err := run(context.Background(), "ports", []string{"-out", out, "-label", "CV32A6", sv}, io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	got := readFile(t, filepath.Join(out, "port_ras.rst"))
	for _, want := range []string{
		".. _CV32A6_ras_ports:",
		"   * - ``clk_i``",
		"|   ``flush_bp_i`` input is tied to zero",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output does not contain %q:\n%s", want, got)
		}
	}
}

func TestRunDump(t *testing.T) {
	src := writeTemp(t, "isa.yaml", isaYAML)
	var stdout bytes.Buffer

	err := run(context.Background(), "dump", []string{"-kind", "isa", "-src", src}, &stdout, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(stdout.String(), `"LW"`) {
		t.Errorf("dump does not show the instruction:\n%s", stdout.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	ctx := context.Background()

	if err := run(ctx, "frobnicate", nil, io.Discard, io.Discard); !errors.IsNotSupported(err) {
		t.Errorf("unknown command gave %v", err)
	}
	if err := run(ctx, "csr", []string{"-h"}, io.Discard, io.Discard); errors.Cause(err) != flag.ErrHelp {
		t.Errorf("-h gave %v", err)
	}
	if err := run(ctx, "csr", nil, io.Discard, io.Discard); err == nil {
		t.Errorf("missing -src was accepted")
	}
	if err := run(ctx, "csr", []string{"-src", "x.yaml", "-format", "docx"}, io.Discard, io.Discard); !errors.IsNotValid(errors.Cause(err)) {
		t.Errorf("unknown format gave %v", err)
	}
	if err := run(ctx, "dump", []string{"-kind", "soc", "-src", "x.yaml"}, io.Discard, io.Discard); !errors.IsNotValid(err) {
		t.Errorf("unknown dump kind gave %v", err)
	}
	if err := run(ctx, "csr", []string{"-src", "x.yaml", "-log", "<root>=LOUD"}, io.Discard, io.Discard); err == nil {
		t.Errorf("invalid -log setting was accepted")
	}
}

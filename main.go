// Command riscv-docgen generates reference documentation for RISC-V
// control and status registers, instruction sets and HDL module ports from
// their machine-readable descriptions.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/juju/errors"
	"github.com/juju/loggo"

	"github.com/apparentlymart/riscv-docgen/csr"
	"github.com/apparentlymart/riscv-docgen/hdlport"
	"github.com/apparentlymart/riscv-docgen/isa"
	"github.com/apparentlymart/riscv-docgen/render"
)

var logger = loggo.GetLogger("riscvdoc")

func usage(w io.Writer) {
	fmt.Fprintf(w, "usage: riscv-docgen <command> [flags]\n\n")
	fmt.Fprintf(w, "Commands are:\n\n")
	fmt.Fprintf(w, "csr      document the CSRs of a riscv-config description\n")
	fmt.Fprintf(w, "isa      document the instruction blocks of an ISA description\n")
	fmt.Fprintf(w, "ports    tabulate the IO ports of SystemVerilog modules\n")
	fmt.Fprintf(w, "dump     print the extracted model of a description\n")
}

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	err := run(context.Background(), cmd, args, os.Stdout, os.Stderr)
	switch {
	case err == nil:
	case errors.Cause(err) == flag.ErrHelp:
		os.Exit(0)
	case errors.IsNotSupported(err):
		fmt.Fprintf(os.Stderr, "error: %s\n\n", err)
		usage(os.Stderr)
		os.Exit(2)
	default:
		fmt.Fprintf(os.Stderr, "riscv-docgen %s: %s\n", cmd, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, args []string, stdout, stderr io.Writer) error {
	switch cmd {
	case "csr":
		return runCSR(ctx, args, stderr)
	case "isa":
		return runISA(args, stderr)
	case "ports":
		return runPorts(args, stderr)
	case "dump":
		return runDump(ctx, args, stdout, stderr)
	default:
		return errors.NotSupportedf("command %q", cmd)
	}
}

func runCSR(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseCSROptions(args, stderr)
	if err != nil {
		return err
	}
	if err := opts.configureLogging(); err != nil {
		return err
	}
	r, err := render.ForFormat(opts.format)
	if err != nil {
		return errors.Trace(err)
	}

	doc, err := loadCSR(ctx, opts.src, opts.factorize, opts.jobs)
	if err != nil {
		return err
	}
	g := &render.Generator{Target: opts.target, Renderer: r}
	written, err := g.GenerateCSR(doc)
	if err != nil {
		return errors.Trace(err)
	}
	logger.Infof("documented hart %s in %d files", doc.Name, len(written))
	return nil
}

func loadCSR(ctx context.Context, path string, factorize bool, jobs int) (*csr.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()

	hart, err := csr.Load(f)
	if err != nil {
		return nil, errors.Annotatef(err, "loading %s", path)
	}
	if factorize {
		before := len(hart.Registers)
		hart.Registers = csr.Factorize(hart.Registers)
		logger.Debugf("folded %d register nodes into %d", before, len(hart.Registers))
	}
	doc, err := hart.Document(ctx, jobs)
	if err != nil {
		return nil, errors.Annotatef(err, "extracting registers from %s", path)
	}
	return doc, nil
}

func runISA(args []string, stderr io.Writer) error {
	opts, err := parseISAOptions(args, stderr)
	if err != nil {
		return err
	}
	if err := opts.configureLogging(); err != nil {
		return err
	}
	r, err := render.ForFormat(opts.format)
	if err != nil {
		return errors.Trace(err)
	}

	doc, err := loadISA(opts.src)
	if err != nil {
		return err
	}
	g := &render.Generator{Target: opts.target, Renderer: r}
	if _, err := g.GenerateISA(doc); err != nil {
		return errors.Trace(err)
	}
	return nil
}

func loadISA(path string) (*isa.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()

	doc, err := isa.Load(f)
	if err != nil {
		return nil, errors.Annotatef(err, "loading %s", path)
	}
	return doc, nil
}

func runPorts(args []string, stderr io.Writer) error {
	opts, err := parsePortsOptions(args, stderr)
	if err != nil {
		return err
	}
	if err := opts.configureLogging(); err != nil {
		return err
	}

	for _, path := range opts.files {
		m, err := scanModule(path)
		if err != nil {
			return err
		}
		if _, err := hdlport.WriteFile(opts.out, opts.label, m); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func scanModule(path string) (*hdlport.Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()

	logger.Infof("reading module %s", path)
	m, err := hdlport.Scan(hdlport.ModuleName(path), f, hdlport.DefaultTieOffs)
	if err != nil {
		return nil, errors.Annotatef(err, "scanning %s", path)
	}
	return m, nil
}

func runDump(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseDumpOptions(args, stderr)
	if err != nil {
		return err
	}
	if err := opts.configureLogging(); err != nil {
		return err
	}

	var model interface{}
	switch opts.kind {
	case "csr":
		model, err = loadCSR(ctx, opts.src, false, 0)
	case "isa":
		model, err = loadISA(opts.src)
	}
	if err != nil {
		return err
	}

	cfg := spew.ConfigState{
		Indent:                  "  ",
		DisablePointerAddresses: true,
		DisableCapacities:       true,
		SortKeys:                true,
	}
	cfg.Fdump(stdout, model)
	return nil
}

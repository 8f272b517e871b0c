package main

import (
	"flag"
	"io"
	"runtime"

	"github.com/juju/errors"
	"github.com/juju/loggo"
)

const defaultLogConfig = "<root>=WARNING"

type commonOptions struct {
	logConfig string
}

func (o *commonOptions) bind(fs *flag.FlagSet) {
	fs.StringVar(&o.logConfig, "log", defaultLogConfig, "logger levels, such as \"<root>=INFO;riscvdoc.csr=DEBUG\"")
}

func (o *commonOptions) configureLogging() error {
	return errors.Annotate(loggo.ConfigureLoggers(o.logConfig), "invalid -log setting")
}

type csrOptions struct {
	commonOptions
	src       string
	target    string
	format    string
	factorize bool
	jobs      int
}

type isaOptions struct {
	commonOptions
	src    string
	target string
	format string
}

type portsOptions struct {
	commonOptions
	out   string
	label string
	files []string
}

type dumpOptions struct {
	commonOptions
	kind string
	src  string
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parseCSROptions(args []string, stderr io.Writer) (*csrOptions, error) {
	o := &csrOptions{}
	fs := newFlagSet("csr", stderr)
	o.bind(fs)
	fs.StringVar(&o.src, "src", "", "riscv-config YAML file describing the CSRs")
	fs.StringVar(&o.target, "target", "build", "output directory")
	fs.StringVar(&o.format, "format", "rst", "output format: rst, md or json")
	fs.BoolVar(&o.factorize, "factorize", true, "fold indexed register families such as pmpaddr0-15 into one entry")
	fs.IntVar(&o.jobs, "jobs", runtime.GOMAXPROCS(0), "number of registers extracted in parallel")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.src == "" {
		return nil, errors.New("-src is required")
	}
	return o, nil
}

func parseISAOptions(args []string, stderr io.Writer) (*isaOptions, error) {
	o := &isaOptions{}
	fs := newFlagSet("isa", stderr)
	o.bind(fs)
	fs.StringVar(&o.src, "src", "", "YAML file describing the instruction blocks")
	fs.StringVar(&o.target, "target", "build", "output directory")
	fs.StringVar(&o.format, "format", "rst", "output format: rst, md or json")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.src == "" {
		return nil, errors.New("-src is required")
	}
	return o, nil
}

func parsePortsOptions(args []string, stderr io.Writer) (*portsOptions, error) {
	o := &portsOptions{}
	fs := newFlagSet("ports", stderr)
	o.bind(fs)
	fs.StringVar(&o.out, "out", ".", "output directory for the port tables")
	fs.StringVar(&o.label, "label", "CVA6", "prefix of the RST reference labels")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.files = fs.Args()
	if len(o.files) == 0 {
		return nil, errors.New("no SystemVerilog files given")
	}
	return o, nil
}

func parseDumpOptions(args []string, stderr io.Writer) (*dumpOptions, error) {
	o := &dumpOptions{}
	fs := newFlagSet("dump", stderr)
	o.bind(fs)
	fs.StringVar(&o.kind, "kind", "csr", "description kind: csr or isa")
	fs.StringVar(&o.src, "src", "", "YAML file to dump")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.src == "" {
		return nil, errors.New("-src is required")
	}
	if o.kind != "csr" && o.kind != "isa" {
		return nil, errors.NotValidf("description kind %q", o.kind)
	}
	return o, nil
}

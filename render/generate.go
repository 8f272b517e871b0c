package render

import (
	"os"
	"path/filepath"

	"github.com/juju/errors"

	"github.com/apparentlymart/riscv-docgen/csr"
	"github.com/apparentlymart/riscv-docgen/isa"
)

// Generator writes one file per block of a document below Target, in the
// "csr" and "isa" subdirectories.
type Generator struct {
	Target   string
	Renderer Renderer
}

// GenerateCSR writes every address block of doc and returns the paths it
// wrote, in document order.
func (g *Generator) GenerateCSR(doc *csr.Document) ([]string, error) {
	dir := filepath.Join(g.Target, "csr")
	var written []string
	for _, m := range doc.MemoryMaps {
		for _, block := range m.AddressBlocks {
			src, err := g.Renderer.AddressBlock(block)
			if err != nil {
				return written, errors.Annotatef(err, "rendering address block %q", block.Name)
			}
			path, err := g.write(dir, block.Name, src)
			if err != nil {
				return written, errors.Trace(err)
			}
			written = append(written, path)
		}
	}
	return written, nil
}

// GenerateISA writes every instruction block of doc and returns the paths
// it wrote, in document order.
func (g *Generator) GenerateISA(doc *isa.Document) ([]string, error) {
	dir := filepath.Join(g.Target, "isa")
	var written []string
	for _, m := range doc.Maps {
		for _, block := range m.Blocks {
			src, err := g.Renderer.InstructionBlock(block)
			if err != nil {
				return written, errors.Annotatef(err, "rendering instruction block %q", block.Name)
			}
			path, err := g.write(dir, block.Name, src)
			if err != nil {
				return written, errors.Trace(err)
			}
			written = append(written, path)
		}
	}
	return written, nil
}

func (g *Generator) write(dir, name, src string) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", errors.Annotatef(err, "creating %s", dir)
	}
	path := filepath.Join(dir, fileIdent(name)+g.Renderer.Suffix())
	logger.Infof("writing file %s", path)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return "", errors.Annotatef(err, "writing %s", path)
	}
	return path, nil
}

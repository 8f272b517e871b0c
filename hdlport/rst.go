package hdlport

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/juju/errors"
)

// WriteRST writes m as a list-table preceded by the reference label
// "<label>_<module>_ports", followed by the tie-off notes as line blocks.
func WriteRST(w io.Writer, label string, m *Module) error {
	var b strings.Builder

	fmt.Fprintf(&b, ".. _%s_%s_ports:\n\n", label, m.Name)
	fmt.Fprintf(&b, ".. list-table:: %s module IO ports\n", m.Name)
	b.WriteString("   :header-rows: 1\n\n")
	b.WriteString("   * - Signal\n")
	b.WriteString("     - IO\n")
	b.WriteString("     - Description\n")
	b.WriteString("     - Connection\n")
	b.WriteString("     - Type\n")
	for _, p := range m.Ports {
		fmt.Fprintf(&b, "\n   * - ``%s``\n", p.Name)
		fmt.Fprintf(&b, "     - %s\n", p.Direction)
		fmt.Fprintf(&b, "     - %s\n", p.Description)
		fmt.Fprintf(&b, "     - %s\n", p.Connection)
		fmt.Fprintf(&b, "     - %s\n", p.Type)
	}
	b.WriteString("\n")

	for _, note := range m.Notes {
		fmt.Fprintf(&b, "| %s,\n", note.Reason)
		for _, line := range note.Lines {
			fmt.Fprintf(&b, "|   %s\n", line)
		}
	}

	_, err := io.WriteString(w, b.String())
	return errors.Trace(err)
}

// WriteFile writes the table of m to "port_<module>.rst" in dir and returns
// the path it wrote.
func WriteFile(dir, label string, m *Module) (string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", errors.Annotatef(err, "creating %s", dir)
	}
	path := filepath.Join(dir, "port_"+m.Name+".rst")
	f, err := os.Create(path)
	if err != nil {
		return "", errors.Trace(err)
	}
	logger.Infof("writing file %s", path)
	if err := WriteRST(f, label, m); err != nil {
		f.Close()
		return "", errors.Annotatef(err, "writing %s", path)
	}
	return path, errors.Trace(f.Close())
}

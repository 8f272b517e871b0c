// Package hdlport extracts the port lists of SystemVerilog modules and
// documents them as reStructuredText tables.
package hdlport

import (
	"bufio"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/juju/errors"
	"github.com/juju/loggo"
)

var logger = loggo.GetLogger("riscvdoc.hdlport")

// unknown is shown for a port that has no description comment.
const unknown = "none"

// Port is one input or output of a module.
type Port struct {
	Name        string
	Direction   string // "in" or "out"
	Type        string
	Description string
	Connection  string
}

// TieOffNote groups the tied-off ports that share a reason.
type TieOffNote struct {
	Reason string
	Lines  []string
}

// Module is the documented interface of one SystemVerilog module.
type Module struct {
	Name  string
	Ports []Port
	Notes []TieOffNote
}

func (m *Module) addTieOff(to TieOff, line string) {
	for i := range m.Notes {
		if m.Notes[i].Reason == to.Reason {
			m.Notes[i].Lines = append(m.Notes[i].Lines, line)
			return
		}
	}
	m.Notes = append(m.Notes, TieOffNote{Reason: to.Reason, Lines: []string{line}})
}

var (
	portPattern    = regexp.MustCompile(`^ +(in|out)put +(\S*(?: +.* *|)) (\S*)$`)
	commentPattern = regexp.MustCompile(`^ +// (.*) - (\S*)$`)
)

// ModuleName derives a module name from the path of its source file.
func ModuleName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".sv")
}

// Scan reads a module's source line by line. A port declaration takes its
// description and connection from the last "// description - connection"
// comment since the previous port. Ports listed in tieOffs, by connection
// or by name, become tie-off notes instead of table rows.
func Scan(name string, r io.Reader, tieOffs TieOffs) (*Module, error) {
	m := &Module{Name: name}
	desc, conn := unknown, unknown

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if d := commentPattern.FindStringSubmatch(line); d != nil {
			desc, conn = d[1], d[2]
			continue
		}
		e := portPattern.FindStringSubmatch(line)
		if e == nil {
			continue
		}

		port := Port{
			Name:        strings.ReplaceAll(e[3], ",", ""),
			Direction:   e[1],
			Type:        strings.ReplaceAll(e[2], " ", ""),
			Description: desc,
			Connection:  conn,
		}
		desc, conn = unknown, unknown

		if to, ok := tieOffs.lookup(port); ok {
			logger.Debugf("%s: port %s is tied to %s", name, port.Name, to.Value)
			m.addTieOff(to, "``"+port.Name+"`` "+port.Direction+"put is tied to "+to.Value)
			continue
		}
		m.Ports = append(m.Ports, port)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Annotatef(err, "reading module %s", name)
	}
	return m, nil
}

package render

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/apparentlymart/riscv-docgen/csr"
	"github.com/apparentlymart/riscv-docgen/isa"
)

// RST renders reStructuredText with grid tables.
type RST struct{}

func (RST) Suffix() string {
	return ".rst"
}

func (RST) AddressBlock(b *csr.AddressBlock) (string, error) {
	d := &rstDoc{}
	d.title(b.Name)

	regs := b.Visible()
	d.heading("Register Summary", '-')
	summary := make([][]string, 0, len(regs))
	for _, reg := range regs {
		summary = append(summary, []string{reg.Address, rstRef(reg.Name), reg.Description})
	}
	d.table(registerSummaryHeader, summary)

	d.heading("Register Description", '-')
	for _, reg := range regs {
		d.heading(reg.Name, '~')
		d.field("Address", reg.Address)
		if rv := reg.PaddedResetValue(); rv != "" {
			d.field("Reset Value", rv)
		}
		d.field("Privilege Mode", reg.Access)
		d.field("Description", oneLine(reg.Description))
		d.blank()

		if len(reg.Fields) == 0 {
			continue
		}
		rows := make([][]string, 0, len(reg.Fields))
		for _, f := range reg.Fields {
			rows = append(rows, fieldRow(f))
		}
		d.table(fieldTableHeader, rows)
	}
	logger.Tracef("rendered %d registers of block %q as RST", len(regs), b.Name)
	return d.String(), nil
}

func (RST) InstructionBlock(b *isa.InstructionBlock) (string, error) {
	d := &rstDoc{}
	d.title(b.Name)

	d.heading("Instruction Summary", '-')
	summary := make([][]string, 0, len(b.Instructions))
	for _, inst := range b.Instructions {
		summary = append(summary, []string{inst.ExtensionName, rstRef(inst.Key), inst.Description})
	}
	d.table(instrSummaryHeader, summary)

	d.heading("Instructions", '-')
	for _, inst := range b.Instructions {
		if len(inst.Variants) == 0 {
			continue
		}
		d.heading(inst.Key, '~')
		if desc := oneLine(inst.Description); desc != "" {
			d.WriteString(desc)
			d.WriteString("\n\n")
		}
		rows := make([][]string, 0, len(inst.Variants))
		for _, v := range inst.Variants {
			rows = append(rows, variantRow(v))
		}
		d.table(variantTableHeader, rows)
	}
	return d.String(), nil
}

func rstRef(name string) string {
	return "`" + name + "`_"
}

// rstDoc accumulates one reStructuredText document.
type rstDoc struct {
	strings.Builder
}

func (d *rstDoc) blank() {
	d.WriteByte('\n')
}

// title writes a document title with over- and underline.
func (d *rstDoc) title(s string) {
	rule := strings.Repeat("=", headingWidth(s))
	d.WriteString(rule + "\n" + s + "\n" + rule + "\n\n")
}

func (d *rstDoc) heading(s string, ch byte) {
	d.WriteString(s + "\n" + strings.Repeat(string(ch), headingWidth(s)) + "\n\n")
}

func headingWidth(s string) int {
	if w := runewidth.StringWidth(s); w > 0 {
		return w
	}
	return 1
}

func (d *rstDoc) field(name, value string) {
	d.WriteString(":" + name + ":")
	if value != "" {
		d.WriteString(" " + value)
	}
	d.WriteByte('\n')
}

// table writes a grid table. Cells may span several lines; column widths
// are measured in display cells so that wide runes stay aligned.
func (d *rstDoc) table(header []string, rows [][]string) {
	cols := len(header)
	widths := make([]int, cols)
	measure := func(row []string) [][]string {
		cells := make([][]string, cols)
		for i := range cells {
			var text string
			if i < len(row) {
				text = row[i]
			}
			cells[i] = cellLines(text)
			for _, line := range cells[i] {
				if w := runewidth.StringWidth(line); w > widths[i] {
					widths[i] = w
				}
			}
		}
		return cells
	}

	head := measure(header)
	body := make([][][]string, len(rows))
	for i, row := range rows {
		body[i] = measure(row)
	}
	for i := range widths {
		if widths[i] == 0 {
			widths[i] = 1
		}
	}

	d.WriteString(gridRule(widths, '-'))
	d.gridRow(head, widths)
	d.WriteString(gridRule(widths, '='))
	for _, cells := range body {
		d.gridRow(cells, widths)
		d.WriteString(gridRule(widths, '-'))
	}
	d.blank()
}

func (d *rstDoc) gridRow(cells [][]string, widths []int) {
	height := 1
	for _, c := range cells {
		if len(c) > height {
			height = len(c)
		}
	}
	for line := 0; line < height; line++ {
		d.WriteByte('|')
		for i, c := range cells {
			var text string
			if line < len(c) {
				text = c[line]
			}
			d.WriteString(" " + runewidth.FillRight(text, widths[i]) + " |")
		}
		d.WriteByte('\n')
	}
}

func gridRule(widths []int, ch byte) string {
	var b strings.Builder
	b.WriteByte('+')
	for _, w := range widths {
		b.WriteString(strings.Repeat(string(ch), w+2))
		b.WriteByte('+')
	}
	b.WriteByte('\n')
	return b.String()
}

func cellLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\t", "    ")
	s = strings.TrimRight(s, " \n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return lines
}

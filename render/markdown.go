package render

import (
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/apparentlymart/riscv-docgen/csr"
	"github.com/apparentlymart/riscv-docgen/isa"
)

// Markdown renders GitHub-flavored Markdown. Summary tables link to the
// per-register and per-instruction sections through heading anchors.
type Markdown struct{}

func (Markdown) Suffix() string {
	return ".md"
}

func (Markdown) AddressBlock(b *csr.AddressBlock) (string, error) {
	d := &mdDoc{}
	d.heading(1, b.Name)

	regs := b.Visible()
	d.heading(2, "Register Summary")
	summary := make([][]string, 0, len(regs))
	for _, reg := range regs {
		summary = append(summary, []string{reg.Address, mdLink(reg.Name), reg.Description})
	}
	d.table(registerSummaryHeader, summary)

	d.heading(2, "Register Description")
	for _, reg := range regs {
		d.heading(3, reg.Name)
		d.item("Address", reg.Address)
		if rv := reg.PaddedResetValue(); rv != "" {
			d.item("Reset Value", rv)
		}
		d.item("Privilege Mode", reg.Access)
		d.item("Description", oneLine(reg.Description))

		if len(reg.Fields) == 0 {
			continue
		}
		rows := make([][]string, 0, len(reg.Fields))
		for _, f := range reg.Fields {
			rows = append(rows, fieldRow(f))
		}
		d.table(fieldTableHeader, rows)
	}
	logger.Tracef("rendered %d registers of block %q as Markdown", len(regs), b.Name)
	return d.String(), nil
}

func (Markdown) InstructionBlock(b *isa.InstructionBlock) (string, error) {
	d := &mdDoc{}
	d.heading(1, b.Name)

	d.heading(2, "Instruction Summary")
	summary := make([][]string, 0, len(b.Instructions))
	for _, inst := range b.Instructions {
		summary = append(summary, []string{inst.ExtensionName, mdLink(inst.Key), inst.Description})
	}
	d.table(instrSummaryHeader, summary)

	d.heading(2, "Instructions")
	for _, inst := range b.Instructions {
		if len(inst.Variants) == 0 {
			continue
		}
		d.heading(3, inst.Key)
		if desc := oneLine(inst.Description); desc != "" {
			d.WriteString("\n" + desc + "\n")
		}
		rows := make([][]string, 0, len(inst.Variants))
		for _, v := range inst.Variants {
			rows = append(rows, variantRow(v))
		}
		d.table(variantTableHeader, rows)
	}
	return d.String(), nil
}

func mdLink(heading string) string {
	return "[" + heading + "](#" + anchor(heading) + ")"
}

// mdDoc accumulates one Markdown document.
type mdDoc struct {
	strings.Builder
}

func (d *mdDoc) heading(level int, s string) {
	if d.Len() > 0 {
		d.WriteByte('\n')
	}
	d.WriteString(strings.Repeat("#", level) + " " + s + "\n")
}

func (d *mdDoc) item(name, value string) {
	d.WriteString("\n- **" + name + ":**")
	if value != "" {
		d.WriteString(" " + value)
	}
}

func (d *mdDoc) table(header []string, rows [][]string) {
	d.WriteString("\n\n")
	t := tablewriter.NewWriter(d)
	t.SetHeader(header)
	t.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	t.SetCenterSeparator("|")
	t.SetAutoWrapText(false)
	t.SetAutoFormatHeaders(false)
	t.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, row := range rows {
		cells := make([]string, len(header))
		for i := range cells {
			if i < len(row) {
				cells[i] = mdCell(row[i])
			}
		}
		t.Append(cells)
	}
	t.Render()
}

// mdCell keeps a value on one table line and escapes the column separator.
func mdCell(s string) string {
	return strings.ReplaceAll(oneLine(s), "|", `\|`)
}

package isa

// Variant is one (operation, instruction) entry of an instruction block,
// as one row of its documentation table.
type Variant struct {
	OperationName   string `json:"operation_name"`
	Name            string `json:"name"`
	Format          string `json:"format"`
	Description     string `json:"description"`
	Pseudocode      string `json:"pseudocode"`
	InvalidValues   string `json:"invalid_values"`
	ExceptionRaised string `json:"exception_raised"`
}

// Instruction documents one instruction block, typically an extension
// subset. Each variant is one row; the per-column accessors return the
// parallel sequences of the rows, which always have equal length.
type Instruction struct {
	Key           string    `json:"key"`
	ExtensionName string    `json:"extension_name"`
	Description   string    `json:"description"`
	Standard      Standard  `json:"standard"`
	Variants      []Variant `json:"variants"`
}

func (i *Instruction) column(get func(v *Variant) string) []string {
	ret := make([]string, len(i.Variants))
	for n := range i.Variants {
		ret[n] = get(&i.Variants[n])
	}
	return ret
}

func (i *Instruction) OperationNames() []string {
	return i.column(func(v *Variant) string { return v.OperationName })
}

func (i *Instruction) Names() []string {
	return i.column(func(v *Variant) string { return v.Name })
}

func (i *Instruction) Formats() []string {
	return i.column(func(v *Variant) string { return v.Format })
}

func (i *Instruction) Descriptions() []string {
	return i.column(func(v *Variant) string { return v.Description })
}

func (i *Instruction) Pseudocode() []string {
	return i.column(func(v *Variant) string { return v.Pseudocode })
}

func (i *Instruction) InvalidValues() []string {
	return i.column(func(v *Variant) string { return v.InvalidValues })
}

func (i *Instruction) ExceptionsRaised() []string {
	return i.column(func(v *Variant) string { return v.ExceptionRaised })
}

// InstructionBlock is a declaration-ordered sequence of instructions.
type InstructionBlock struct {
	Name         string         `json:"name"`
	Instructions []*Instruction `json:"instructions"`
}

func (b *InstructionBlock) AddInstruction(inst *Instruction) {
	b.Instructions = append(b.Instructions, inst)
}

type InstructionMap struct {
	Name   string              `json:"name"`
	Blocks []*InstructionBlock `json:"blocks"`
}

func (m *InstructionMap) AddInstructionBlock(b *InstructionBlock) {
	m.Blocks = append(m.Blocks, b)
}

// Document is the root of the ISA entity graph.
type Document struct {
	Name string            `json:"name"`
	Maps []*InstructionMap `json:"maps"`
}

func (d *Document) AddInstructionMap(m *InstructionMap) {
	d.Maps = append(d.Maps, m)
}

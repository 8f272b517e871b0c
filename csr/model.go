package csr

import (
	"sort"
)

// XLEN is the native register width of a hart, in bits.
type XLEN int

const (
	RVInvalid XLEN = 0
	RV32      XLEN = 32
	RV64      XLEN = 64
)

// ParseXLEN accepts 32 and 64 and returns RVInvalid for anything else.
func ParseXLEN(bits int) XLEN {
	switch XLEN(bits) {
	case RV32:
		return RV32
	case RV64:
		return RV64
	default:
		return RVInvalid
	}
}

// AccessReserved is the access kind of a synthesized reserved field.
const AccessReserved = "Reserved"

// Field is one bit range of a Register.
type Field struct {
	Name        string     `json:"name"`
	Legal       LegalValue `json:"legal"`
	Bitmask     string     `json:"bitmask,omitempty"`
	MSB         int        `json:"msb"`
	LSB         int        `json:"lsb"`
	Width       int        `json:"width,omitempty"` // zero when unspecified
	Description string     `json:"description"`
	Access      string     `json:"access"`
}

// Reserved reports whether the field documents reserved bits.
func (f Field) Reserved() bool {
	return f.Access == AccessReserved
}

// Bits renders the bit range the way register tables show it: a single
// bit number for one-bit fields, "[msb:lsb]" otherwise.
func (f Field) Bits() string {
	if f.Width == 1 {
		return itoa(f.LSB)
	}
	return "[" + itoa(f.MSB) + ":" + itoa(f.LSB) + "]"
}

// Register is the documentation model of a single CSR, or of an indexed
// family of CSRs that share one template.
//
// Size is the XLEN of the hart. Fields cover the width of the view they
// were taken from, so a register documented through its rv32 view on an
// RV64 hart has fields up to bit 31 only.
type Register struct {
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	ResetValue  string  `json:"reset_value,omitempty"`
	Size        XLEN    `json:"size"`
	Access      string  `json:"access"`
	Description string  `json:"description"`
	RV32        bool    `json:"rv32"`
	RV64        bool    `json:"rv64"`
	Fields      []Field `json:"fields"`
}

// Visible reports whether the register exists in at least one of the two
// base widths. Renderers skip registers that are not visible.
func (r *Register) Visible() bool {
	return r.RV32 || r.RV64
}

// PaddedResetValue returns the reset value zero-extended to the full
// register width, or the empty string if the register has none.
func (r *Register) PaddedResetValue() string {
	return padHex(r.ResetValue, int(r.Size)/4)
}

// AddressRange returns the first and last address covered by the register.
// Single registers return the same value twice.
func (r *Register) AddressRange() (first, last uint64, ok bool) {
	return parseAddressRange(r.Address)
}

// AddressBlock is an address-ordered sequence of registers.
type AddressBlock struct {
	Name      string      `json:"name"`
	Registers []*Register `json:"registers"`
}

func NewAddressBlock(name string) *AddressBlock {
	return &AddressBlock{Name: name}
}

// AddRegister inserts reg after every register whose address is not
// greater than its own, so that the block stays sorted by address and
// registers with equal addresses keep their insertion order.
func (b *AddressBlock) AddRegister(reg *Register) {
	key := addressKey(reg)
	i := sort.Search(len(b.Registers), func(i int) bool {
		return addressKey(b.Registers[i]) > key
	})
	b.Registers = append(b.Registers, nil)
	copy(b.Registers[i+1:], b.Registers[i:])
	b.Registers[i] = reg
}

// Visible returns the registers that renderers should document.
func (b *AddressBlock) Visible() []*Register {
	var ret []*Register
	for _, reg := range b.Registers {
		if reg.Visible() {
			ret = append(ret, reg)
		}
	}
	return ret
}

// addressKey orders registers whose address cannot be parsed after all
// others.
func addressKey(reg *Register) uint64 {
	first, _, ok := reg.AddressRange()
	if !ok {
		return ^uint64(0)
	}
	return first
}

type MemoryMap struct {
	Name          string          `json:"name"`
	AddressBlocks []*AddressBlock `json:"address_blocks"`
}

func (m *MemoryMap) AddAddressBlock(b *AddressBlock) {
	m.AddressBlocks = append(m.AddressBlocks, b)
}

// Document is the root of the CSR entity graph for one hart.
type Document struct {
	Name       string       `json:"name"`
	MemoryMaps []*MemoryMap `json:"memory_maps"`
}

func (d *Document) AddMemoryMap(m *MemoryMap) {
	d.MemoryMaps = append(d.MemoryMaps, m)
}

// BuildDocument assembles registers into the single memory map and "csr"
// address block used for a hart.
func BuildDocument(name string, regs []*Register) *Document {
	block := NewAddressBlock("csr")
	for _, reg := range regs {
		block.AddRegister(reg)
	}
	m := &MemoryMap{Name: name}
	m.AddAddressBlock(block)
	d := &Document{Name: name}
	d.AddMemoryMap(m)
	return d
}

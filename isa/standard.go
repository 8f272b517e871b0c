package isa

import (
	"fmt"
	"strings"
	"unicode"
)

type Size uint8

const (
	RVInvalid Size = 0
	RV32      Size = 32
	RV64      Size = 64
	RV128     Size = 128
)

// Extension is the extension part of a standard name: a single letter such
// as "I" or "M", a run of letters such as "IMAC", or a multi-letter name
// such as "Zicsr".
type Extension string

const (
	ExtInvalid Extension = ""
	ExtI       Extension = "I" // base integer
	ExtM       Extension = "M" // multiply and divide
	ExtA       Extension = "A" // atomic
	ExtF       Extension = "F" // single-precision floating point
	ExtD       Extension = "D" // double-precision floating point
	ExtC       Extension = "C" // compressed
)

// Standard identifies the base width and extension an instruction block
// belongs to, such as RV32I or RV64Zicsr.
type Standard struct {
	Size      Size      `json:"size"`
	Extension Extension `json:"extension"`
}

// Valid reports whether the standard was parsed successfully.
func (s Standard) Valid() bool {
	return s.Size != RVInvalid
}

func (s Standard) String() string {
	if !s.Valid() {
		return ""
	}
	return fmt.Sprintf("RV%d%s", s.Size, s.Extension)
}

// ParseStandard parses block keys such as "RV32I", "rv64m" or
// "RV32Zicsr". It returns the zero Standard for anything else.
func ParseStandard(s string) Standard {
	if len(s) < 3 || !strings.EqualFold(s[:2], "rv") {
		return Standard{}
	}
	rest := s[2:]
	digits := 0
	for digits < len(rest) && unicode.IsDigit(rune(rest[digits])) {
		digits++
	}
	var size Size
	switch rest[:digits] {
	case "32":
		size = RV32
	case "64":
		size = RV64
	case "128":
		size = RV128
	default:
		return Standard{}
	}
	ext := rest[digits:]
	if ext == "" {
		return Standard{}
	}
	for _, r := range ext {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return Standard{}
		}
	}
	return Standard{Size: size, Extension: Extension(normalizeExtension(ext))}
}

// normalizeExtension upper-cases single-letter extension strings and keeps
// the conventional capitalisation of Z and X extensions ("Zicsr").
func normalizeExtension(ext string) string {
	if ext[0] == 'z' || ext[0] == 'Z' || ext[0] == 'x' || ext[0] == 'X' {
		return strings.ToUpper(ext[:1]) + strings.ToLower(ext[1:])
	}
	return strings.ToUpper(ext)
}

package csr

import (
	"strings"
)

// bitRange is an inclusive [lsb, msb] span of register bits.
type bitRange struct {
	LSB, MSB int
}

func (r bitRange) width() int {
	return r.MSB - r.LSB + 1
}

// rangeMask returns the mask selecting bits bottom through top inclusive.
func rangeMask(top, bottom uint) uint64 {
	if top >= 63 {
		return ^uint64(0) - (uint64(1) << bottom) + 1
	}
	return (uint64(1) << (top + 1)) - (uint64(1) << bottom)
}

func partition(s string, sep string) (l, r string) {
	idx := strings.Index(s, sep)
	if idx == -1 {
		return s, ""
	}
	return s[:idx], s[idx+len(sep):]
}

// parseAddressRange accepts a single hexadecimal address or a "start-end"
// pair, as produced when an indexed family is folded into one register.
func parseAddressRange(addr string) (first, last uint64, ok bool) {
	rawFirst, rawLast := partition(addr, "-")
	first, ok = parseHexToken(rawFirst)
	if !ok {
		return 0, 0, false
	}
	if rawLast == "" {
		return first, first, true
	}
	last, ok = parseHexToken(rawLast)
	if !ok {
		return 0, 0, false
	}
	return first, last, true
}

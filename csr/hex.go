package csr

import (
	"fmt"
	"strconv"
	"strings"
)

// hexValue is a number that documentation always shows in hexadecimal.
type hexValue uint64

func (v hexValue) String() string {
	return fmt.Sprintf("%#x", uint64(v))
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// parseHexToken parses "0x1F" or bare "1F" as hexadecimal.
func parseHexToken(tok string) (uint64, bool) {
	tok = strings.TrimSpace(tok)
	if len(tok) > 2 && (tok[:2] == "0x" || tok[:2] == "0X") {
		tok = tok[2:]
	}
	v, err := strconv.ParseUint(tok, 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// padHex zero-extends a "0x"-prefixed value to the given number of digits.
// Values without the prefix are returned as they are.
func padHex(v string, digits int) string {
	if len(v) < 2 || (v[:2] != "0x" && v[:2] != "0X") {
		return v
	}
	body := v[2:]
	if len(body) < digits {
		body = strings.Repeat("0", digits-len(body)) + body
	}
	return "0x" + body
}

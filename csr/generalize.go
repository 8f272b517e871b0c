package csr

import (
	"fmt"
	"regexp"
	"strings"
)

// A register name that stands for an indexed family, such as "pmpaddr3-15",
// "pmpaddr[0-15]" or "mhpmcounter3-31h".
var familyPattern = regexp.MustCompile(`^([^\d\[\]]+)\[?(\d+)-(\d+)\]?(.*)$`)

// The digit run that a field of a packed family is indexed by. Only the
// last run in the name is used.
var fieldIndexPattern = regexp.MustCompile(`\d+`)

// Generalized is the result of folding an indexed register name into its
// template form.
type Generalized struct {
	Name        string
	Description string
	// Family is set when the input name described a range of registers.
	Family bool
	// First and Last are the literal bounds of the range.
	First, Last string
}

// GeneralizeRegister rewrites a family name such as "pmpaddr3-15" into
// "pmpaddr[i]" and removes the first instance's literal name ("pmpaddr3")
// from the description, leaving the prefix and suffix ("pmpaddr"). Names
// that do not describe a range pass through unchanged, which also makes
// the operation idempotent.
func GeneralizeRegister(name, desc string) Generalized {
	m := familyPattern.FindStringSubmatch(name)
	if m == nil {
		return Generalized{Name: name, Description: desc}
	}
	prefix, first, last, suffix := m[1], m[2], m[3], m[4]
	return Generalized{
		Name:        prefix + "[i]" + suffix,
		Description: strings.ReplaceAll(desc, prefix+first+suffix, prefix+suffix),
		Family:      true,
		First:       first,
		Last:        last,
	}
}

// GeneralizeField rewrites the name of a field inside a packed family
// register, where four sub-registers share each 32-bit word. The last digit
// run of the name becomes "[i*4 + <run>]", so "pmp2cfg" becomes
// "pmp[i*4 + 2]cfg". Names without digits, or already rewritten, are
// returned unchanged.
func GeneralizeField(name string) string {
	if strings.Contains(name, "[i") {
		return name
	}
	locs := fieldIndexPattern.FindAllStringIndex(name, -1)
	if len(locs) == 0 {
		return name
	}
	loc := locs[len(locs)-1]
	run := name[loc[0]:loc[1]]
	return name[:loc[0]] + fmt.Sprintf("[i*4 + %s]", run) + name[loc[1]:]
}

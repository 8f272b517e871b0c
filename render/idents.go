package render

import (
	"strings"
	"unicode"
)

// anchor returns the fragment identifier that Markdown renderers in the
// GitHub style generate for a heading: lower case, spaces become hyphens
// and other punctuation is dropped.
func anchor(heading string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(heading) {
		switch {
		case unicode.IsLetter(r):
			b.WriteString(strings.ToLower(string(r)))
		case unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('-')
		}
	}
	return b.String()
}

// oneLine folds multi-line text into a single line, for table cells that
// cannot span lines.
func oneLine(s string) string {
	s = strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
}

// fileIdent turns a block name into a file name stem: lower case, with
// every character that is neither a letter nor a digit replaced by an
// underscore.
func fileIdent(inp string) string {
	var b strings.Builder
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		case unicode.IsLetter(r):
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}

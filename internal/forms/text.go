package forms

import (
	"strings"
	"unicode/utf8"
)

// jsSpaceClass lists the characters a browser regexp matches with \s and
// that String.prototype.trim strips.
const jsSpaceClass = `\t\n\x{000B}\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

func isJSSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0x00A0, 0x1680, 0x2028, 0x2029, 0x202F, 0x205F, 0x3000, 0xFEFF:
		return true
	}
	return r >= 0x2000 && r <= 0x200A
}

// trimJS trims leading and trailing whitespace the way the browser does.
func trimJS(s string) string {
	return strings.TrimFunc(s, isJSSpace)
}

// utf16Len returns the browser string length of s, in UTF-16 code units.
func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r > 0xFFFF {
			n += 2
			continue
		}
		n++
	}
	return n
}

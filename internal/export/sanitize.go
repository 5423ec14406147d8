// internal/export/sanitize.go
package export

import (
	"strings"
	"unicode"
)

// pictographic lists the rune ranges the PDF core fonts cannot render.
var pictographic = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2011, Hi: 0x26FF, Stride: 1},
		{Lo: 0x2700, Hi: 0x27BF, Stride: 1},
		{Lo: 0xE000, Hi: 0xF8FF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1F7FF, Stride: 1},
		{Lo: 0x1F910, Hi: 0x1F9FF, Stride: 1},
	},
}

// CleanText strips pictographic and non-printable runes.
func CleanText(s string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case unicode.Is(pictographic, r):
			return -1
		case r == unicode.ReplacementChar || unicode.Is(unicode.Variation_Selector, r):
			return -1
		case !unicode.IsPrint(r):
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(cleaned), " ")
}

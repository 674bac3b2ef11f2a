package textutil

import (
	"strings"
	"unicode"
)

// SanitizeTerminalText replaces control characters so user-controlled text
// (file names in particular) cannot inject terminal escape sequences or break
// the single output line.
func SanitizeTerminalText(text string) string {
	if strings.IndexFunc(text, requiresSanitization) < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		case requiresSanitization(r):
			b.WriteByte('?')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func requiresSanitization(r rune) bool {
	if r == unicode.ReplacementChar {
		return false
	}
	return r < 0x20 || r == 0x7f || (r >= 0x80 && r < 0xa0) || unicode.Is(unicode.Bidi_Control, r)
}

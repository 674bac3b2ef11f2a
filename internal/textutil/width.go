package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks text cut short by TruncateToWidth.
const Ellipsis = "…"

// DisplayWidth reports the printable width of text accounting for wide runes.
func DisplayWidth(text string) int {
	width := 0
	for _, ru := range text {
		w := runewidth.RuneWidth(ru)
		if w <= 0 {
			w = 1
		}
		width += w
	}
	return width
}

// TruncateToWidth shortens text to at most width columns, ending it with
// Ellipsis when anything was cut.
func TruncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if DisplayWidth(text) <= width {
		return text
	}

	ellipsisWidth := DisplayWidth(Ellipsis)
	if width <= ellipsisWidth {
		return Ellipsis
	}

	target := width - ellipsisWidth
	var builder strings.Builder
	current := 0
	for _, ru := range text {
		w := runewidth.RuneWidth(ru)
		if w <= 0 {
			w = 1
		}
		if current+w > target {
			break
		}
		builder.WriteRune(ru)
		current += w
	}
	builder.WriteString(Ellipsis)
	return builder.String()
}

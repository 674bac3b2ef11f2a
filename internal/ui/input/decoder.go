package input

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

const esc = 0x1b

// Decode splits the bytes delivered by one terminal read into key events.
// Escape sequences other than the cursor keys are consumed and dropped.
// A sequence cut short by the end of data is dropped too; decoding never
// waits for more input.
func Decode(data []byte) []*tcell.EventKey {
	var events []*tcell.EventKey
	for len(data) > 0 {
		ev, n := decodeOne(data)
		data = data[n:]
		if ev != nil {
			events = append(events, ev)
		}
	}
	return events
}

func decodeOne(data []byte) (*tcell.EventKey, int) {
	b := data[0]
	if b == esc {
		return decodeEscape(data)
	}
	if b < utf8.RuneSelf {
		// Control bytes become tcell's control keys (Enter, Backspace, Ctrl-L...).
		return tcell.NewEventKey(tcell.KeyRune, rune(b), tcell.ModNone), 1
	}

	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError && size <= 1 {
		return nil, 1
	}
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone), size
}

func decodeEscape(data []byte) (*tcell.EventKey, int) {
	if len(data) == 1 || data[1] == esc {
		return tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), 1
	}

	switch data[1] {
	case '[':
		return decodeCSI(data)
	case 'O':
		if len(data) < 3 {
			return nil, len(data)
		}
		return cursorKey(data[2]), 3
	}

	// ESC + key is how terminals send Alt-modified keys; those are not bound.
	_, size := utf8.DecodeRune(data[1:])
	return nil, 1 + size
}

// decodeCSI consumes ESC [ parameters intermediates final.
func decodeCSI(data []byte) (*tcell.EventKey, int) {
	for i := 2; i < len(data); i++ {
		c := data[i]
		switch {
		case c >= 0x40 && c <= 0x7e:
			if i == 2 {
				return cursorKey(c), i + 1
			}
			return nil, i + 1
		case c >= 0x20 && c <= 0x3f:
			continue
		default:
			// Malformed; leave the offending byte for the next gesture.
			return nil, i
		}
	}
	return nil, len(data)
}

func cursorKey(final byte) *tcell.EventKey {
	switch final {
	case 'A':
		return tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	case 'B':
		return tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)
	default:
		return nil
	}
}

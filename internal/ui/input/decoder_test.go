package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

type keyWant struct {
	key  tcell.Key
	r    rune
	mods tcell.ModMask
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []keyWant
	}{
		{"printable", "j", []keyWant{{tcell.KeyRune, 'j', 0}}},
		{"multibyte rune", "é", []keyWant{{tcell.KeyRune, 'é', 0}}},
		{"enter", "\r", []keyWant{{tcell.KeyEnter, 0, 0}}},
		{"delete as backspace", "\x7f", []keyWant{{tcell.KeyBackspace2, 0, 0}}},
		{"control h", "\x08", []keyWant{{tcell.KeyBackspace, 0, 0}}},
		{"control l", "\x0c", []keyWant{{tcell.KeyCtrlL, 0, tcell.ModCtrl}}},
		{"csi up", "\x1b[A", []keyWant{{tcell.KeyUp, 0, 0}}},
		{"csi down", "\x1b[B", []keyWant{{tcell.KeyDown, 0, 0}}},
		{"ss3 up", "\x1bOA", []keyWant{{tcell.KeyUp, 0, 0}}},
		{"ss3 down", "\x1bOB", []keyWant{{tcell.KeyDown, 0, 0}}},
		{"lone escape", "\x1b", []keyWant{{tcell.KeyEscape, 0, 0}}},
		{"double escape", "\x1b\x1b", []keyWant{{tcell.KeyEscape, 0, 0}, {tcell.KeyEscape, 0, 0}}},
		{"right arrow ignored", "\x1b[C", nil},
		{"function key ignored", "\x1b[15~", nil},
		{"modified arrow ignored", "\x1b[1;5A", nil},
		{"alt key ignored", "\x1bx", nil},
		{"truncated csi", "\x1b[", nil},
		{"paste", "ab", []keyWant{{tcell.KeyRune, 'a', 0}, {tcell.KeyRune, 'b', 0}}},
		{"arrow then key", "\x1b[Bq", []keyWant{{tcell.KeyDown, 0, 0}, {tcell.KeyRune, 'q', 0}}},
		{"unknown then key", "\x1b[Cq", []keyWant{{tcell.KeyRune, 'q', 0}}},
		{"trailing escape after key", "q\x1b", []keyWant{{tcell.KeyRune, 'q', 0}, {tcell.KeyEscape, 0, 0}}},
		{"invalid utf8 dropped", "\xffj", []keyWant{{tcell.KeyRune, 'j', 0}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Decode([]byte(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("Decode(%q) returned %d events, want %d", tt.in, len(got), len(tt.want))
			}
			for i, ev := range got {
				want := tt.want[i]
				if ev.Key() != want.key {
					t.Fatalf("event %d key = %v, want %v", i, ev.Key(), want.key)
				}
				if want.key == tcell.KeyRune && ev.Rune() != want.r {
					t.Fatalf("event %d rune = %q, want %q", i, ev.Rune(), want.r)
				}
				if ev.Modifiers() != want.mods {
					t.Fatalf("event %d modifiers = %v, want %v", i, ev.Modifiers(), want.mods)
				}
			}
		})
	}
}

package prompt

import (
	"io"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/tspivey/fm/internal/textutil"
)

// KeySource delivers decoded key events; a nil event is unrecognized input.
type KeySource interface {
	ReadKey() (*tcell.EventKey, error)
}

// Prompter runs the synchronous sub-dialogs of the browser: a one-line
// editor, a y/n question and a single-key menu. Each leaves its text on the
// current row; the caller starts the next output on a fresh line.
type Prompter struct {
	keys KeySource
	out  io.Writer
}

// New creates a prompter reading from keys and echoing to out.
func New(keys KeySource, out io.Writer) *Prompter {
	return &Prompter{keys: keys, out: out}
}

// Line asks for a line of text, starting from initial. It returns false when
// the user cancels with Escape, Control-C or Control-G.
func (p *Prompter) Line(label, initial string) (string, bool, error) {
	input := []rune(initial)
	p.redraw(label, input)

	for {
		ev, err := p.keys.ReadKey()
		if err != nil {
			return "", false, err
		}
		if ev == nil {
			continue
		}

		switch ev.Key() {
		case tcell.KeyEnter, tcell.KeyCtrlJ:
			return string(input), true, nil
		case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlG:
			return "", false, nil
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(input) == 0 {
				continue
			}
			last := input[len(input)-1]
			input = input[:len(input)-1]
			p.erase(textutil.DisplayWidth(textutil.SanitizeTerminalText(string(last))))
		case tcell.KeyCtrlU:
			input = input[:0]
			p.redraw(label, input)
		case tcell.KeyRune:
			r := ev.Rune()
			if !unicode.IsPrint(r) && r != ' ' {
				continue
			}
			input = append(input, r)
			p.write(textutil.SanitizeTerminalText(string(r)))
		}
	}
}

// Confirm asks a yes/no question answered by a single key. Only y or Y
// confirm; any other key declines.
func (p *Prompter) Confirm(question string) (bool, error) {
	ev, err := p.Choose(question + " (y/n)")
	if err != nil || ev == nil {
		return false, err
	}
	if ev.Key() == tcell.KeyRune && (ev.Rune() == 'y' || ev.Rune() == 'Y') {
		p.write("y")
		return true, nil
	}
	p.write("n")
	return false, nil
}

// Choose shows question and returns the next key pressed. A nil event means
// the key was not recognized.
func (p *Prompter) Choose(question string) (*tcell.EventKey, error) {
	p.write("\r" + textutil.SanitizeTerminalText(question) + " \x1b[K")
	return p.keys.ReadKey()
}

// Page shows lines one screenful at a time, rows lines per page. It returns
// early when the user presses Escape or q at a page break.
func (p *Prompter) Page(lines []string, rows int) error {
	perPage := max(rows-1, 1)
	for i, line := range lines {
		if i > 0 {
			p.write("\r\n")
			if i%perPage == 0 {
				ev, err := p.Choose("More")
				if err != nil {
					return err
				}
				if ev != nil && (ev.Key() == tcell.KeyEscape || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q')) {
					return nil
				}
			}
		}
		p.write("\r" + textutil.SanitizeTerminalText(line) + "\x1b[K")
	}
	return nil
}

func (p *Prompter) redraw(label string, input []rune) {
	var b strings.Builder
	b.WriteString("\r")
	b.WriteString(textutil.SanitizeTerminalText(label))
	b.WriteString(textutil.SanitizeTerminalText(string(input)))
	b.WriteString("\x1b[K")
	p.write(b.String())
}

func (p *Prompter) erase(width int) {
	if width <= 0 {
		return
	}
	p.write(strings.Repeat("\b \b", width))
}

func (p *Prompter) write(s string) {
	_, _ = io.WriteString(p.out, s)
}

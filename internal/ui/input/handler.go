package input

import (
	"github.com/gdamore/tcell/v2"
	statepkg "github.com/tspivey/fm/internal/state"
)

// InputHandler converts key events to Actions
type InputHandler struct{}

// NewInputHandler creates a new input handler
func NewInputHandler() *InputHandler {
	return &InputHandler{}
}

// ProcessEvent returns the action bound to ev, or nil when the key is unbound.
func (ih *InputHandler) ProcessEvent(ev *tcell.EventKey) statepkg.Action {
	if ev == nil {
		return nil
	}

	// Handle special keys first
	switch ev.Key() {
	case tcell.KeyUp:
		return statepkg.CursorUpAction{}
	case tcell.KeyDown:
		return statepkg.CursorDownAction{}
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		return statepkg.OpenAction{}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return statepkg.GoUpAction{}
	case tcell.KeyCtrlL:
		return statepkg.RefreshAction{}
	case tcell.KeyCtrlZ:
		return statepkg.SuspendAction{}
	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}
	return nil
}

func (ih *InputHandler) processRune(r rune) statepkg.Action {
	if r >= '1' && r <= '9' {
		return statepkg.SwitchTabAction{Index: int(r - '1')}
	}

	switch r {
	case 'k':
		return statepkg.CursorUpAction{}
	case 'j':
		return statepkg.CursorDownAction{}
	case 'g':
		return statepkg.CursorFirstAction{}
	case 'G':
		return statepkg.CursorLastAction{}
	case 'l':
		return statepkg.OpenAction{}
	case 'h':
		return statepkg.GoUpAction{}
	case '/':
		return statepkg.SearchPromptAction{}
	case 'n':
		return statepkg.SearchNextAction{}
	case 'N':
		return statepkg.SearchNextAction{Reverse: true}
	case 's':
		return statepkg.SortPromptAction{}
	case 'r':
		return statepkg.RenameAction{}
	case 'd':
		return statepkg.DeleteAction{}
	case 'D':
		return statepkg.DeleteAction{Permanent: true}
	case 'm':
		return statepkg.MoveAction{}
	case 'c':
		return statepkg.CopyAction{}
	case 'M':
		return statepkg.MakeDirectoryAction{}
	case 'e':
		return statepkg.EditAction{}
	case '!':
		return statepkg.ShellAction{}
	case 'z':
		return statepkg.SizeAction{}
	case 'i':
		return statepkg.InfoAction{}
	case '.':
		return statepkg.ExpandAction{}
	case 'p':
		return statepkg.PrintPathAction{}
	case 'R':
		return statepkg.RefreshAction{}
	case 't':
		return statepkg.NewTabAction{}
	case 'w':
		return statepkg.CloseTabAction{}
	case '0':
		return statepkg.SwitchTabAction{Index: statepkg.MaxTabs - 1}
	case '?':
		return statepkg.HelpAction{}
	case 'q':
		return statepkg.QuitAction{}
	}
	return nil
}

// SortChoice maps a key pressed in the sort menu to an order.
func SortChoice(ev *tcell.EventKey) (statepkg.SortOrder, bool) {
	if ev == nil || ev.Key() != tcell.KeyRune {
		return 0, false
	}
	switch ev.Rune() {
	case 'n':
		return statepkg.SortNameAsc, true
	case 'N':
		return statepkg.SortNameDesc, true
	case 's':
		return statepkg.SortSizeAsc, true
	case 'S':
		return statepkg.SortSizeDesc, true
	case 't':
		return statepkg.SortTimeAsc, true
	case 'T':
		return statepkg.SortTimeDesc, true
	}
	return 0, false
}

// HelpLines describes the key bindings, one per line.
func HelpLines() []string {
	return []string{
		"Up or k: previous entry",
		"Down or j: next entry",
		"g: first entry, G: last entry",
		"Enter or l: open",
		"Backspace or h: parent directory",
		"/: search, n: next match, N: previous match",
		"s: sort (n, s, t ascending; N, S, T descending)",
		"r: rename",
		"d: move to trash, D: delete permanently",
		"m: move, c: copy",
		"M: make directory",
		"e: edit",
		"!: shell",
		"z: size",
		"i: info",
		".: full name",
		"p: current directory",
		"R or Control-L: refresh",
		"t: new tab, w: close tab, 1 to 9 and 0: switch tab",
		"Control-Z: suspend",
		"?: help",
		"q: quit",
	}
}

package input

import (
	"reflect"
	"testing"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/tspivey/fm/internal/state"
)

func TestProcessEventBindings(t *testing.T) {
	handler := NewInputHandler()

	tests := []struct {
		name string
		ev   *tcell.EventKey
		want statepkg.Action
	}{
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, 0), statepkg.CursorUpAction{}},
		{"k", tcell.NewEventKey(tcell.KeyRune, 'k', 0), statepkg.CursorUpAction{}},
		{"down arrow", tcell.NewEventKey(tcell.KeyDown, 0, 0), statepkg.CursorDownAction{}},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, 0), statepkg.OpenAction{}},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), statepkg.GoUpAction{}},
		{"control h", tcell.NewEventKey(tcell.KeyBackspace, 0, 0), statepkg.GoUpAction{}},
		{"control l", tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl), statepkg.RefreshAction{}},
		{"control z", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), statepkg.SuspendAction{}},
		{"search previous", tcell.NewEventKey(tcell.KeyRune, 'N', 0), statepkg.SearchNextAction{Reverse: true}},
		{"delete permanently", tcell.NewEventKey(tcell.KeyRune, 'D', 0), statepkg.DeleteAction{Permanent: true}},
		{"tab 1", tcell.NewEventKey(tcell.KeyRune, '1', 0), statepkg.SwitchTabAction{Index: 0}},
		{"tab 9", tcell.NewEventKey(tcell.KeyRune, '9', 0), statepkg.SwitchTabAction{Index: 8}},
		{"tab 10", tcell.NewEventKey(tcell.KeyRune, '0', 0), statepkg.SwitchTabAction{Index: 9}},
		{"quit", tcell.NewEventKey(tcell.KeyRune, 'q', 0), statepkg.QuitAction{}},
		{"unbound rune", tcell.NewEventKey(tcell.KeyRune, 'x', 0), nil},
		{"escape unbound", tcell.NewEventKey(tcell.KeyEscape, 0, 0), nil},
		{"unrecognized", nil, nil},
	}

	for _, tt := range tests {
		got := handler.ProcessEvent(tt.ev)
		if !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: got %#v, want %#v", tt.name, got, tt.want)
		}
	}
}

func TestSortChoice(t *testing.T) {
	order, ok := SortChoice(tcell.NewEventKey(tcell.KeyRune, 'T', 0))
	if !ok || order != statepkg.SortTimeDesc {
		t.Fatalf("expected time-desc, got %v (ok=%v)", order, ok)
	}
	if _, ok := SortChoice(tcell.NewEventKey(tcell.KeyEscape, 0, 0)); ok {
		t.Fatal("escape should not choose a sort order")
	}
}

package state

// Action is the base interface for all state mutations
type Action interface{}

// ===== CURSOR ACTIONS =====

type CursorUpAction struct{}
type CursorDownAction struct{}
type CursorFirstAction struct{}
type CursorLastAction struct{}

// ===== NAVIGATION ACTIONS =====

type OpenAction struct{}           // Enter - directory or opener
type EnterDirectoryAction struct{} // directory part of OpenAction
type GoUpAction struct{}
type RefreshAction struct{}

// ===== SEARCH & SORT ACTIONS =====

type SearchPromptAction struct{}
type SearchAction struct {
	Query   string
	Reverse bool
}
type SearchNextAction struct {
	Reverse bool
}
type SortPromptAction struct{}
type SortAction struct {
	Order SortOrder
}

// ===== TAB ACTIONS =====

type NewTabAction struct{}
type CloseTabAction struct{}
type SwitchTabAction struct {
	Index int // zero-based
}

// ===== FILE ACTIONS =====

type RenameAction struct{}
type DeleteAction struct {
	Permanent bool
}
type MoveAction struct{}
type CopyAction struct{}
type MakeDirectoryAction struct{}
type EditAction struct{}
type ShellAction struct{}

// ===== REPORT ACTIONS =====

type SizeAction struct{}
type InfoAction struct{}
type ExpandAction struct{}
type PrintPathAction struct{}
type HelpAction struct{}

// ===== APPLICATION ACTIONS =====

type SuspendAction struct{}
type QuitAction struct{}

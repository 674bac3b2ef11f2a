package state

import "fmt"

// MaxTabs bounds the number of open tabs.
const MaxTabs = 10

// Session is the single source of truth for the running browser: the open
// tabs, which one is active, the terminal geometry and the outcome of the
// last action.
type Session struct {
	Tabs        []*DirectoryView
	ActiveIndex int
	DefaultSort SortOrder

	// Dimensions, queried once at startup
	ScreenWidth  int
	ScreenHeight int

	// Outcome of the last action, consumed by the renderer
	LastError       error
	Notice          string
	NoticeWithEntry bool
}

// NewSession creates a session with no tabs. OpenTab must succeed once before
// the session is usable.
func NewSession(order SortOrder) *Session {
	return &Session{DefaultSort: order}
}

// Active returns the active tab, or nil before the first tab is opened.
func (s *Session) Active() *DirectoryView {
	if s.ActiveIndex < 0 || s.ActiveIndex >= len(s.Tabs) {
		return nil
	}
	return s.Tabs[s.ActiveIndex]
}

// OpenTab loads dir into a new tab and activates it. New tabs inherit the
// active tab's sort order.
func (s *Session) OpenTab(dir string) error {
	if len(s.Tabs) >= MaxTabs {
		return ErrTooManyTabs
	}

	order := s.DefaultSort
	if active := s.Active(); active != nil {
		order = active.SortOrder
	}

	view := NewDirectoryView(order)
	if err := view.Navigate(dir); err != nil {
		return err
	}

	s.Tabs = append(s.Tabs, view)
	s.ActiveIndex = len(s.Tabs) - 1
	return nil
}

// CloseActiveTab removes the active tab and activates the previous one. The
// last remaining tab is never closed.
func (s *Session) CloseActiveTab() bool {
	if len(s.Tabs) <= 1 {
		return false
	}

	s.Tabs = append(s.Tabs[:s.ActiveIndex], s.Tabs[s.ActiveIndex+1:]...)
	s.ActiveIndex = max(0, s.ActiveIndex-1)
	return true
}

// SwitchTo activates the tab at the zero-based index.
func (s *Session) SwitchTo(index int) error {
	if index < 0 || index >= len(s.Tabs) {
		return fmt.Errorf("tab %d: %w", index+1, ErrInvalidTab)
	}
	s.ActiveIndex = index
	return nil
}

// ViewsShowing returns the tabs other than the active one that list dir.
func (s *Session) ViewsShowing(dir string) []*DirectoryView {
	var views []*DirectoryView
	for i, v := range s.Tabs {
		if i != s.ActiveIndex && v.Directory == dir {
			views = append(views, v)
		}
	}
	return views
}

// ClearStatus forgets the outcome of the previous action.
func (s *Session) ClearStatus() {
	s.LastError = nil
	s.Notice = ""
	s.NoticeWithEntry = false
}

// Notify sets a message that replaces the entry line.
func (s *Session) Notify(format string, args ...any) {
	s.Notice = fmt.Sprintf(format, args...)
	s.NoticeWithEntry = false
}

// Announce sets a message that is spoken before the entry line.
func (s *Session) Announce(format string, args ...any) {
	s.Notice = fmt.Sprintf(format, args...)
	s.NoticeWithEntry = true
}

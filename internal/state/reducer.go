package state

import "fmt"

// StateReducer applies actions that only touch session state. Actions that
// need prompts or external programs are handled by the application.
type StateReducer struct{}

// NewStateReducer creates a reducer.
func NewStateReducer() *StateReducer {
	return &StateReducer{}
}

// Reduce applies action to the session. A returned error is recoverable:
// the session is unchanged and the error is reported to the user.
func (r *StateReducer) Reduce(s *Session, action Action) error {
	view := s.Active()
	if view == nil {
		return fmt.Errorf("no open tab")
	}

	switch a := action.(type) {
	case CursorUpAction:
		view.MoveUp()
	case CursorDownAction:
		view.MoveDown()
	case CursorFirstAction:
		view.MoveFirst()
	case CursorLastAction:
		view.MoveLast()

	case EnterDirectoryAction:
		return r.enterDirectory(view)
	case GoUpAction:
		return r.goUp(view)
	case RefreshAction:
		if err := view.Refresh(); err != nil {
			return err
		}
		s.Announce("Refreshed")

	case SearchAction:
		found, err := view.Search(a.Query, a.Reverse)
		if err != nil {
			return err
		}
		if !found {
			s.Notify("Not found")
		}
	case SearchNextAction:
		found, err := view.SearchAgain(a.Reverse)
		if err != nil {
			return err
		}
		if !found {
			s.Notify("Not found")
		}
	case SortAction:
		r.sort(view, a.Order)
		s.Announce("Sorted by %s", a.Order)

	case NewTabAction:
		if err := s.OpenTab(view.Directory); err != nil {
			return err
		}
		s.Announce("Tab %d", s.ActiveIndex+1)
	case CloseTabAction:
		if !s.CloseActiveTab() {
			s.Notify("Only one tab open")
			return nil
		}
		s.Announce("Tab %d", s.ActiveIndex+1)
	case SwitchTabAction:
		if err := s.SwitchTo(a.Index); err != nil {
			return err
		}
		s.Announce("Tab %d", s.ActiveIndex+1)

	default:
		return fmt.Errorf("unsupported action %T", action)
	}
	return nil
}

func (r *StateReducer) enterDirectory(view *DirectoryView) error {
	cur := view.Current()
	if cur == nil {
		return ErrNoSelection
	}
	if !cur.IsDir {
		return fmt.Errorf("%s is not a directory", cur.Name)
	}
	return view.Navigate(cur.FullPath)
}

// goUp loads the parent directory and keeps the cursor on the directory that
// was just left.
func (r *StateReducer) goUp(view *DirectoryView) error {
	parent, child, err := view.Parent()
	if err != nil {
		return err
	}
	if err := view.Navigate(parent); err != nil {
		return err
	}
	view.Focus(child)
	return nil
}

// sort re-orders the view while keeping the selected entry selected.
func (r *StateReducer) sort(view *DirectoryView, order SortOrder) {
	selected := ""
	if cur := view.Current(); cur != nil {
		selected = cur.Name
	}
	view.Sort(order)
	if selected != "" {
		view.Focus(selected)
	}
}

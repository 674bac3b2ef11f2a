package state

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	fsutil "github.com/tspivey/fm/internal/fs"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// FileEntry mirrors fs.Entry so UI/state code can rely on a stable type.
type FileEntry = fsutil.Entry

// readEntriesFn is overridable in tests.
var readEntriesFn = fsutil.ReadEntries

// DirectoryView is one tab: a directory listing with a cursor, a sort order
// and the last search pattern.
//
// Cursor is always a valid index into Entries, or 0 when Entries is empty.
type DirectoryView struct {
	Directory   string
	Entries     []FileEntry
	Cursor      int
	SortOrder   SortOrder
	SearchQuery string

	searchGlob glob.Glob
}

// NewDirectoryView returns an empty view that will sort with order.
func NewDirectoryView(order SortOrder) *DirectoryView {
	return &DirectoryView{SortOrder: order}
}

// Load reads dir into the view, unordered, with the cursor on the first
// entry. On failure the view is left untouched.
func (v *DirectoryView) Load(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return &IOError{Op: "read", Path: dir, Err: err}
	}

	entries, err := readEntriesFn(abs)
	if err != nil {
		return &IOError{Op: "read", Path: abs, Err: err}
	}

	v.Directory = abs
	v.Entries = entries
	v.Cursor = 0
	return nil
}

// Navigate loads dir and applies the view's sort order.
func (v *DirectoryView) Navigate(dir string) error {
	if err := v.Load(dir); err != nil {
		return err
	}
	sortEntries(v.Entries, v.SortOrder)
	return nil
}

// Refresh re-reads the directory, re-sorts it and tries to keep the cursor on
// the entry that was selected before.
func (v *DirectoryView) Refresh() error {
	prevName := ""
	if cur := v.Current(); cur != nil {
		prevName = cur.Name
	}
	prevCursor := v.Cursor

	if err := v.Navigate(v.Directory); err != nil {
		return err
	}

	if prevName != "" && v.Focus(prevName) {
		return nil
	}
	v.Cursor = prevCursor
	v.clampCursor()
	return nil
}

// Sort re-orders the entries and records order. The cursor index is kept;
// callers that want to follow the selected entry refocus it afterwards.
func (v *DirectoryView) Sort(order SortOrder) {
	sortEntries(v.Entries, order)
	v.SortOrder = order
}

// Current returns the selected entry, or nil when the directory is empty.
func (v *DirectoryView) Current() *FileEntry {
	if v.Cursor < 0 || v.Cursor >= len(v.Entries) {
		return nil
	}
	return &v.Entries[v.Cursor]
}

// Focus moves the cursor to the entry named exactly name.
func (v *DirectoryView) Focus(name string) bool {
	for i := range v.Entries {
		if v.Entries[i].Name == name {
			v.Cursor = i
			return true
		}
	}
	return false
}

// Remove drops the entry with the same path and clamps the cursor.
func (v *DirectoryView) Remove(entry FileEntry) bool {
	for i := range v.Entries {
		if v.Entries[i].FullPath != entry.FullPath {
			continue
		}
		v.Entries = append(v.Entries[:i], v.Entries[i+1:]...)
		v.clampCursor()
		return true
	}
	return false
}

// Replace swaps the entry at oldPath for updated, re-sorts and focuses it.
// It reports false when oldPath is not listed.
func (v *DirectoryView) Replace(oldPath string, updated FileEntry) bool {
	for i := range v.Entries {
		if v.Entries[i].FullPath != oldPath {
			continue
		}
		v.Entries[i] = updated
		v.Sort(v.SortOrder)
		v.Focus(updated.Name)
		return true
	}
	return false
}

// Add inserts a new entry, re-sorts and focuses it.
func (v *DirectoryView) Add(entry FileEntry) {
	v.Entries = append(v.Entries, entry)
	v.Sort(v.SortOrder)
	v.Focus(entry.Name)
}

// MoveUp moves the cursor one entry up, stopping at the first entry.
func (v *DirectoryView) MoveUp() bool {
	if v.Cursor == 0 {
		return false
	}
	v.Cursor--
	return true
}

// MoveDown moves the cursor one entry down, stopping at the last entry.
func (v *DirectoryView) MoveDown() bool {
	if v.Cursor >= len(v.Entries)-1 {
		return false
	}
	v.Cursor++
	return true
}

func (v *DirectoryView) MoveFirst() {
	v.Cursor = 0
}

func (v *DirectoryView) MoveLast() {
	v.Cursor = 0
	if len(v.Entries) > 0 {
		v.Cursor = len(v.Entries) - 1
	}
}

// Search looks for the next entry whose name matches the case-insensitive
// glob query, starting after the cursor (or before it when reverse). The scan
// stops at the end of the listing; it does not wrap.
func (v *DirectoryView) Search(query string, reverse bool) (bool, error) {
	g, err := glob.Compile(literalBraces(cases.Fold().String(query)))
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", query, err)
	}
	v.SearchQuery = query
	v.searchGlob = g
	return v.scan(reverse), nil
}

// literalBraces escapes the glob syntax beyond '*', '?' and bracket classes
// so braces and backslashes match themselves.
func literalBraces(pattern string) string {
	var b strings.Builder
	inClass := false
	for _, r := range pattern {
		switch {
		case inClass:
			if r == ']' {
				inClass = false
			}
		case r == '[':
			inClass = true
		case r == '{' || r == '}' || r == '\\':
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SearchAgain repeats the last search in the given direction.
func (v *DirectoryView) SearchAgain(reverse bool) (bool, error) {
	if v.SearchQuery == "" {
		return false, ErrNoSearch
	}
	if v.searchGlob == nil {
		return v.Search(v.SearchQuery, reverse)
	}
	return v.scan(reverse), nil
}

func (v *DirectoryView) scan(reverse bool) bool {
	folder := cases.Fold()
	step, i := 1, v.Cursor+1
	if reverse {
		step, i = -1, v.Cursor-1
	}
	for ; i >= 0 && i < len(v.Entries); i += step {
		if v.searchGlob.Match(folder.String(v.Entries[i].Name)) {
			v.Cursor = i
			return true
		}
	}
	return false
}

func (v *DirectoryView) clampCursor() {
	if v.Cursor >= len(v.Entries) {
		v.Cursor = len(v.Entries) - 1
	}
	if v.Cursor < 0 {
		v.Cursor = 0
	}
}

// Parent returns the parent directory and the name of the current directory
// within it.
func (v *DirectoryView) Parent() (string, string, error) {
	parent := filepath.Dir(v.Directory)
	if parent == v.Directory {
		return "", "", ErrAtRoot
	}
	return parent, norm.NFC.String(filepath.Base(v.Directory)), nil
}

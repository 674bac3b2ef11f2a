package state

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// SortOrder selects how a DirectoryView orders its entries.
type SortOrder int

const (
	SortNameAsc SortOrder = iota
	SortNameDesc
	SortSizeAsc
	SortSizeDesc
	SortTimeAsc
	SortTimeDesc
)

var sortOrderNames = [...]string{
	SortNameAsc:  "name-asc",
	SortNameDesc: "name-desc",
	SortSizeAsc:  "size-asc",
	SortSizeDesc: "size-desc",
	SortTimeAsc:  "time-asc",
	SortTimeDesc: "time-desc",
}

func (o SortOrder) String() string {
	if o < 0 || int(o) >= len(sortOrderNames) {
		return fmt.Sprintf("SortOrder(%d)", int(o))
	}
	return sortOrderNames[o]
}

// Descending reports whether the order is the reverse of its -asc twin.
func (o SortOrder) Descending() bool {
	return o%2 == 1
}

// ParseSortOrder accepts the names used in the configuration file.
func ParseSortOrder(name string) (SortOrder, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range sortOrderNames {
		if n == name {
			return SortOrder(i), nil
		}
	}
	return 0, fmt.Errorf("invalid sort order %q (want one of %s)", name, strings.Join(SortOrderNames(), ", "))
}

// SortOrderNames lists every valid sort order name.
func SortOrderNames() []string {
	return append([]string(nil), sortOrderNames[:]...)
}

type sortItem struct {
	key   string
	entry FileEntry
}

// sortEntries orders entries in place. The sort is stable for every order, and
// a -desc order compares with its operands swapped so ties keep their
// relative order in both directions.
func sortEntries(entries []FileEntry, order SortOrder) {
	items := make([]sortItem, len(entries))
	folder := cases.Fold()
	for i, e := range entries {
		items[i].entry = e
		if order == SortNameAsc || order == SortNameDesc {
			items[i].key = folder.String(e.Name)
		}
	}

	var less func(a, b *sortItem) bool
	switch order {
	case SortSizeAsc, SortSizeDesc:
		less = func(a, b *sortItem) bool { return a.entry.Size < b.entry.Size }
	case SortTimeAsc, SortTimeDesc:
		less = func(a, b *sortItem) bool { return a.entry.Modified.Before(b.entry.Modified) }
	default:
		less = func(a, b *sortItem) bool { return a.key < b.key }
	}

	if order.Descending() {
		sort.SliceStable(items, func(i, j int) bool { return less(&items[j], &items[i]) })
	} else {
		sort.SliceStable(items, func(i, j int) bool { return less(&items[i], &items[j]) })
	}

	for i := range items {
		entries[i] = items[i].entry
	}
}

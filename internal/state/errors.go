package state

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	// ErrTooManyTabs is returned when opening a tab beyond MaxTabs.
	ErrTooManyTabs = errors.New("too many tabs")
	// ErrInvalidTab is returned when switching to a tab that does not exist.
	ErrInvalidTab = errors.New("no such tab")
	// ErrAtRoot is returned when navigating above the filesystem root.
	ErrAtRoot = errors.New("already at the root directory")
	// ErrNoSearch is returned when repeating a search before any query was given.
	ErrNoSearch = errors.New("no previous search")
	// ErrNoSelection is returned by actions that need a selected entry.
	ErrNoSelection = errors.New("no entry selected")
)

// IOError reports a filesystem operation that could not be completed.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	reason := e.Err
	var pathErr *fs.PathError
	if errors.As(e.Err, &pathErr) {
		reason = pathErr.Err
	}
	return fmt.Sprintf("cannot %s %s: %v", e.Op, e.Path, reason)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// AlreadyExistsError is returned when a rename, move or copy would replace an
// existing entry. It is detected before the filesystem is touched.
type AlreadyExistsError struct {
	Path string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists", e.Path)
}

func (e *AlreadyExistsError) Is(target error) bool {
	return target == fs.ErrExist
}

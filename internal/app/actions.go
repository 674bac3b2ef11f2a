package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	fsutil "github.com/tspivey/fm/internal/fs"
	statepkg "github.com/tspivey/fm/internal/state"
	inputui "github.com/tspivey/fm/internal/ui/input"
	renderui "github.com/tspivey/fm/internal/ui/render"
	"go.uber.org/zap"
)

const newDirectoryMode = 0o755

// selection returns the active view and a copy of its selected entry.
func (app *Application) selection() (*statepkg.DirectoryView, statepkg.FileEntry, bool) {
	view := app.session.Active()
	if view == nil {
		app.fail(statepkg.ErrNoSelection)
		return nil, statepkg.FileEntry{}, false
	}
	cur := view.Current()
	if cur == nil {
		app.fail(statepkg.ErrNoSelection)
		return view, statepkg.FileEntry{}, false
	}
	return view, *cur, true
}

func (app *Application) handleOpen() {
	view, entry, ok := app.selection()
	if !ok {
		return
	}
	if entry.IsDir {
		app.reduce(statepkg.EnterDirectoryAction{})
		return
	}
	if len(app.opener) == 0 {
		app.session.Notify("No opener configured")
		return
	}
	if err := app.runProgram(withArg(app.opener, entry.FullPath), view.Directory); err != nil {
		app.fail(err)
	}
}

func (app *Application) handleSearchPrompt() {
	query, ok, err := app.prompter.Line("Search: ", "")
	app.renderer.AfterPrompt()
	if err != nil {
		app.fail(err)
		return
	}
	if !ok || query == "" {
		return
	}
	app.reduce(statepkg.SearchAction{Query: query})
}

func (app *Application) handleSortPrompt() {
	ev, err := app.prompter.Choose("Sort by name, size or time (n, s, t; capital for descending):")
	app.renderer.AfterPrompt()
	if err != nil {
		app.fail(err)
		return
	}
	order, ok := inputui.SortChoice(ev)
	if !ok {
		app.session.Notify("Cancelled")
		return
	}
	app.reduce(statepkg.SortAction{Order: order})
}

func (app *Application) handleRename() {
	view, entry, ok := app.selection()
	if !ok {
		return
	}
	name, ok, err := app.prompter.Line("Rename to: ", entry.Name)
	app.renderer.AfterPrompt()
	if err != nil {
		app.fail(err)
		return
	}
	name = strings.TrimSpace(name)
	if !ok || name == "" || name == entry.Name {
		return
	}

	dest := fsutil.ResolvePath(view.Directory, name)
	if _, err := os.Lstat(dest); err == nil {
		app.fail(&statepkg.AlreadyExistsError{Path: name})
		return
	}
	if err := os.Rename(entry.FullPath, dest); err != nil {
		app.fail(&statepkg.IOError{Op: "rename", Path: entry.Name, Err: err})
		return
	}
	app.logger.Info("renamed", zap.String("from", entry.FullPath), zap.String("to", dest))

	destDir := filepath.Dir(dest)
	if destDir == view.Directory {
		updated, err := fsutil.Stat(dest)
		if err != nil {
			app.refreshView(view, "")
		} else {
			view.Replace(entry.FullPath, updated)
		}
	} else {
		view.Remove(entry)
		app.refreshOthers(destDir, filepath.Base(dest))
	}
	app.refreshOthers(view.Directory, "")
}

func (app *Application) handleDelete(permanent bool) {
	view, entry, ok := app.selection()
	if !ok {
		return
	}

	question := fmt.Sprintf("Move %s to the trash?", entry.Name)
	if permanent {
		question = fmt.Sprintf("Permanently delete %s?", entry.Name)
	}
	confirmed, err := app.prompter.Confirm(question)
	app.renderer.AfterPrompt()
	if err != nil {
		app.fail(err)
		return
	}
	if !confirmed {
		app.session.Notify("Cancelled")
		return
	}

	if permanent {
		err = os.RemoveAll(entry.FullPath)
		if err != nil {
			err = &statepkg.IOError{Op: "delete", Path: entry.Name, Err: err}
		}
	} else if app.trash == nil {
		err = errors.New("no trash available")
	} else if err = app.trash.Trash(entry.FullPath); err != nil {
		err = fmt.Errorf("cannot move %s to the trash: %w", entry.Name, err)
	}
	if err != nil {
		app.fail(err)
		return
	}
	app.logger.Info("deleted", zap.String("path", entry.FullPath), zap.Bool("permanent", permanent))

	view.Remove(entry)
	app.refreshOthers(view.Directory, "")
}

// handleTransfer moves or copies the selected entry into a directory named by
// tab number or path.
func (app *Application) handleTransfer(move bool) {
	view, entry, ok := app.selection()
	if !ok {
		return
	}

	verb, done, program := "Copy", "Copied", []string{"cp", "-a", "--"}
	if move {
		verb, done, program = "Move", "Moved", []string{"mv", "--"}
	}
	input, ok, err := app.prompter.Line(fmt.Sprintf("%s %s to: ", verb, entry.Name), "")
	app.renderer.AfterPrompt()
	if err != nil {
		app.fail(err)
		return
	}
	input = strings.TrimSpace(input)
	if !ok || input == "" {
		return
	}

	destDir, err := app.resolveDestination(view.Directory, input)
	if err != nil {
		app.fail(err)
		return
	}
	if ok, err := app.ensureDirectory(destDir); err != nil || !ok {
		if err != nil {
			app.fail(err)
		}
		return
	}

	target := filepath.Join(destDir, filepath.Base(entry.FullPath))
	if existing, taken := occupied(destDir, target, entry.Name); taken {
		app.fail(&statepkg.AlreadyExistsError{Path: existing})
		return
	}

	argv := append(program, entry.FullPath, target)
	if err := app.runProgram(argv, view.Directory); err != nil {
		app.fail(err)
		return
	}

	if move {
		view.Remove(entry)
		app.refreshOthers(view.Directory, "")
	}
	app.refreshOthers(destDir, entry.Name)
	app.session.Announce("%s to %s", done, destDir)
}

// occupied reports whether dir already holds target, or another entry that
// displays as name under a different Unicode normalization.
func occupied(dir, target, name string) (string, bool) {
	if _, err := os.Lstat(target); err == nil {
		return target, true
	}
	entries, err := fsutil.ReadEntries(dir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		if e.Name == name {
			return e.FullPath, true
		}
	}
	return "", false
}

// resolveDestination interprets input as a tab number (1-10) or a path.
func (app *Application) resolveDestination(base, input string) (string, error) {
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= statepkg.MaxTabs {
		if n > len(app.session.Tabs) {
			return "", fmt.Errorf("tab %d: %w", n, statepkg.ErrInvalidTab)
		}
		return app.session.Tabs[n-1].Directory, nil
	}
	return fsutil.ResolvePath(base, input), nil
}

// ensureDirectory checks that dir is a directory, offering to create it when
// it is missing. It reports false when the user declines.
func (app *Application) ensureDirectory(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("%s is not a directory", dir)
		}
		return true, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, &statepkg.IOError{Op: "read", Path: dir, Err: err}
	}

	create, err := app.prompter.Confirm(fmt.Sprintf("%s does not exist. Create it?", dir))
	app.renderer.AfterPrompt()
	if err != nil {
		return false, err
	}
	if !create {
		app.session.Notify("Cancelled")
		return false, nil
	}
	if err := os.MkdirAll(dir, newDirectoryMode); err != nil {
		return false, &statepkg.IOError{Op: "create", Path: dir, Err: err}
	}
	return true, nil
}

func (app *Application) handleMakeDirectory() {
	view := app.session.Active()
	name, ok, err := app.prompter.Line("New directory: ", "")
	app.renderer.AfterPrompt()
	if err != nil {
		app.fail(err)
		return
	}
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return
	}

	path := fsutil.ResolvePath(view.Directory, name)
	if _, err := os.Lstat(path); err == nil {
		app.fail(&statepkg.AlreadyExistsError{Path: name})
		return
	}
	if err := os.Mkdir(path, newDirectoryMode); err != nil {
		app.fail(&statepkg.IOError{Op: "create", Path: name, Err: err})
		return
	}

	if filepath.Dir(path) == view.Directory {
		if entry, err := fsutil.Stat(path); err == nil {
			view.Add(entry)
		}
	}
	app.refreshOthers(filepath.Dir(path), filepath.Base(path))
}

func (app *Application) handleEdit() {
	view, entry, ok := app.selection()
	if !ok {
		return
	}
	if entry.IsDir {
		app.fail(fmt.Errorf("%s is a directory", entry.Name))
		return
	}
	if len(app.editorCmd) == 0 {
		app.session.Notify("No editor found")
		return
	}
	if err := app.runProgram(withArg(app.editorCmd, entry.FullPath), view.Directory); err != nil {
		app.fail(err)
	}
	app.refreshView(view, "")
}

func (app *Application) handleShell() {
	view := app.session.Active()
	if len(app.shellCmd) == 0 {
		app.session.Notify("No shell configured")
		return
	}
	if err := app.runProgram(app.shellCmd, view.Directory); err != nil {
		app.fail(err)
	}
	app.refreshView(view, "")
}

func (app *Application) handleSize() {
	_, entry, ok := app.selection()
	if !ok {
		return
	}
	usage, err := fsutil.DiskUsage(entry.FullPath)
	if err != nil {
		app.fail(&statepkg.IOError{Op: "measure", Path: entry.Name, Err: err})
		return
	}
	app.session.Notify("%s", renderui.UsageLine(entry.Name, usage))
}

func (app *Application) handleInfo() {
	_, entry, ok := app.selection()
	if !ok {
		return
	}
	app.session.Notify("%s", renderui.EntryInfo(&entry))
}

func (app *Application) handleHelp() {
	err := app.prompter.Page(inputui.HelpLines(), app.session.ScreenHeight)
	app.renderer.AfterPrompt()
	if err != nil {
		app.fail(err)
	}
}

func (app *Application) handleSuspend() {
	if err := app.suspend(); err != nil {
		app.fail(err)
		return
	}
	app.renderer.AfterPrompt()
}

// runProgram runs argv on the terminal. The program may print anything, so
// the next line starts fresh.
func (app *Application) runProgram(argv []string, dir string) error {
	if app.launcher == nil {
		return errors.New("cannot run external programs")
	}
	defer app.renderer.AfterPrompt()
	_, err := app.launcher.Run(argv, dir)
	return err
}

// refreshView reloads view, keeping focus on name when given.
func (app *Application) refreshView(view *statepkg.DirectoryView, name string) {
	if err := view.Refresh(); err != nil {
		app.logger.Warn("refresh failed", zap.String("dir", view.Directory), zap.Error(err))
		return
	}
	if name != "" {
		view.Focus(name)
	}
}

// refreshOthers reloads the inactive tabs listing dir.
func (app *Application) refreshOthers(dir, focus string) {
	for _, view := range app.session.ViewsShowing(dir) {
		app.refreshView(view, focus)
	}
}

func withArg(argv []string, arg string) []string {
	return append(append([]string(nil), argv...), arg)
}

package app

import (
	"errors"
	"fmt"
	"io"

	statepkg "github.com/tspivey/fm/internal/state"
	"go.uber.org/zap"
)

// Run reads keys until quit. Every recognised key produces exactly one line
// of output; unrecognised keys produce none.
func (app *Application) Run() error {
	if err := app.render(); err != nil {
		return err
	}

	for !app.shouldQuit {
		ev, err := app.keys.ReadKey()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		action := app.input.ProcessEvent(ev)
		if action == nil {
			continue
		}

		app.session.ClearStatus()
		app.expand = false
		if !app.handleAction(action) {
			continue
		}
		if err := app.render(); err != nil {
			return err
		}
	}

	_, err := io.WriteString(app.out, "\r\n")
	return err
}

func (app *Application) render() error {
	return app.renderer.Render(app.session, app.expand)
}

// handleAction applies action and reports whether a line should be rendered.
func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}
	app.logger.Debug("action", zap.String("type", fmt.Sprintf("%T", action)))

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.SuspendAction:
		app.handleSuspend()
		return true
	}

	app.handleAppAction(action)
	return true
}

func (app *Application) handleAppAction(action statepkg.Action) {
	switch a := action.(type) {
	case statepkg.OpenAction:
		app.handleOpen()
	case statepkg.SearchPromptAction:
		app.handleSearchPrompt()
	case statepkg.SortPromptAction:
		app.handleSortPrompt()
	case statepkg.RenameAction:
		app.handleRename()
	case statepkg.DeleteAction:
		app.handleDelete(a.Permanent)
	case statepkg.MoveAction:
		app.handleTransfer(true)
	case statepkg.CopyAction:
		app.handleTransfer(false)
	case statepkg.MakeDirectoryAction:
		app.handleMakeDirectory()
	case statepkg.EditAction:
		app.handleEdit()
	case statepkg.ShellAction:
		app.handleShell()
	case statepkg.SizeAction:
		app.handleSize()
	case statepkg.InfoAction:
		app.handleInfo()
	case statepkg.ExpandAction:
		app.expand = true
	case statepkg.PrintPathAction:
		app.session.Notify("%s", app.CurrentPath())
	case statepkg.HelpAction:
		app.handleHelp()
	default:
		app.reduce(action)
	}
}

func (app *Application) reduce(action statepkg.Action) {
	if err := app.reducer.Reduce(app.session, action); err != nil {
		app.fail(err)
	}
}

// fail reports a recoverable error on the next line.
func (app *Application) fail(err error) {
	app.session.LastError = err
	app.logger.Warn("action failed", zap.Error(err))
}

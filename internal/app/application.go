package app

import (
	"errors"
	"fmt"
	"io"

	"github.com/gdamore/tcell/v2"
	"github.com/tspivey/fm/internal/config"
	statepkg "github.com/tspivey/fm/internal/state"
	inputui "github.com/tspivey/fm/internal/ui/input"
	promptui "github.com/tspivey/fm/internal/ui/prompt"
	renderui "github.com/tspivey/fm/internal/ui/render"
	"go.uber.org/zap"
)

// KeySource delivers decoded key events.
type KeySource interface {
	ReadKey() (*tcell.EventKey, error)
}

// Launcher runs an external program in dir and waits for it.
type Launcher interface {
	Run(argv []string, dir string) (int, error)
}

// Trasher moves a path to the trash.
type Trasher interface {
	Trash(path string) error
}

// Options wires the application to its collaborators.
type Options struct {
	StartDir string
	Settings *config.Settings
	Keys     KeySource
	Output   io.Writer
	Launcher Launcher
	Trash    Trasher
	Logger   *zap.Logger

	// Terminal geometry, queried once by the caller
	Width  int
	Height int
}

// Application represents the running browser.
type Application struct {
	session  *statepkg.Session
	reducer  *statepkg.StateReducer
	renderer *renderui.Renderer
	input    *inputui.InputHandler
	keys     KeySource
	prompter *promptui.Prompter
	launcher Launcher
	trash    Trasher
	logger   *zap.Logger
	out      io.Writer

	opener    []string
	editorCmd []string
	shellCmd  []string

	shouldQuit bool
	expand     bool
	suspend    func() error
}

// NewApplication opens the first tab at opts.StartDir.
func NewApplication(opts Options) (*Application, error) {
	if opts.Keys == nil || opts.Output == nil {
		return nil, errors.New("application needs a key source and an output")
	}
	settings := opts.Settings
	if settings == nil {
		settings = &config.Settings{SortOrder: statepkg.SortNameAsc}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	session := statepkg.NewSession(settings.SortOrder)
	session.ScreenWidth = opts.Width
	session.ScreenHeight = opts.Height
	if err := session.OpenTab(opts.StartDir); err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", opts.StartDir, err)
	}

	return &Application{
		session:   session,
		reducer:   statepkg.NewStateReducer(),
		renderer:  renderui.NewRenderer(opts.Output),
		input:     inputui.NewInputHandler(),
		keys:      opts.Keys,
		prompter:  promptui.New(opts.Keys, opts.Output),
		launcher:  opts.Launcher,
		trash:     opts.Trash,
		logger:    logger,
		out:       opts.Output,
		opener:    settings.Opener,
		editorCmd: settings.Editor,
		shellCmd:  settings.Shell,
		suspend:   suspendToShell,
	}, nil
}

// Session exposes the browser state.
func (app *Application) Session() *statepkg.Session {
	return app.session
}

// CurrentPath returns the directory of the active tab.
func (app *Application) CurrentPath() string {
	if view := app.session.Active(); view != nil {
		return view.Directory
	}
	return ""
}

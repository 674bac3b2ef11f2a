package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	apppkg "github.com/tspivey/fm/internal/app"
	"github.com/tspivey/fm/internal/config"
	fsutil "github.com/tspivey/fm/internal/fs"
	"github.com/tspivey/fm/internal/launch"
	"github.com/tspivey/fm/internal/logging"
	"github.com/tspivey/fm/internal/shellsetup"
	"github.com/tspivey/fm/internal/ui/input"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

type rootOptions struct {
	configPath  string
	sort        string
	logFile     string
	lastDirFile string
	debug       bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	rootCmd := &cobra.Command{
		Use:   "fm [directory]",
		Short: "A single-line directory browser for screen reader users",
		Long: `fm browses directories one line at a time. Every key produces a single
line of output, so screen readers speak exactly what changed.

Press ? inside fm for the list of keys.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			return runBrowser(opts, dir)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/fm/config.toml)")
	flags.StringVar(&opts.sort, "sort", "", "initial sort order (name-asc, name-desc, size-asc, size-desc, time-asc, time-desc)")
	flags.StringVar(&opts.logFile, "log-file", "", "write a debug log to this file")
	flags.BoolVar(&opts.debug, "debug", false, "log at debug level")
	flags.StringVar(&opts.lastDirFile, "last-dir-file", "", "on quit, write the current directory to this file")

	rootCmd.AddCommand(newSetupCmd())
	return rootCmd
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup [shell]",
		Short: "Print a shell function that changes to fm's last directory on quit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := ""
			if len(args) > 0 {
				shell = args[0]
			}
			exe, err := os.Executable()
			if err != nil {
				exe = "fm"
			}
			script, err := shellsetup.Script(shell, exe, os.Getenv)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), script)
			return err
		},
	}
}

func loadSettings(opts *rootOptions) (*config.Settings, error) {
	path := opts.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if opts.sort != "" {
		cfg.Sort = opts.sort
	}
	if opts.logFile != "" {
		cfg.LogFile = opts.logFile
	}
	if opts.debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg.Resolve(nil)
}

func runBrowser(opts *rootOptions, dir string) error {
	settings, err := loadSettings(opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:       settings.LogLevel,
		Development: opts.debug,
		File:        settings.LogFile,
	})
	if err != nil {
		return fmt.Errorf("cannot open log: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	for _, warning := range settings.Warnings {
		logger.Warn("configuration", zap.String("problem", warning))
	}

	if dir == "" {
		if dir, err = os.Getwd(); err != nil {
			return err
		}
	}
	dir = fsutil.ExpandUserPath(dir)

	in, out := os.Stdin, os.Stdout
	if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
		defer func() {
			_ = tty.Close()
		}()
		in, out = tty, tty
	}
	if !term.IsTerminal(int(in.Fd())) {
		return fmt.Errorf("fm needs a terminal")
	}

	width, height, err := term.GetSize(int(out.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		width, height = fallbackWidth, fallbackHeight
	}

	runner, release := launch.NewTTYRunner(logger)
	defer release()

	app, err := apppkg.NewApplication(apppkg.Options{
		StartDir: dir,
		Settings: settings,
		Keys:     input.NewKeyReader(in),
		Output:   out,
		Launcher: runner,
		Trash:    newTrash(settings, runner, logger),
		Logger:   logger,
		Width:    width,
		Height:   height,
	})
	if err != nil {
		return err
	}

	logger.Info("started", zap.String("dir", dir), zap.Int("width", width), zap.Int("height", height))
	runErr := app.Run()
	if err := shellsetup.WriteLastDir(opts.lastDirFile, app.CurrentPath()); err != nil {
		logger.Warn("cannot record last directory", zap.Error(err))
	}
	return runErr
}

func newTrash(settings *config.Settings, runner *launch.Runner, logger *zap.Logger) apppkg.Trasher {
	if len(settings.TrashCommand) > 0 {
		return launch.NewCommandTrash(runner, settings.TrashCommand)
	}
	trash, err := fsutil.NewHomeTrash()
	if err != nil {
		logger.Warn("home trash unavailable", zap.Error(err))
		return nil
	}
	return trash
}

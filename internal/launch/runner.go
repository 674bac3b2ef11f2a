package launch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
)

var commandBuilder = exec.Command

// Runner starts external programs attached to the terminal and waits for
// them. The browser loop is blocked for as long as the program runs.
type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	logger *zap.Logger
}

// NewRunner creates a runner connected to the given streams.
func NewRunner(stdin io.Reader, stdout, stderr io.Writer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Stdin: stdin, Stdout: stdout, Stderr: stderr, logger: logger}
}

// NewTTYRunner connects programs to the controlling terminal, falling back
// to the process's own streams when there is none. The returned function
// releases the terminal.
func NewTTYRunner(logger *zap.Logger) (*Runner, func()) {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return NewRunner(os.Stdin, os.Stdout, os.Stderr, logger), func() {}
	}
	return NewRunner(tty, tty, tty, logger), func() {
		_ = tty.Close()
	}
}

// Run executes argv in dir and returns its exit status. A program that cannot
// be started yields a *LaunchError; a nonzero status yields an *ExitError.
func (r *Runner) Run(argv []string, dir string) (int, error) {
	if len(argv) == 0 {
		return -1, &LaunchError{Name: "command", Err: errors.New("no program given")}
	}
	name := filepath.Base(argv[0])

	cmd := commandBuilder(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	r.logger.Debug("launching program", zap.Strings("argv", argv), zap.String("dir", dir))
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		r.logger.Warn("program failed", zap.String("program", name), zap.Int("code", code))
		return code, &ExitError{Name: name, Code: code}
	}

	r.logger.Warn("program did not start", zap.String("program", name), zap.Error(err))
	return -1, &LaunchError{Name: name, Err: err}
}

// CommandTrash deletes entries by handing them to an external trash program
// such as "gio trash".
type CommandTrash struct {
	runner *Runner
	argv   []string
}

// NewCommandTrash creates a trash that runs argv with the path appended.
func NewCommandTrash(runner *Runner, argv []string) *CommandTrash {
	return &CommandTrash{runner: runner, argv: append([]string(nil), argv...)}
}

// Trash runs the trash program on path.
func (t *CommandTrash) Trash(path string) error {
	if len(t.argv) == 0 {
		return fmt.Errorf("no trash command configured")
	}
	args := append(append([]string(nil), t.argv...), path)
	_, err := t.runner.Run(args, filepath.Dir(path))
	return err
}

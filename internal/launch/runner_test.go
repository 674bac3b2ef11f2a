package launch

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"
)

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	wd, _ := os.Getwd()
	fmt.Fprintf(os.Stdout, "dir=%s", wd)
	code, _ := strconv.Atoi(os.Getenv("HELPER_PROCESS_EXIT"))
	os.Exit(code)
}

func withFakeCommandBuilder(t *testing.T, exitCode int, recorded *[]string) {
	t.Helper()
	orig := commandBuilder
	commandBuilder = func(name string, args ...string) *exec.Cmd {
		if recorded != nil {
			*recorded = append([]string{name}, args...)
		}
		cmdArgs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.Command(os.Args[0], cmdArgs...)
		cmd.Env = append(os.Environ(),
			"GO_WANT_HELPER_PROCESS=1",
			"HELPER_PROCESS_EXIT="+strconv.Itoa(exitCode),
		)
		return cmd
	}
	t.Cleanup(func() {
		commandBuilder = orig
	})
}

func TestRunSuccessRunsInDirectory(t *testing.T) {
	dir := t.TempDir()
	var recorded []string
	withFakeCommandBuilder(t, 0, &recorded)

	var out bytes.Buffer
	runner := NewRunner(nil, &out, &out, nil)
	code, err := runner.Run([]string{"mv", "a", "b"}, dir)
	if err != nil || code != 0 {
		t.Fatalf("Run returned %d, %v", code, err)
	}
	if len(recorded) != 3 || recorded[0] != "mv" || recorded[2] != "b" {
		t.Fatalf("unexpected command %v", recorded)
	}
	resolved, _ := filepath.EvalSymlinks(dir)
	if got := out.String(); got != "dir="+dir && got != "dir="+resolved {
		t.Fatalf("program ran in wrong directory: %q", got)
	}
}

func TestRunNonzeroExit(t *testing.T) {
	withFakeCommandBuilder(t, 3, nil)

	runner := NewRunner(nil, nil, nil, nil)
	code, err := runner.Run([]string{"/bin/cp", "-a", "x", "y"}, t.TempDir())
	if code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %T %v", err, err)
	}
	if exitErr.Name != "cp" || err.Error() != "cp failed with exit status 3" {
		t.Fatalf("unexpected error %q", err)
	}
}

func TestRunMissingProgram(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil)
	_, err := runner.Run([]string{filepath.Join(t.TempDir(), "no-such-program")}, "")
	var launchErr *LaunchError
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected LaunchError, got %T %v", err, err)
	}

	_, err = runner.Run(nil, "")
	if !errors.As(err, &launchErr) {
		t.Fatalf("expected LaunchError for empty argv, got %v", err)
	}
}

func TestCommandTrashAppendsPath(t *testing.T) {
	var recorded []string
	withFakeCommandBuilder(t, 0, &recorded)

	trash := NewCommandTrash(NewRunner(nil, nil, nil, nil), []string{"gio", "trash"})
	path := filepath.Join(t.TempDir(), "old.txt")
	if err := trash.Trash(path); err != nil {
		t.Fatalf("Trash: %v", err)
	}
	want := []string{"gio", "trash", path}
	if fmt.Sprint(recorded) != fmt.Sprint(want) {
		t.Fatalf("expected %v, got %v", want, recorded)
	}
}

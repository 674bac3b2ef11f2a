//go:build !windows

package app

import "golang.org/x/sys/unix"

// suspendToShell stops the process until the shell resumes it. Only this
// process is signalled so job control in a wrapping shell keeps working.
func suspendToShell() error {
	return unix.Kill(unix.Getpid(), unix.SIGTSTP)
}

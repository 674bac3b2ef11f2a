//go:build windows

package app

import "errors"

// On Windows there is no SIGTSTP/SIGCONT.
func suspendToShell() error {
	return errors.New("suspend is not supported on this platform")
}

package launch

import "fmt"

// LaunchError is returned when an external program could not be started.
type LaunchError struct {
	Name string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("cannot run %s: %v", e.Name, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ExitError is returned when an external program ran but did not succeed.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("%s was terminated", e.Name)
	}
	return fmt.Sprintf("%s failed with exit status %d", e.Name, e.Code)
}

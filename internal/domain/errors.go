package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotProvisioned reports an environment that is still absent after an
	// automatic provisioning attempt.
	ErrNotProvisioned = errors.New("environment not provisioned")
)

// EnvironmentError reports an environment that is absent, broken, or could
// not be (re)created.
type EnvironmentError struct {
	Path string
	Op   string
	Err  error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("environment %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

// CommandError reports a command that was dispatched inside an environment
// and did not succeed: it exited non-zero, could not be resolved on any
// search path, or was cut short.
type CommandError struct {
	CommandLine string
	ExitCode    int
	Stderr      string
	Err         error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %q exited with code %d", e.CommandLine, e.ExitCode)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

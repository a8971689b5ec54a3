package domain

import "time"

// ExecutionResult is the immutable record of one command invocation inside an
// environment.
type ExecutionResult struct {
	CommandLine string
	ExitCode    int
	Stdout      string
	Stderr      string
	Duration    time.Duration
}

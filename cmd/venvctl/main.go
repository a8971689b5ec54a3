package main

import (
	"errors"
	"os"

	"github.com/bnema/venvctl/cmd"
	"github.com/bnema/venvctl/internal/domain"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	// Propagate the child's exit code for run failures.
	var cmdErr *domain.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
		os.Exit(cmdErr.ExitCode)
	}

	os.Exit(1)
}

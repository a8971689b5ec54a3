// Package pip inspects an environment's packages through pip itself, always
// as shell commands via the command runner, never through a native binding.
package pip

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bnema/venvctl/internal/ports"
)

// Inspector answers package queries by running pip inside the environment.
type Inspector struct {
	runner ports.CommandRunner
}

var _ ports.PackageInspector = (*Inspector)(nil)

func NewInspector(runner ports.CommandRunner) *Inspector {
	return &Inspector{runner: runner}
}

type listEntry struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ListInstalled enumerates installed packages as a name to version map.
func (i *Inspector) ListInstalled(ctx context.Context) (map[string]string, error) {
	result, err := i.runner.Run(ctx, "pip", "list", "--format=json", "--disable-pip-version-check")
	if err != nil {
		return nil, fmt.Errorf("list installed packages: %w", err)
	}

	var entries []listEntry
	if err := json.Unmarshal([]byte(result.Stdout), &entries); err != nil {
		return nil, fmt.Errorf("decode pip list output: %w", err)
	}

	installed := make(map[string]string, len(entries))
	for _, entry := range entries {
		installed[entry.Name] = entry.Version
	}

	return installed, nil
}

// SelfCheck runs pip's own dependency-graph integrity verification. A broken
// graph surfaces as the command's non-zero exit.
func (i *Inspector) SelfCheck(ctx context.Context) error {
	if _, err := i.runner.Run(ctx, "pip", "check"); err != nil {
		return fmt.Errorf("pip check: %w", err)
	}

	return nil
}

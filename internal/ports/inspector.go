package ports

import "context"

// PackageInspector enumerates installed packages and verifies the package
// manager's own dependency graph. Implementations go through the command
// runner, never through a native binding.
type PackageInspector interface {
	ListInstalled(ctx context.Context) (map[string]string, error)
	SelfCheck(ctx context.Context) error
}

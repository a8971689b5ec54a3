package ports

import (
	"context"

	"github.com/bnema/venvctl/internal/domain"
)

// CommandRunner executes a command inside an activated environment and
// reports its captured result.
type CommandRunner interface {
	Run(ctx context.Context, command string, args ...string) (domain.ExecutionResult, error)
}

// Package venv provisions virtual environments by shelling out to the
// Python interpreter's venv module.
package venv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"

	"github.com/bnema/venvctl/internal/ports"
	"go.uber.org/zap"
)

// Builder creates environments with `<interpreter> -m venv`. Without
// --clear the module is additive over an existing environment, which gives
// Create its idempotence when clear is false.
type Builder struct {
	interpreter string
	log         *zap.Logger
}

var _ ports.Builder = (*Builder)(nil)

// NewBuilder returns a builder seeding environments from interpreter. An
// empty interpreter selects the platform default; a nil logger disables
// logging.
func NewBuilder(interpreter string, log *zap.Logger) *Builder {
	if interpreter == "" {
		interpreter = DefaultInterpreter()
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Builder{interpreter: interpreter, log: log}
}

// DefaultInterpreter returns the conventional host interpreter name for the
// current platform.
func DefaultInterpreter() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// Interpreter returns the host interpreter this builder seeds from.
func (b *Builder) Interpreter() string {
	return b.interpreter
}

// Create provisions a virtual environment at path. With clear the existing
// contents are wiped first.
func (b *Builder) Create(ctx context.Context, path string, clear bool) error {
	args := []string{"-m", "venv"}
	if clear {
		args = append(args, "--clear")
	}
	args = append(args, path)

	b.log.Debug("invoking environment builder",
		zap.String("interpreter", b.interpreter),
		zap.Strings("args", args))

	cmd := exec.CommandContext(ctx, b.interpreter, args...)
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return fmt.Errorf("%s -m venv: %w: %s", b.interpreter, err, detail)
		}
		return fmt.Errorf("%s -m venv: %w", b.interpreter, err)
	}

	return nil
}

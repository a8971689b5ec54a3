package venv

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuilderDefaultsInterpreter(t *testing.T) {
	t.Parallel()

	builder := NewBuilder("", nil)
	assert.Equal(t, DefaultInterpreter(), builder.Interpreter())

	custom := NewBuilder("python3.12", nil)
	assert.Equal(t, "python3.12", custom.Interpreter())
}

func TestCreateFailsWithMissingInterpreter(t *testing.T) {
	t.Parallel()

	builder := NewBuilder("venvctl_missing_interpreter_xyz", nil)

	err := builder.Create(context.Background(), filepath.Join(t.TempDir(), "env"), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-m venv")
}

func TestCreateProvisionsRealEnvironment(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("POSIX layout assertions")
	}
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available on host")
	}

	path := filepath.Join(t.TempDir(), "env")
	builder := NewBuilder("python3", nil)

	require.NoError(t, builder.Create(context.Background(), path, false))
	assert.FileExists(t, filepath.Join(path, "bin", "activate"))
	assert.FileExists(t, filepath.Join(path, "bin", "python"))

	// Additive second call over an existing environment must succeed.
	require.NoError(t, builder.Create(context.Background(), path, false))
}

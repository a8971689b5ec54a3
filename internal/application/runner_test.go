package application

import (
	"context"
	"os"
	"runtime"
	"testing"
	"time"

	"github.com/bnema/venvctl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("test drives POSIX host commands")
	}
}

func TestRunnerAutoProvisionsMissingEnvironment(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	store := newTestStore(t, newFakeBuilder())
	runner := NewRunner(store, nil)

	require.False(t, store.Exists())

	result, err := runner.Run(context.Background(), "echo", "hello")
	require.NoError(t, err)
	assert.True(t, store.Exists())
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "hello\n", result.Stdout)
	assert.Equal(t, "echo hello", result.CommandLine)
}

func TestRunnerStoresLastResult(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	store := newTestStore(t, newFakeBuilder())
	runner := NewRunner(store, nil)

	_, ok := runner.Result()
	assert.False(t, ok)

	_, err := runner.Run(context.Background(), "echo", "first")
	require.NoError(t, err)

	last, ok := runner.Result()
	require.True(t, ok)
	assert.Equal(t, "first\n", last.Stdout)
}

func TestRunnerAbsentCommandIsCommandError(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	store := newTestStore(t, newFakeBuilder())
	runner := NewRunner(store, nil)

	_, err := runner.Run(context.Background(), "nonexistent_command_xyz")
	require.Error(t, err)

	var cmdErr *domain.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 127, cmdErr.ExitCode)
	assert.Equal(t, "nonexistent_command_xyz", cmdErr.CommandLine)

	_, ok := runner.Result()
	assert.False(t, ok, "failed run must not leave a stale result")
}

func TestRunnerNonZeroExitIsCommandError(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	store := newTestStore(t, newFakeBuilder())
	runner := NewRunner(store, nil)

	_, err := runner.Run(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	require.Error(t, err)

	var cmdErr *domain.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Contains(t, cmdErr.Stderr, "boom")
}

func TestRunnerMissingActivationMarkerFailsFast(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	store := newTestStore(t, newFakeBuilder())
	require.NoError(t, store.Create(context.Background(), false))
	require.NoError(t, os.Remove(store.Layout().ActivatePath(store.Path())))

	runner := NewRunner(store, nil)

	_, err := runner.Run(context.Background(), "echo", "hello")
	require.Error(t, err)

	var envErr *domain.EnvironmentError
	require.ErrorAs(t, err, &envErr)
	assert.Equal(t, "activate", envErr.Op)
	assert.Contains(t, envErr.Error(), "flush")
}

func TestRunnerLayersActivationOntoEnvironment(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	store := newTestStore(t, newFakeBuilder())
	runner := NewRunner(store, nil)

	result, err := runner.RunWith(context.Background(),
		RunOptions{Env: map[string]string{"VENVCTL_TEST_MARKER": "override"}},
		"sh", "-c", `printf '%s|%s|%s' "$VIRTUAL_ENV" "$PATH" "$VENVCTL_TEST_MARKER"`)
	require.NoError(t, err)

	assert.Contains(t, result.Stdout, store.Path()+"|")
	assert.Contains(t, result.Stdout, store.Layout().BinPath(store.Path()))
	assert.Contains(t, result.Stdout, "|override")
}

func TestRunnerPrefersEnvironmentExecutables(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	store := newTestStore(t, newFakeBuilder())
	require.NoError(t, store.Create(context.Background(), false))

	// The fake pip is a no-op shell script, so a zero exit with no output
	// proves the environment's copy won over anything on the host PATH.
	runner := NewRunner(store, nil)
	result, err := runner.Run(context.Background(), "pip")
	require.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.Empty(t, result.Stdout)
}

func TestRunnerTimeoutKillsCommand(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	store := newTestStore(t, newFakeBuilder())
	runner := NewRunner(store, nil)

	start := time.Now()
	_, err := runner.RunWith(context.Background(),
		RunOptions{Timeout: 100 * time.Millisecond},
		"sleep", "10")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)

	var cmdErr *domain.CommandError
	require.ErrorAs(t, err, &cmdErr)
	assert.ErrorIs(t, cmdErr.Err, context.DeadlineExceeded)
}

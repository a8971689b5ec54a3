package filelock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockUnlock(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "env")
	lock := ForEnvironment(root)

	require.NoError(t, lock.Lock())
	require.NoError(t, lock.Unlock())
}

func TestLockFileLivesBesideEnvironmentRoot(t *testing.T) {
	t.Parallel()

	lock := ForEnvironment("/work/.venv")
	assert.Equal(t, "/work/.venv.lock", lock.Path())

	trailing := ForEnvironment("/work/.venv/")
	assert.Equal(t, "/work/.venv.lock", trailing.Path())
}

func TestTryLockReportsAcquisition(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "env")
	lock := ForEnvironment(root)

	acquired, err := lock.TryLock()
	require.NoError(t, err)
	assert.True(t, acquired)
	require.NoError(t, lock.Unlock())
}

package manifest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkThenRead(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	created := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	recorder := NewRecorder("python3")
	require.NoError(t, recorder.Mark(root, created, true))

	m, err := Read(root)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Version)
	assert.Equal(t, "python3", m.Interpreter)
	assert.True(t, m.Cleared)
	assert.Equal(t, created, m.Created())
}

func TestMarkOverwritesPrevious(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	recorder := NewRecorder("python3")

	require.NoError(t, recorder.Mark(root, time.Now(), false))
	require.NoError(t, recorder.Mark(root, time.Now(), true))

	m, err := Read(root)
	require.NoError(t, err)
	assert.True(t, m.Cleared)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestReadWithoutManifest(t *testing.T) {
	t.Parallel()

	_, err := Read(t.TempDir())
	assert.ErrorIs(t, err, ErrNoManifest)
}

func TestReadMalformedManifest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, FileName), []byte("version = ["), 0o644))

	_, err := Read(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode manifest")
}

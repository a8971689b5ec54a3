package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCheckConfigPosix(t *testing.T) {
	t.Parallel()

	cfg := defaultCheckConfig("linux")

	assert.True(t, cfg.Files["bin/activate"])
	assert.True(t, cfg.Files["bin/python"])
	assert.False(t, cfg.Files["Scripts/activate.bat"])
	assert.False(t, cfg.Files["Scripts/python.exe"])
	assert.Equal(t, map[string]string{"pip": ""}, cfg.Packages)
}

func TestDefaultCheckConfigWindows(t *testing.T) {
	t.Parallel()

	cfg := defaultCheckConfig("windows")

	assert.True(t, cfg.Files["Scripts/activate.bat"])
	assert.True(t, cfg.Files["Scripts/python.exe"])
	assert.False(t, cfg.Files["bin/activate"])
	assert.False(t, cfg.Files["bin/python"])
}

func TestMergeCheckConfigReplacesWholeMaps(t *testing.T) {
	t.Parallel()

	base := defaultCheckConfig("linux")
	override := CheckConfig{
		Packages: map[string]string{"requests": ">=2.31.0"},
	}

	merged := MergeCheckConfig(base, override)

	// The supplied packages map entirely replaces the default one, so the
	// default pip entry is gone unless the caller repeats it.
	assert.Equal(t, map[string]string{"requests": ">=2.31.0"}, merged.Packages)
	assert.Equal(t, base.Files, merged.Files)
}

func TestMergeCheckConfigNilMapsKeepDefaults(t *testing.T) {
	t.Parallel()

	base := defaultCheckConfig("linux")
	merged := MergeCheckConfig(base, CheckConfig{})

	assert.Equal(t, base.Files, merged.Files)
	assert.Equal(t, base.Packages, merged.Packages)
}

func TestMergeCheckConfigEmptyMapOverrides(t *testing.T) {
	t.Parallel()

	base := defaultCheckConfig("linux")
	merged := MergeCheckConfig(base, CheckConfig{Files: map[string]bool{}})

	assert.Empty(t, merged.Files)
	assert.Equal(t, base.Packages, merged.Packages)
}

func TestLayoutPaths(t *testing.T) {
	t.Parallel()

	posix := layoutFor("linux")
	require.Equal(t, "bin", posix.BinDir)
	assert.Equal(t, "/env/bin/activate", posix.ActivatePath("/env"))
	assert.Equal(t, "/env/bin/python", posix.InterpreterPath("/env"))

	windows := layoutFor("windows")
	require.Equal(t, "Scripts", windows.BinDir)
	assert.Equal(t, "activate.bat", windows.ActivateScript)
	assert.Equal(t, "python.exe", windows.Interpreter)
}

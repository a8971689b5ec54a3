package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/bnema/venvctl/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, version.Version)
}

func TestRunRequiresCommand(t *testing.T) {
	_, _, err := executeCLI(t, "--path", tempEnvPath(t), "run")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run requires a command")
}

func TestRunRejectsMalformedEnvOverride(t *testing.T) {
	_, _, err := executeCLI(t, "--path", tempEnvPath(t), "run", "--env", "NOEQUALS", "--", "echo", "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected KEY=VALUE")
}

func TestRemoveAbsentEnvironmentSucceeds(t *testing.T) {
	stdout, _, err := executeCLI(t, "--path", tempEnvPath(t), "remove")
	require.NoError(t, err)
	assert.Contains(t, stdout, "environment removed")
}

func TestStatusReportsUnprovisionedEnvironment(t *testing.T) {
	stdout, _, err := executeCLI(t, "--path", tempEnvPath(t), "status")
	require.NoError(t, err)
	assert.Contains(t, stdout, "not provisioned")
}

func TestStatusJSONOutput(t *testing.T) {
	stdout, _, err := executeCLI(t, "--path", tempEnvPath(t), "status", "--json")
	require.NoError(t, err)
	require.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, `"Exists": false`)
}

func tempEnvPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "env")
}

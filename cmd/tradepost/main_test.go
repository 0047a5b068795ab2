package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tradepostBin is the binary built by TestMain.
var tradepostBin string

// TestMain builds the tradepost binary once before running tests.
func TestMain(m *testing.M) {
	tmpDir, err := os.MkdirTemp("", "tradepost-test-*")
	if err != nil {
		fmt.Fprintln(os.Stderr, "create temp dir:", err)
		os.Exit(1)
	}
	tradepostBin = filepath.Join(tmpDir, "tradepost")

	build := exec.Command("go", "build", "-o", tradepostBin, ".")
	if out, err := build.CombinedOutput(); err != nil {
		fmt.Fprintf(os.Stderr, "build tradepost: %v\n%s", err, out)
		os.RemoveAll(tmpDir)
		os.Exit(1)
	}

	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// testEnv is an isolated config and data directory for one test.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	return &testEnv{t: t, configDir: filepath.Join(dir, "config"), dataDir: filepath.Join(dir, "data")}
}

// run executes the binary and returns stdout, stderr and the exit code.
func (e *testEnv) run(args ...string) (string, string, int) {
	e.t.Helper()
	all := append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...)
	cmd := exec.Command(tradepostBin, all...)
	cmd.Env = append(os.Environ(), "TRADEPOST_SYNC=", "TRADEPOST_FILE=")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else {
		require.NoError(e.t, err)
	}
	return stdout.String(), stderr.String(), code
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	stdout, stderr, code := e.run(args...)
	require.Zero(e.t, code, "tradepost %v\nstderr: %s", args, stderr)
	return stdout
}

func TestStateSurvivesAcrossInvocations(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init")
	env.mustRun("goods", "add", "--name", "Silver Sword", "--value", "250", "--quantity", "10")
	env.mustRun("hunters", "add", "--name", "Geralt of Rivia", "--race", "Human")

	out := env.mustRun("sales", "record", "--hunter", "1", "--good", "1", "--quantity", "10")
	assert.Contains(t, out, "2500 crowns")

	out = env.mustRun("goods", "list")
	assert.Contains(t, out, "No goods found.")
	out = env.mustRun("reports", "most-in-demand")
	assert.Contains(t, out, "Silver Sword")
}

func TestExitCodes(t *testing.T) {
	env := newTestEnv(t)

	_, stderr, code := env.run("goods", "get", "7")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error:")

	require.NoError(t, os.MkdirAll(env.dataDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.dataDir, "db.json"), []byte("not json"), 0o644))
	_, _, code = env.run("goods", "list")
	assert.Equal(t, 2, code)
}

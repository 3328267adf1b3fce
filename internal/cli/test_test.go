package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harnessScenarios = "../harness/testdata/scenarios"

func executeTest(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTest_HarnessScenarios(t *testing.T) {
	out, err := executeTest(t, "text", harnessScenarios)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ broken_truth")
	assert.Contains(t, out, "✓ charm_and_beauty")
	assert.Contains(t, out, "Test Summary: 2 passed, 0 failed, 2 total")
}

func TestTest_Filter(t *testing.T) {
	out, err := executeTest(t, "json", harnessScenarios, "--filter", "broken*")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Data.Total)
	assert.Equal(t, "broken_truth", resp.Data.Scenarios[0].Name)
}

const singleScenario = `name: single
description: "One prompt D+ muon"
events:
  - index: 0
    particles:
      - {id: 1, pdg: 2212, status: 4}
      - {id: 2, pdg: 92, status: -71, mothers: [1]}
      - {id: 3, pdg: 411, status: 83, mothers: [2]}
      - {id: 4, pdg: 13, status: 91, mothers: [3], eta: -3.0, pt: 2.0}
    tracks:
      - {eta: -3.0, pt: 2.0, truth: 4}
assertions:
  - type: result_count
    count: %d
`

func writeScenario(t *testing.T, dir string, count int) {
	t.Helper()
	content := []byte(fmt.Sprintf(singleScenario, count))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "single.yaml"), content, 0o644))
}

func TestTest_UpdateThenCompare(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, 1)

	out, err := executeTest(t, "text", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ single (golden updated)")

	golden, err := os.ReadFile(filepath.Join(dir, "golden", "single.golden"))
	require.NoError(t, err)
	assert.Contains(t, string(golden), "4,-3,2,0,0,411,0,0,0,0,0,1\n")

	out, err = executeTest(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ single\n")

	// A golden that no longer matches fails the scenario.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "golden", "single.golden"), []byte("stale\n"), 0o644))
	out, err = executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "does not match golden file")
}

func TestTest_FailingAssertion(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, 3)

	out, err := executeTest(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ single")
	assert.Contains(t, out, "Test Summary: 0 passed, 1 failed, 1 total")
}

func TestTest_NoScenarios(t *testing.T) {
	out, err := executeTest(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTest_MissingDir(t *testing.T) {
	_, err := executeTest(t, "text", filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

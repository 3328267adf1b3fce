package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storedRun runs the pipeline over testdata/events.yaml into a fresh
// database and returns its path.
func storedRun(t *testing.T) string {
	t.Helper()
	opts, cmd, _, _ := newTestRun(t, "text")
	opts.Database = filepath.Join(t.TempDir(), "runs.db")
	require.NoError(t, runPipeline(opts, "testdata/events.yaml", cmd))
	return opts.Database
}

func executeReport(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewReportCommand(&RootOptions{Format: format})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestReport_Latest(t *testing.T) {
	db := storedRun(t)

	out, err := executeReport(t, "text", "--db", db)
	require.NoError(t, err)

	assert.Contains(t, out, "Run test-run-cli (completed)")
	assert.Contains(t, out, "input:            testdata/events.yaml")
	assert.Contains(t, out, "results:          2 (prompt 1, non-prompt 1)")
	assert.Contains(t, out, "   411          1          1           0\n")
	assert.Contains(t, out, "   421          1          0           1\n")
	assert.Contains(t, out, "eventCounterReco (entries=2)")
	assert.Contains(t, out, "muPtHistReco (entries=3)")
	assert.Contains(t, out, "muPtHistRecoD (entries=2)")
}

func TestReport_ByRunID(t *testing.T) {
	db := storedRun(t)

	out, err := executeReport(t, "json", "--db", db, "--run", "test-run-cli")
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		RunID  string     `json:"run_id"`
		Data   ReportData `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "test-run-cli", resp.RunID)
	assert.Equal(t, int64(2), resp.Data.Run.Emitted)
	require.Len(t, resp.Data.Mothers, 2)
	assert.Equal(t, 411, resp.Data.Mothers[0].MotherPDG)
	assert.Len(t, resp.Data.Histograms, 3)
}

func TestReport_List(t *testing.T) {
	db := storedRun(t)

	out, err := executeReport(t, "text", "--db", db, "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "test-run-cli  completed")
	assert.Contains(t, out, "2 results  testdata/events.yaml")
}

func TestReport_UnknownRun(t *testing.T) {
	db := storedRun(t)

	out, err := executeReport(t, "text", "--db", db, "--run", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E005]: run not found")
}

func TestReport_MissingDatabase(t *testing.T) {
	_, err := executeReport(t, "text", "--db", filepath.Join(t.TempDir(), "none.db"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestReport_RequiresDB(t *testing.T) {
	_, err := executeReport(t, "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

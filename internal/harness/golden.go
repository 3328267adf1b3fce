package harness

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot renders the deterministic parts of a scenario outcome: the
// CSV report, the diagnostic stream and the pipeline counters.
func Snapshot(name string, result *Result) ([]byte, error) {
	stats, err := json.MarshalIndent(result.Stats, "", "  ")
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("# scenario: " + name + "\n")
	b.WriteString("# report\n")
	b.WriteString(result.Report)
	b.WriteString("# diagnostics\n")
	b.WriteString(result.Diagnostics)
	b.WriteString("# stats\n")
	b.Write(stats)
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Assertion failures and
// golden mismatches fail t.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already computed result against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snap, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, snap)

	return nil
}

package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/fwdmuon/internal/cuts"
	"github.com/roach88/fwdmuon/internal/output/csv"
	"github.com/roach88/fwdmuon/internal/output/multi"
	"github.com/roach88/fwdmuon/internal/pipeline"
	"github.com/roach88/fwdmuon/internal/source"
	"github.com/roach88/fwdmuon/internal/store"
	"github.com/roach88/fwdmuon/internal/testutil"
)

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
//
// Execution flow:
// 1. Create fresh in-memory database and a run with a fixed ID
// 2. Attach the CSV report, the store and the diagnostic stream
// 3. Process the scenario events through the pipeline
// 4. Persist histograms and the run summary
// 5. Evaluate assertions
//
// A returned error means the scenario could not be executed at all (for
// example a failing output); assertion failures are reported in Result.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	ctx := context.Background()
	runID := testutil.NewFixedRunIDGenerator(scenario.RunID).Generate()
	if err := st.CreateRun(ctx, runID, scenario.Name); err != nil {
		return nil, err
	}

	cut, err := cuts.Compile(scenario.Cut)
	if err != nil {
		return nil, err
	}

	var report, diag bytes.Buffer
	csvOut, err := csv.New(&report)
	if err != nil {
		return nil, err
	}
	out := multi.New(csvOut, store.NewResultWriter(st, runID))

	p := pipeline.New(out,
		pipeline.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), // Suppress logs in tests
		pipeline.WithDiagnostics(&diag),
		pipeline.WithCut(cut),
	)

	stats, runErr := p.Run(ctx, source.NewSlice(scenario.Events...))
	if err := out.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil {
		return nil, fmt.Errorf("failed to execute scenario %s: %w", scenario.Name, runErr)
	}

	snaps := p.Histograms().Snapshots()
	if err := st.WriteHistograms(ctx, runID, snaps); err != nil {
		return nil, err
	}
	if err := st.FinishRun(ctx, store.Run{
		ID:              runID,
		Input:           scenario.Name,
		Status:          store.StatusCompleted,
		Events:          stats.Events,
		Tracks:          stats.Tracks,
		Muons:           stats.Muons,
		Emitted:         stats.Emitted,
		Prompt:          stats.Prompt,
		Duplicates:      stats.Duplicates,
		IntegrityErrors: stats.IntegrityErrors,
	}); err != nil {
		return nil, err
	}

	results, err := st.ReadResults(ctx, runID)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	result.RunID = runID
	result.Results = results
	result.Stats = stats
	result.Histograms = snaps
	result.Report = report.String()
	result.Diagnostics = diag.String()

	actx := &AssertionContext{
		Store: st,
		Ctx:   ctx,
		RunID: runID,
	}
	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(errMsg)
	}

	return result, nil
}

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fwdmuon/internal/histo"
)

func TestWriteResult_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	r1 := createTestResult(77, 421, false)
	r1.Chain = []int{421, 521}
	r2 := createTestResult(12, 411, true)

	require.NoError(t, s.WriteResult(ctx, "run-1", 1, r1))
	require.NoError(t, s.WriteResult(ctx, "run-1", 2, r2))

	got, err := s.ReadResults(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, r1, got[0])
	assert.Equal(t, r2, got[1])
}

func TestWriteResult_RejectsSecondResultForSameMuon(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	require.NoError(t, s.WriteResult(ctx, "run-1", 1, createTestResult(77, 421, false)))
	err := s.WriteResult(ctx, "run-1", 2, createTestResult(77, 421, false))
	assert.Error(t, err)
}

func TestWriteResult_UnknownRun(t *testing.T) {
	s := createTestStore(t)
	err := s.WriteResult(context.Background(), "missing", 1, createTestResult(1, 411, true))
	assert.Error(t, err, "foreign key should reject results for unknown runs")
}

func TestReadResults_EmptyRun(t *testing.T) {
	s := createTestStore(t)
	createTestRun(t, s, "run-1")

	got, err := s.ReadResults(context.Background(), "run-1")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFinishRun(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	run := Run{ID: "run-1", Status: StatusCompleted, Events: 3, Tracks: 9, Muons: 5, Emitted: 4, Prompt: 1, Duplicates: 1}
	require.NoError(t, s.FinishRun(ctx, run))

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	run.Input = "events.yaml"
	assert.Equal(t, run, got)
}

func TestFinishRun_Unknown(t *testing.T) {
	s := createTestStore(t)
	err := s.FinishRun(context.Background(), Run{ID: "nope", Status: StatusFailed})
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestWriteHistograms_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestRun(t, s, "run-1")

	reg := histo.NewRegistry(histo.Axis{Bins: 2, Min: 0, Max: 10})
	reg.CountEvent()
	require.NoError(t, reg.Fill(histo.ForwardPt, 1))
	require.NoError(t, reg.Fill(histo.ForwardPt, 7))
	require.NoError(t, reg.Fill(histo.HeavyFlavor, 7))

	require.NoError(t, s.WriteHistograms(ctx, "run-1", reg.Snapshots()))
	// Writing twice replaces the earlier snapshot.
	require.NoError(t, s.WriteHistograms(ctx, "run-1", reg.Snapshots()))

	got, err := s.ReadHistograms(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 3)

	byName := map[string]histo.Snapshot{}
	for _, snap := range got {
		byName[snap.Name] = snap
	}
	assert.Equal(t, int64(1), byName[histo.EventCounter].Entries)
	assert.Equal(t, int64(2), byName[histo.ForwardPt].Entries)
	require.Len(t, byName[histo.ForwardPt].Bins, 2)
	assert.Equal(t, int64(1), byName[histo.ForwardPt].Bins[0].Entries)
	assert.Equal(t, int64(1), byName[histo.HeavyFlavor].Bins[1].Entries)
}

package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/roach88/fwdmuon/internal/model"
)

// ErrSinkFull is returned by a RecordingOutput once its limit is reached.
var ErrSinkFull = errors.New("sink full")

// RecordingOutput collects results in memory.
//
// Thread-safety: all methods are safe for concurrent use.
type RecordingOutput struct {
	mu      sync.Mutex
	results []model.Result
	limit   int
	fail    map[model.ParticleID]int
	closed  bool
}

// NewRecordingOutput creates an output that accepts every write.
func NewRecordingOutput() *RecordingOutput {
	return &RecordingOutput{limit: -1, fail: make(map[model.ParticleID]int)}
}

// FailAfter makes the output reject every write once n results are stored.
func (o *RecordingOutput) FailAfter(n int) *RecordingOutput {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.limit = n
	return o
}

// FailFor makes the next n writes of particle id fail.
func (o *RecordingOutput) FailFor(id model.ParticleID, n int) *RecordingOutput {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.fail[id] = n
	return o
}

// Write records result or returns ErrSinkFull.
func (o *RecordingOutput) Write(_ context.Context, result model.Result) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.fail[result.TruthID] > 0 {
		o.fail[result.TruthID]--
		return ErrSinkFull
	}
	if o.limit >= 0 && len(o.results) >= o.limit {
		return ErrSinkFull
	}
	o.results = append(o.results, result)
	return nil
}

// Close marks the output closed.
func (o *RecordingOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	return nil
}

// Results returns a copy of the recorded results.
func (o *RecordingOutput) Results() []model.Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]model.Result(nil), o.results...)
}

// Closed reports whether Close was called.
func (o *RecordingOutput) Closed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

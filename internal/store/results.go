package store

import (
	"context"

	"github.com/roach88/fwdmuon/internal/model"
)

// ResultWriter adapts a Store to output.Output for one run. Results are
// numbered in the order they are written.
type ResultWriter struct {
	store *Store
	runID string
	seq   int64
}

// NewResultWriter writes results under runID. The run must already exist.
func NewResultWriter(s *Store, runID string) *ResultWriter {
	return &ResultWriter{store: s, runID: runID}
}

// Write stores result with the next sequence number. The sequence only
// advances on success.
func (w *ResultWriter) Write(ctx context.Context, result model.Result) error {
	if err := w.store.WriteResult(ctx, w.runID, w.seq+1, result); err != nil {
		return err
	}
	w.seq++
	return nil
}

// Written returns the number of results stored so far.
func (w *ResultWriter) Written() int64 {
	return w.seq
}

// Close is a no-op; the Store is closed by its owner.
func (w *ResultWriter) Close() error {
	return nil
}

package store

import (
	"context"
	"fmt"

	"github.com/roach88/fwdmuon/internal/histo"
	"github.com/roach88/fwdmuon/internal/model"
)

// Run status values.
const (
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusFailed      = "failed"
	StatusInterrupted = "interrupted"
)

// Run is the stored summary of one classification run.
type Run struct {
	ID              string `json:"id"`
	Input           string `json:"input"`
	Status          string `json:"status"`
	Events          int64  `json:"events"`
	Tracks          int64  `json:"tracks"`
	Muons           int64  `json:"muons"`
	Emitted         int64  `json:"emitted"`
	Prompt          int64  `json:"prompt"`
	Duplicates      int64  `json:"duplicates"`
	IntegrityErrors int64  `json:"integrity_errors"`
}

// CreateRun inserts a new run in the running state.
func (s *Store) CreateRun(ctx context.Context, id, input string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, input, status) VALUES (?, ?, ?)
	`, id, input, StatusRunning)
	if err != nil {
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// FinishRun records the final counters and status of run.ID.
func (s *Store) FinishRun(ctx context.Context, run Run) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET
			status = ?, events = ?, tracks = ?, muons = ?, emitted = ?,
			prompt = ?, duplicates = ?, integrity_errors = ?
		WHERE id = ?
	`,
		run.Status,
		run.Events,
		run.Tracks,
		run.Muons,
		run.Emitted,
		run.Prompt,
		run.Duplicates,
		run.IntegrityErrors,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish run: %w: %s", ErrRunNotFound, run.ID)
	}
	return nil
}

// WriteResult appends one classification result to a run.
//
// A second result for the same truth particle in one run violates
// UNIQUE(run_id, truth_id) and is returned as an error.
func (s *Store) WriteResult(ctx context.Context, runID string, seq int64, r model.Result) error {
	chain, err := marshalChain(r.Chain)
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results
		(run_id, seq, truth_id, eta, pt, p, phi, mother_pdg, n_clusters,
		 pdca, chi2, chi2_mchmid, chi2_mchmft, is_prompt, chain)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		runID,
		seq,
		int64(r.TruthID),
		r.RecoEta,
		r.RecoPt,
		r.RecoP,
		r.RecoPhi,
		r.MotherPDG,
		r.NClusters,
		r.PDCA,
		r.Chi2,
		r.Chi2MatchMCHMID,
		r.Chi2MatchMCHMFT,
		boolToInt(r.IsPrompt),
		chain,
	)
	if err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// WriteHistograms stores the final histogram snapshots of a run in a
// single transaction, replacing any earlier snapshot for the same run.
func (s *Store) WriteHistograms(ctx context.Context, runID string, snaps []histo.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write histograms: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.ExecContext(ctx, `DELETE FROM histogram_bins WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("write histograms: clear bins: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM histograms WHERE run_id = ?`, runID); err != nil {
		return fmt.Errorf("write histograms: clear: %w", err)
	}

	for _, snap := range snaps {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO histograms (run_id, name, entries) VALUES (?, ?, ?)
		`, runID, snap.Name, snap.Entries); err != nil {
			return fmt.Errorf("write histograms: %s: %w", snap.Name, err)
		}
		for i, b := range snap.Bins {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO histogram_bins (run_id, name, bin, low, high, entries, sumw)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, runID, snap.Name, i, b.Low, b.High, b.Entries, b.SumW); err != nil {
				return fmt.Errorf("write histograms: %s bin %d: %w", snap.Name, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write histograms: commit: %w", err)
	}
	return nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/fwdmuon/internal/histo"
	"github.com/roach88/fwdmuon/internal/model"
)

// ErrRunNotFound is returned when a run ID is not in the store.
var ErrRunNotFound = errors.New("run not found")

const runColumns = `id, input, status, events, tracks, muons, emitted, prompt, duplicates, integrity_errors`

// ReadRun returns the stored summary of one run.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run: %w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}
	return run, nil
}

// LatestRun returns the most recently created run.
// UUIDv7 run IDs sort by creation time, so the greatest ID is the latest.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY id COLLATE BINARY DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("latest run: %w", ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// ListRuns returns every stored run ordered by ID.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY id COLLATE BINARY ASC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadResults returns a run's results in emission order.
// Returns an empty slice (not nil) if the run emitted nothing.
func (s *Store) ReadResults(ctx context.Context, runID string) ([]model.Result, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT truth_id, eta, pt, p, phi, mother_pdg, n_clusters,
		       pdca, chi2, chi2_mchmid, chi2_mchmft, is_prompt, chain
		FROM results
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	results := []model.Result{}
	for rows.Next() {
		var (
			r      model.Result
			id     int64
			prompt int
			chain  string
		)
		if err := rows.Scan(&id, &r.RecoEta, &r.RecoPt, &r.RecoP, &r.RecoPhi, &r.MotherPDG, &r.NClusters,
			&r.PDCA, &r.Chi2, &r.Chi2MatchMCHMID, &r.Chi2MatchMCHMFT, &prompt, &chain); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		r.TruthID = model.ParticleID(id)
		r.IsPrompt = prompt != 0
		if r.Chain, err = unmarshalChain(chain); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate results: %w", err)
	}
	return results, nil
}

// MotherCount is the number of results (and prompt results) per mother PDG.
type MotherCount struct {
	MotherPDG int   `json:"mother_pdg"`
	Total     int64 `json:"total"`
	Prompt    int64 `json:"prompt"`
}

// CountByMother groups a run's results by mother PDG code, ascending.
func (s *Store) CountByMother(ctx context.Context, runID string) ([]MotherCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT mother_pdg, COUNT(*), SUM(is_prompt)
		FROM results
		WHERE run_id = ?
		GROUP BY mother_pdg
		ORDER BY mother_pdg ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query mother counts: %w", err)
	}
	defer rows.Close()

	counts := []MotherCount{}
	for rows.Next() {
		var c MotherCount
		if err := rows.Scan(&c.MotherPDG, &c.Total, &c.Prompt); err != nil {
			return nil, fmt.Errorf("scan mother count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mother counts: %w", err)
	}
	return counts, nil
}

// ReadHistograms returns a run's histogram snapshots ordered by name.
func (s *Store) ReadHistograms(ctx context.Context, runID string) ([]histo.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.name, h.entries, b.low, b.high, b.entries, b.sumw
		FROM histograms h
		JOIN histogram_bins b ON b.run_id = h.run_id AND b.name = h.name
		WHERE h.run_id = ?
		ORDER BY h.name COLLATE BINARY ASC, b.bin ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query histograms: %w", err)
	}
	defer rows.Close()

	snaps := []histo.Snapshot{}
	for rows.Next() {
		var (
			name    string
			entries int64
			b       histo.Bin
		)
		if err := rows.Scan(&name, &entries, &b.Low, &b.High, &b.Entries, &b.SumW); err != nil {
			return nil, fmt.Errorf("scan histogram bin: %w", err)
		}
		if n := len(snaps); n == 0 || snaps[n-1].Name != name {
			snaps = append(snaps, histo.Snapshot{Name: name, Entries: entries})
		}
		last := &snaps[len(snaps)-1]
		last.Bins = append(last.Bins, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate histograms: %w", err)
	}
	return snaps, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	err := row.Scan(&r.ID, &r.Input, &r.Status, &r.Events, &r.Tracks, &r.Muons,
		&r.Emitted, &r.Prompt, &r.Duplicates, &r.IntegrityErrors)
	return r, err
}

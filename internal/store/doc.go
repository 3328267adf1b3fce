// Package store provides SQLite-backed persistence for classification runs.
//
// A run is one pass over an input: it owns the results it emitted and the
// final state of its histograms.
//
//   - runs:           one row per run, keyed by a UUIDv7 run ID, holding the
//     run's input path, status and summary counters
//   - results:        one row per emitted classification, in emission order
//     (seq); UNIQUE(run_id, truth_id) backs the one-result-per-muon rule
//   - histograms,
//     histogram_bins: the run's histograms as written at the end of the run
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// All reads order by seq (results) or bin index (histograms) so a stored
// run reads back exactly as it was written.
package store

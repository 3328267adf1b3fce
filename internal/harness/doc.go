// Package harness provides conformance testing for the forward-muon
// selection.
//
// The harness runs scenario events through the real pipeline, with the
// CSV report, the result store and the diagnostic stream all attached, and
// then checks assertions against what came out.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	run_id: test-run-001          # optional, fixed for golden files
//	cut: "pt > 1"                 # optional track cut
//	events:
//	  - index: 0
//	    particles:
//	      - {id: 1, pdg: 411, status: 83}
//	      - {id: 2, pdg: 13, status: 1, mothers: [1], eta: -3.0, pt: 2.0}
//	    tracks:
//	      - {eta: -3.0, pt: 2.0, truth: 2}
//	assertions:
//	  - type: result
//	    id: 2
//	    mother_pdg: 411
//	    prompt: true
//	  - type: result_count
//	    count: 1
//	  - type: stat
//	    stat: duplicates
//	    count: 0
//	  - type: histogram_entries
//	    histogram: muPtHistReco
//	    count: 1
//	  - type: final_state
//	    table: results
//	    where: { truth_id: 2 }
//	    expect: { is_prompt: 1 }
//
// Instead of inline events a scenario may name an events_file, resolved
// relative to the scenario file.
//
// # Assertion Types
//
//   - result: a result exists for the truth particle, with optional mother_pdg and prompt
//   - result_count: exactly count results were emitted
//   - stat: a pipeline counter (by its JSON name) equals count
//   - histogram_entries: a histogram was filled exactly count times
//   - final_state: queries a store table and verifies expected values
//
// # Deterministic Testing
//
// Every scenario runs against a fresh in-memory SQLite store with a fixed
// run ID, so the CSV report and the diagnostic stream are byte-identical
// across runs and can be compared with golden files.
package harness

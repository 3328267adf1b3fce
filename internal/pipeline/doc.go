// Package pipeline implements the forward-muon selection.
//
// A Pipeline is run-scoped: it owns the deduplication set, the histograms
// and the counters of one pass over the input. Events are processed one
// at a time and each event's tracks strictly in order; nothing here is
// safe for concurrent use.
//
// Per track the steps are:
//
//  1. drop tracks without a truth association (and, if configured, tracks
//     failing the quality cut)
//  2. resolve the truth particle and keep muons only
//  3. fill the forward pT histogram when the muon's η is in the window
//  4. drop muons that already produced a result in this run
//  5. resolve the first mother; drop muons without one
//  6. fill the heavy-flavor pT histogram for D-meson mothers
//  7. walk the ancestry from the mother and classify prompt/non-prompt
//  8. write the result, then mark the muon as seen
//
// The dedup set is updated last so that a failed write never hides a muon
// from a later attempt. Integrity errors in the truth record skip the
// track; output errors abort the run.
package pipeline

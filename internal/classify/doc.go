// Package classify decides whether a heavy-flavor muon is prompt.
//
// Two pieces work together:
//
//	Walker   follows first-mother links upwards from the muon's mother while
//	         the generator status marks the record as technical/intermediate
//	         (|status| > 80 or status == 0), and returns the last particle
//	         that satisfied that rule before the walk stopped.
//	IsPrompt compares the hadron family (|pdg| / 100) of that particle with
//	         the family of the mother.
//
// A muon is prompt when the walk ends inside the same hadron family it
// started from, i.e. no other hadron decayed into the muon's mother.
package classify

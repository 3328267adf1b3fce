package classify

// Family groups PDG codes that differ only in their last two digits
// (spin/isospin variants of one meson or baryon family).
// Malformed (zero) codes fall into family 0.
func Family(code int) int {
	if code < 0 {
		code = -code
	}
	return code / 100
}

// IsPrompt reports whether the last ancestor reached by the walk belongs
// to the same hadron family as the muon's mother.
func IsPrompt(motherPDG, lastAncestorPDG int) bool {
	return Family(lastAncestorPDG) == Family(motherPDG)
}

// InRange reports whether |pdg| lies in [lo, hi].
func InRange(pdg, lo, hi int) bool {
	if pdg < 0 {
		pdg = -pdg
	}
	return pdg >= lo && pdg <= hi
}

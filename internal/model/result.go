package model

// Result is the classification of one truth muon, carrying the kinematics
// of the first reconstructed track that pointed at it.
type Result struct {
	TruthID         ParticleID `json:"id"`
	RecoEta         float64    `json:"eta"`
	RecoPt          float64    `json:"pt"`
	RecoP           float64    `json:"p"`
	RecoPhi         float64    `json:"phi"`
	MotherPDG       int        `json:"mother_pdg"` // absolute value
	NClusters       int        `json:"nclusters"`
	PDCA            float64    `json:"pdca"`
	Chi2            float64    `json:"chi2"`
	Chi2MatchMCHMID float64    `json:"chi2_mchmid"`
	Chi2MatchMCHMFT float64    `json:"chi2_mchmft"`
	IsPrompt        bool       `json:"is_prompt"`

	// Chain lists the absolute PDG codes walked from the mother upwards.
	// It is diagnostic only and not part of the report columns.
	Chain []int `json:"chain,omitempty"`
}

// NewResult copies the reco kinematics of track into a Result for id.
func NewResult(id ParticleID, track Track, motherPDG int, prompt bool) Result {
	return Result{
		TruthID:         id,
		RecoEta:         track.Eta,
		RecoPt:          track.Pt,
		RecoP:           track.P,
		RecoPhi:         track.Phi,
		MotherPDG:       motherPDG,
		NClusters:       track.NClusters,
		PDCA:            track.PDCA,
		Chi2:            track.Chi2,
		Chi2MatchMCHMID: track.Chi2MatchMCHMID,
		Chi2MatchMCHMFT: track.Chi2MatchMCHMFT,
		IsPrompt:        prompt,
	}
}

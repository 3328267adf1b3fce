package model

// Track is a reconstructed forward (muon spectrometer) track.
//
// Truth is nil when the track has no simulated-truth association. Several
// tracks may point at the same truth particle (ambiguous reconstruction).
type Track struct {
	Eta             float64     `yaml:"eta" json:"eta"`
	Pt              float64     `yaml:"pt" json:"pt"`
	P               float64     `yaml:"p" json:"p"`
	Phi             float64     `yaml:"phi" json:"phi"`
	NClusters       int         `yaml:"nclusters" json:"nclusters"`
	PDCA            float64     `yaml:"pdca" json:"pdca"`
	Chi2            float64     `yaml:"chi2" json:"chi2"`
	Chi2MatchMCHMID float64     `yaml:"chi2_mchmid" json:"chi2_mchmid"`
	Chi2MatchMCHMFT float64     `yaml:"chi2_mchmft" json:"chi2_mchmft"`
	Truth           *ParticleID `yaml:"truth,omitempty" json:"truth,omitempty"`
}

// TruthID returns the associated truth identity, if any.
func (t Track) TruthID() (ParticleID, bool) {
	if t.Truth == nil {
		return 0, false
	}
	return *t.Truth, true
}

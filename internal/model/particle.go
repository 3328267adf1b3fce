package model

// ParticleID is the identity of a truth particle. It is unique and stable
// for the whole processing run, not only within one event.
type ParticleID int64

// Particle is one generator-level (truth) record.
type Particle struct {
	ID      ParticleID   `yaml:"id" json:"id"`
	PDG     int          `yaml:"pdg" json:"pdg"`
	Status  int          `yaml:"status" json:"status"`
	Mothers []ParticleID `yaml:"mothers,omitempty" json:"mothers,omitempty"`
	Eta     float64      `yaml:"eta" json:"eta"`
	Pt      float64      `yaml:"pt" json:"pt"`
	Phi     float64      `yaml:"phi" json:"phi"`
}

// FirstMother returns the identity of the particle's first mother.
// The second return value is false for primaries.
func (p Particle) FirstMother() (ParticleID, bool) {
	if len(p.Mothers) == 0 {
		return 0, false
	}
	return p.Mothers[0], true
}

// AbsPDG returns the absolute PDG code (antiparticles fold onto particles).
func (p Particle) AbsPDG() int {
	if p.PDG < 0 {
		return -p.PDG
	}
	return p.PDG
}

// IsMuon reports whether the particle is a muon or antimuon.
func (p Particle) IsMuon() bool {
	return p.AbsPDG() == PDGMuon
}

// PDGMuon is the PDG code of the muon.
const PDGMuon = 13

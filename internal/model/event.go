package model

// Event is one collision together with its reconstructed tracks and the
// truth record they were matched against.
type Event struct {
	Index     int        `yaml:"index" json:"index"`
	Particles []Particle `yaml:"particles" json:"particles"`
	Tracks    []Track    `yaml:"tracks" json:"tracks"`
}

// Lookup resolves particle identities.
type Lookup interface {
	Particle(id ParticleID) (Particle, bool)
}

// Table is an identity-indexed view over an event's particles.
type Table struct {
	byID map[ParticleID]Particle
}

// NewTable indexes particles by identity. Two particles sharing one
// identity is a DuplicateID integrity error.
func NewTable(particles []Particle) (*Table, error) {
	t := &Table{byID: make(map[ParticleID]Particle, len(particles))}
	for _, p := range particles {
		if _, dup := t.byID[p.ID]; dup {
			return nil, &IntegrityError{Kind: DuplicateID, ID: p.ID}
		}
		t.byID[p.ID] = p
	}
	return t, nil
}

// Particle implements Lookup.
func (t *Table) Particle(id ParticleID) (Particle, bool) {
	p, ok := t.byID[id]
	return p, ok
}

// Len returns the number of indexed particles.
func (t *Table) Len() int {
	return len(t.byID)
}

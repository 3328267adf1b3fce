// Package testutil provides deterministic fixtures shared by package tests.
package testutil

import "github.com/roach88/fwdmuon/internal/model"

// Status codes used by the fixtures.
const (
	// StatusDecayed is a hadron that decayed in the generator (continues).
	StatusDecayed = 91

	// StatusIntermediate is an intermediate hadron (continues).
	StatusIntermediate = 83

	// StatusString is a hadronizing string (stops the walk).
	StatusString = -71

	// StatusFinal is a final-state particle (stops the walk).
	StatusFinal = 1
)

// EventBuilder assembles an event fluently.
//
//	ev := testutil.NewEvent(0).
//		Particle(1, 2212, 4).
//		Particle(2, 411, testutil.StatusIntermediate, 1).
//		Muon(3, 2, -3.1, 2.4).
//		Track(3, -3.0, 2.3).
//		Build()
type EventBuilder struct {
	ev model.Event
}

// NewEvent starts an empty event with the given index.
func NewEvent(index int) *EventBuilder {
	return &EventBuilder{ev: model.Event{Index: index}}
}

// Particle adds a truth particle.
func (b *EventBuilder) Particle(id model.ParticleID, pdg, status int, mothers ...model.ParticleID) *EventBuilder {
	b.ev.Particles = append(b.ev.Particles, model.Particle{
		ID:      id,
		PDG:     pdg,
		Status:  status,
		Mothers: mothers,
	})
	return b
}

// Muon adds a final-state μ⁻ with the given mother and truth kinematics.
// A zero mother adds a muon without mothers.
func (b *EventBuilder) Muon(id, mother model.ParticleID, eta, pt float64) *EventBuilder {
	p := model.Particle{ID: id, PDG: model.PDGMuon, Status: StatusFinal, Eta: eta, Pt: pt}
	if mother != 0 {
		p.Mothers = []model.ParticleID{mother}
	}
	b.ev.Particles = append(b.ev.Particles, p)
	return b
}

// Track adds a reconstructed track matched to truth.
func (b *EventBuilder) Track(truth model.ParticleID, eta, pt float64) *EventBuilder {
	id := truth
	b.ev.Tracks = append(b.ev.Tracks, model.Track{
		Eta:       eta,
		Pt:        pt,
		P:         pt * 10,
		NClusters: 10,
		Truth:     &id,
	})
	return b
}

// Unmatched adds a reconstructed track without a truth association.
func (b *EventBuilder) Unmatched(eta, pt float64) *EventBuilder {
	b.ev.Tracks = append(b.ev.Tracks, model.Track{Eta: eta, Pt: pt, P: pt * 10})
	return b
}

// Build returns the assembled event.
func (b *EventBuilder) Build() model.Event {
	return b.ev
}

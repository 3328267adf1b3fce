package classify

import (
	"github.com/roach88/fwdmuon/internal/model"
)

// Continues is the walk's continuation rule: generator status codes above
// 80 in magnitude, or exactly 0, mark technical or intermediate entries
// that the walk steps through.
func Continues(p model.Particle) bool {
	return p.Status > 80 || p.Status < -80 || p.Status == 0
}

// Walk is the outcome of one ancestry walk.
type Walk struct {
	// Last is the most recent particle that satisfied Continues before the
	// walk moved past it, or the start particle if the walk never moved.
	Last model.Particle

	// NoMother is true when the walk stopped because the chain ran out of
	// mothers rather than on a particle failing Continues.
	NoMother bool

	// Chain holds every particle the walk stepped through, in order,
	// starting with the start particle.
	Chain []model.Particle
}

// PDGChain returns the absolute PDG codes of the walked particles.
func (w Walk) PDGChain() []int {
	codes := make([]int, len(w.Chain))
	for i, p := range w.Chain {
		codes[i] = p.AbsPDG()
	}
	return codes
}

// Walker follows first-mother links through a read-only truth table.
type Walker struct {
	lookup model.Lookup
}

// NewWalker creates a Walker that resolves mothers through lookup.
func NewWalker(lookup model.Lookup) *Walker {
	return &Walker{lookup: lookup}
}

// Walk starts at start and climbs first mothers while Continues holds.
//
// A mother reference that does not resolve, or a chain that comes back to
// an already visited particle, returns a *model.IntegrityError.
func (w *Walker) Walk(start model.Particle) (Walk, error) {
	current := start
	previous := start
	visited := map[model.ParticleID]struct{}{start.ID: {}}
	var chain []model.Particle

	for {
		motherID, ok := current.FirstMother()
		if !ok {
			return Walk{Last: previous, NoMother: true, Chain: chain}, nil
		}
		if !Continues(current) {
			return Walk{Last: previous, Chain: chain}, nil
		}

		mother, found := w.lookup.Particle(motherID)
		if !found {
			return Walk{}, &model.IntegrityError{Kind: model.DanglingMother, ID: current.ID, Ref: motherID}
		}
		if _, seen := visited[motherID]; seen {
			return Walk{}, &model.IntegrityError{Kind: model.CycleDetected, ID: start.ID, Ref: motherID}
		}
		visited[motherID] = struct{}{}

		chain = append(chain, current)
		previous = current
		current = mother
	}
}

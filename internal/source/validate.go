package source

import (
	"fmt"
	"slices"

	"github.com/roach88/fwdmuon/internal/model"
)

// Problem is one structural defect found in an event.
type Problem struct {
	Event   int                      `json:"event"`
	Track   int                      `json:"track"` // -1 when not track-related
	Kind    model.IntegrityErrorKind `json:"kind"`
	Message string                   `json:"message"`
}

func (p Problem) String() string {
	if p.Track >= 0 {
		return fmt.Sprintf("event %d track %d: %s", p.Event, p.Track, p.Message)
	}
	return fmt.Sprintf("event %d: %s", p.Event, p.Message)
}

// Validate checks an event for duplicate particle identities, dangling
// mother and truth references, and cyclic first-mother chains.
func Validate(ev model.Event) []Problem {
	var problems []Problem
	add := func(track int, err *model.IntegrityError) {
		problems = append(problems, Problem{Event: ev.Index, Track: track, Kind: err.Kind, Message: err.Error()})
	}

	byID := make(map[model.ParticleID]model.Particle, len(ev.Particles))
	for _, p := range ev.Particles {
		if _, dup := byID[p.ID]; dup {
			add(-1, &model.IntegrityError{Kind: model.DuplicateID, ID: p.ID})
			continue
		}
		byID[p.ID] = p
	}

	for _, p := range ev.Particles {
		for _, m := range p.Mothers {
			if _, ok := byID[m]; !ok {
				add(-1, &model.IntegrityError{Kind: model.DanglingMother, ID: p.ID, Ref: m})
			}
		}
	}

	for _, id := range firstMotherCycles(byID) {
		add(-1, &model.IntegrityError{Kind: model.CycleDetected, ID: id, Ref: id})
	}

	for i, t := range ev.Tracks {
		if id, ok := t.TruthID(); ok {
			if _, found := byID[id]; !found {
				add(i, &model.IntegrityError{Kind: model.DanglingTruth, Ref: id})
			}
		}
	}

	return problems
}

// firstMotherCycles returns one member of every cycle in the first-mother
// graph. Each particle has at most one first mother, so the graph is a
// functional graph and colouring walks finds every cycle once.
func firstMotherCycles(byID map[model.ParticleID]model.Particle) []model.ParticleID {
	const (
		unvisited = iota
		onPath
		done
	)
	state := make(map[model.ParticleID]int, len(byID))
	var cycles []model.ParticleID

	ids := sortedIDs(byID)
	for _, start := range ids {
		if state[start] != unvisited {
			continue
		}
		var path []model.ParticleID
		cur := start
		for {
			if state[cur] == onPath {
				cycles = append(cycles, cur)
				break
			}
			if state[cur] == done {
				break
			}
			state[cur] = onPath
			path = append(path, cur)

			m, ok := byID[cur].FirstMother()
			if !ok {
				break
			}
			if _, exists := byID[m]; !exists {
				break
			}
			cur = m
		}
		for _, id := range path {
			state[id] = done
		}
	}
	return cycles
}

func sortedIDs(byID map[model.ParticleID]model.Particle) []model.ParticleID {
	ids := make([]model.ParticleID, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

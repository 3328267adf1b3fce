// Package dedup tracks which truth particles have already produced a
// classification result in the current run.
package dedup

import (
	"slices"

	"github.com/roach88/fwdmuon/internal/model"
)

// Set is an append-only set of truth identities. It grows for the
// lifetime of one run and is cleared only by Reset.
//
// Set is not safe for concurrent mutation.
type Set struct {
	ids map[model.ParticleID]struct{}
}

// New creates an empty Set.
func New() *Set {
	return &Set{ids: make(map[model.ParticleID]struct{})}
}

// Seen reports whether id was already marked.
func (s *Set) Seen(id model.ParticleID) bool {
	_, ok := s.ids[id]
	return ok
}

// MarkSeen records id. Marking an id twice is a no-op.
func (s *Set) MarkSeen(id model.ParticleID) {
	s.ids[id] = struct{}{}
}

// Len returns the number of distinct identities recorded.
func (s *Set) Len() int {
	return len(s.ids)
}

// Reset empties the set at a run boundary.
func (s *Set) Reset() {
	clear(s.ids)
}

// Merge adds every identity in other to s and returns the identities that
// both sets already contained, in ascending order. Per-worker shards reconcile through Merge;
// a non-empty return means the same muon was emitted by two shards.
func (s *Set) Merge(other *Set) []model.ParticleID {
	var overlap []model.ParticleID
	for id := range other.ids {
		if _, ok := s.ids[id]; ok {
			overlap = append(overlap, id)
			continue
		}
		s.ids[id] = struct{}{}
	}
	slices.Sort(overlap)
	return overlap
}

package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fwdmuon/internal/model"
)

func ref(id model.ParticleID) *model.ParticleID { return &id }

func TestValidate_CleanEvent(t *testing.T) {
	ev := model.Event{
		Particles: []model.Particle{{ID: 1}, {ID: 2, Mothers: []model.ParticleID{1}}},
		Tracks:    []model.Track{{Truth: ref(2)}, {}},
	}
	assert.Empty(t, Validate(ev))
}

func TestValidate_FindsEveryKind(t *testing.T) {
	ev := model.Event{
		Index: 7,
		Particles: []model.Particle{
			{ID: 1, Mothers: []model.ParticleID{2}},
			{ID: 2, Mothers: []model.ParticleID{1}},
			{ID: 3, Mothers: []model.ParticleID{99}},
			{ID: 3},
		},
		Tracks: []model.Track{{Truth: ref(1)}, {Truth: ref(42)}},
	}

	problems := Validate(ev)
	kinds := map[model.IntegrityErrorKind]int{}
	for _, p := range problems {
		kinds[p.Kind]++
		assert.Equal(t, 7, p.Event)
	}
	assert.Equal(t, 1, kinds[model.DuplicateID])
	assert.Equal(t, 1, kinds[model.DanglingMother])
	assert.Equal(t, 1, kinds[model.CycleDetected])
	assert.Equal(t, 1, kinds[model.DanglingTruth])

	var truthProblem Problem
	for _, p := range problems {
		if p.Kind == model.DanglingTruth {
			truthProblem = p
		}
	}
	assert.Equal(t, 1, truthProblem.Track)
	assert.Equal(t, "event 7 track 1: dangling_truth: track references missing particle 42", truthProblem.String())
}

func TestValidate_SelfLoop(t *testing.T) {
	ev := model.Event{Particles: []model.Particle{{ID: 5, Mothers: []model.ParticleID{5}}}}
	problems := Validate(ev)
	require.Len(t, problems, 1)
	assert.Equal(t, model.CycleDetected, problems[0].Kind)
	assert.Equal(t, -1, problems[0].Track)
}

func TestValidate_SharedAncestorIsNotACycle(t *testing.T) {
	ev := model.Event{Particles: []model.Particle{
		{ID: 1},
		{ID: 2, Mothers: []model.ParticleID{1}},
		{ID: 3, Mothers: []model.ParticleID{1}},
		{ID: 4, Mothers: []model.ParticleID{2}},
	}}
	assert.Empty(t, Validate(ev))
}

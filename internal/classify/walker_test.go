package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fwdmuon/internal/model"
)

func particle(id model.ParticleID, pdg, status int, mothers ...model.ParticleID) model.Particle {
	return model.Particle{ID: id, PDG: pdg, Status: status, Mothers: mothers}
}

func table(t *testing.T, particles ...model.Particle) *model.Table {
	t.Helper()
	tbl, err := model.NewTable(particles)
	require.NoError(t, err)
	return tbl
}

func TestContinues(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{0, true},
		{81, true},
		{-91, true},
		{80, false},
		{-80, false},
		{1, false},
		{-71, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Continues(model.Particle{Status: tt.status}), "status %d", tt.status)
	}
}

func TestWalk_PromptCharm(t *testing.T) {
	beam := particle(1, 2212, 4)
	str := particle(2, 92, -71, 1)
	dplus := particle(3, 411, 83, 2)

	w := NewWalker(table(t, beam, str, dplus))
	got, err := w.Walk(dplus)
	require.NoError(t, err)

	assert.Equal(t, dplus.ID, got.Last.ID)
	assert.False(t, got.NoMother)
	assert.Equal(t, []int{411}, got.PDGChain())
	assert.True(t, IsPrompt(dplus.PDG, got.Last.PDG))
}

func TestWalk_CharmFromBeauty(t *testing.T) {
	beam := particle(1, 2212, 4)
	str := particle(2, 92, -71, 1)
	lambdaB := particle(3, 5122, 83, 2)
	d0 := particle(4, 421, 91, 3)

	w := NewWalker(table(t, beam, str, lambdaB, d0))
	got, err := w.Walk(d0)
	require.NoError(t, err)

	assert.Equal(t, lambdaB.ID, got.Last.ID)
	assert.Equal(t, []int{421, 5122}, got.PDGChain())
	assert.False(t, IsPrompt(d0.PDG, got.Last.PDG))
}

func TestWalk_ExhaustsMothers(t *testing.T) {
	top := particle(1, 2, 90)
	mid := particle(2, 511, 85, 1)
	start := particle(3, 411, 0, 2)

	w := NewWalker(table(t, top, mid, start))
	got, err := w.Walk(start)
	require.NoError(t, err)

	assert.True(t, got.NoMother)
	assert.Equal(t, mid.ID, got.Last.ID)
	assert.Equal(t, []int{411, 511}, got.PDGChain())
}

func TestWalk_StartFailsPredicate(t *testing.T) {
	parent := particle(1, 521, 91)
	start := particle(2, 421, 2, 1)

	w := NewWalker(table(t, parent, start))
	got, err := w.Walk(start)
	require.NoError(t, err)

	assert.Equal(t, start, got.Last)
	assert.False(t, got.NoMother)
	assert.Empty(t, got.Chain)
}

func TestWalk_StartWithoutMother(t *testing.T) {
	start := particle(1, 421, 91)

	w := NewWalker(table(t, start))
	got, err := w.Walk(start)
	require.NoError(t, err)

	assert.Equal(t, start, got.Last)
	assert.True(t, got.NoMother)
}

func TestWalk_DanglingMother(t *testing.T) {
	start := particle(1, 421, 91, 99)

	w := NewWalker(table(t, start))
	_, err := w.Walk(start)
	require.Error(t, err)
	assert.True(t, model.IsIntegrityError(err))

	var ie *model.IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, model.DanglingMother, ie.Kind)
	assert.Equal(t, model.ParticleID(99), ie.Ref)
}

func TestWalk_CycleDetected(t *testing.T) {
	a := particle(1, 421, 91, 2)
	b := particle(2, 521, 83, 1)

	w := NewWalker(table(t, a, b))
	_, err := w.Walk(a)

	var ie *model.IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, model.CycleDetected, ie.Kind)
	assert.Equal(t, model.ParticleID(1), ie.Ref)
}

func TestWalk_SelfLoop(t *testing.T) {
	a := particle(1, 421, 0, 1)

	w := NewWalker(table(t, a))
	_, err := w.Walk(a)

	var ie *model.IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, model.CycleDetected, ie.Kind)
}

func TestFormatChain(t *testing.T) {
	assert.Equal(t, "==== Forward muon decay chain: mu <- 421 <- 521; isPrompt = 0", FormatChain([]int{421, 521}, false))
	assert.Equal(t, "==== Forward muon decay chain: mu; isPrompt = 1", FormatChain(nil, true))
}

package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/fwdmuon/internal/model"
)

func TestSet_SeenAfterMark(t *testing.T) {
	s := New()
	assert.False(t, s.Seen(77))

	s.MarkSeen(77)
	assert.True(t, s.Seen(77))
	assert.False(t, s.Seen(78))
	assert.Equal(t, 1, s.Len())

	s.MarkSeen(77)
	assert.Equal(t, 1, s.Len())
}

func TestSet_Reset(t *testing.T) {
	s := New()
	s.MarkSeen(1)
	s.MarkSeen(2)

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Seen(1))
}

func TestSet_Merge(t *testing.T) {
	a := New()
	a.MarkSeen(1)
	a.MarkSeen(2)

	b := New()
	b.MarkSeen(2)
	b.MarkSeen(3)

	overlap := a.Merge(b)
	assert.Equal(t, []model.ParticleID{2}, overlap)
	assert.Equal(t, 3, a.Len())
	assert.True(t, a.Seen(3))
}

func TestSet_MergeOverlapIsSorted(t *testing.T) {
	a := New()
	b := New()
	for _, id := range []model.ParticleID{90, 7, 55, 12, 3, 41} {
		a.MarkSeen(id)
		b.MarkSeen(id)
	}
	b.MarkSeen(100)

	assert.Equal(t, []model.ParticleID{3, 7, 12, 41, 55, 90}, a.Merge(b))
	assert.Equal(t, 7, a.Len())
}

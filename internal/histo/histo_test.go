package histo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_BooksThreeHistograms(t *testing.T) {
	r := NewRegistry(DefaultPtAxis)
	assert.Equal(t, []string{EventCounter, ForwardPt, HeavyFlavor}, r.Names())
	assert.Len(t, r.Bins(EventCounter), 1)
	assert.Len(t, r.Bins(ForwardPt), 10)
	assert.Len(t, r.Bins(HeavyFlavor), 10)
}

func TestRegistry_Fill(t *testing.T) {
	r := NewRegistry(DefaultPtAxis)
	require.NoError(t, r.Fill(ForwardPt, 3.0))
	require.NoError(t, r.Fill(ForwardPt, 3.5))
	require.NoError(t, r.Fill(ForwardPt, 19.0))

	assert.Equal(t, int64(3), r.Entries(ForwardPt))
	bins := r.Bins(ForwardPt)
	assert.Equal(t, int64(2), bins[1].Entries)
	assert.InDelta(t, 2.0, bins[1].Low, 1e-9)
	assert.InDelta(t, 4.0, bins[1].High, 1e-9)
	assert.Equal(t, int64(1), bins[9].Entries)
	assert.Equal(t, int64(0), r.Entries(HeavyFlavor))
}

func TestRegistry_FillUnknown(t *testing.T) {
	r := NewRegistry(DefaultPtAxis)
	assert.Error(t, r.Fill("nope", 1))
	assert.Equal(t, int64(0), r.Entries("nope"))
	assert.Nil(t, r.Bins("nope"))
}

func TestRegistry_CountEvent(t *testing.T) {
	r := NewRegistry(DefaultPtAxis)
	r.CountEvent()
	r.CountEvent()

	assert.Equal(t, int64(2), r.Entries(EventCounter))
	assert.InDelta(t, 2.0, r.Bins(EventCounter)[0].SumW, 1e-9)
}

func TestRender(t *testing.T) {
	r := NewRegistry(Axis{Bins: 2, Min: 0, Max: 2})
	require.NoError(t, r.Fill(ForwardPt, 0.5))
	require.NoError(t, r.Fill(ForwardPt, 0.5))
	require.NoError(t, r.Fill(ForwardPt, 1.5))

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r.Snapshots()[1]))
	out := buf.String()
	assert.Contains(t, out, "muPtHistReco (entries=3)")
	assert.Contains(t, out, "[  0.00,   1.00)      2 "+repeat('#', barWidth))
	assert.Contains(t, out, "[  1.00,   2.00)      1 "+repeat('#', barWidth/2))
}

func repeat(c byte, n int) string {
	return string(bytes.Repeat([]byte{c}, n))
}

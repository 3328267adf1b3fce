package cuts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/fwdmuon/internal/model"
)

func TestCompile_EmptyPassesEverything(t *testing.T) {
	c, err := Compile("  ")
	require.NoError(t, err)
	assert.Nil(t, c)

	ok, err := c.Pass(model.Track{})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", c.String())
}

func TestCut_Pass(t *testing.T) {
	c, err := Compile("nclusters >= 8 && chi2 < 5")
	require.NoError(t, err)
	assert.Equal(t, "nclusters >= 8 && chi2 < 5", c.String())

	tests := []struct {
		name  string
		track model.Track
		want  bool
	}{
		{"passes", model.Track{NClusters: 9, Chi2: 1.2}, true},
		{"too few clusters", model.Track{NClusters: 6, Chi2: 1.2}, false},
		{"bad chi2", model.Track{NClusters: 10, Chi2: 7}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := c.Pass(tt.track)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestCut_KinematicWindow(t *testing.T) {
	c, err := Compile("eta >= -4 && eta <= -2.5 && pt > 1")
	require.NoError(t, err)

	ok, err := c.Pass(model.Track{Eta: -3, Pt: 2})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.Pass(model.Track{Eta: -2, Pt: 2})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompile_Rejects(t *testing.T) {
	for _, src := range []string{"pt +", "unknown_var > 1", "pt + 1"} {
		_, err := Compile(src)
		assert.Error(t, err, "src %q", src)
	}
}

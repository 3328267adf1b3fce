package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_CharmAndBeauty(t *testing.T) {
	// Regenerate with:
	//   go test ./internal/harness -run TestRunWithGolden -update
	err := RunWithGolden(t, mustLoad(t, "testdata/scenarios/charm_and_beauty.yaml"))
	require.NoError(t, err)
}

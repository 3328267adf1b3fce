package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_EventsFile(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/charm_and_beauty.yaml")
	require.NoError(t, err)

	assert.Equal(t, "charm_and_beauty", s.Name)
	assert.Equal(t, "test-run-001", s.RunID)
	require.Len(t, s.Events, 2)
	assert.Len(t, s.Events[1].Tracks, 2)
	assert.Len(t, s.Assertions, 12)
}

func TestLoadScenario_InlineEvents(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/broken_truth.yaml")
	require.NoError(t, err)

	require.Len(t, s.Events, 2)
	assert.Empty(t, s.EventsFile)
	require.NotNil(t, s.Assertions[1].Prompt)
	assert.True(t, *s.Assertions[1].Prompt)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does_not_exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_MissingEventsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: s
description: d
events_file: nowhere.yaml
assertions:
  - type: result_count
    count: 0
`), 0o644))

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing name",
			yaml: `
description: d
events: [{index: 0}]
assertions: [{type: result_count}]
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			yaml: `
name: n
events: [{index: 0}]
assertions: [{type: result_count}]
`,
			wantErr: "description is required",
		},
		{
			name: "no events",
			yaml: `
name: n
description: d
assertions: [{type: result_count}]
`,
			wantErr: "events or events_file is required",
		},
		{
			name: "no assertions",
			yaml: `
name: n
description: d
events: [{index: 0}]
`,
			wantErr: "assertions list is required",
		},
		{
			name: "result without id",
			yaml: `
name: n
description: d
events: [{index: 0}]
assertions: [{type: result, prompt: true}]
`,
			wantErr: "id is required for result",
		},
		{
			name: "stat without name",
			yaml: `
name: n
description: d
events: [{index: 0}]
assertions: [{type: stat, count: 1}]
`,
			wantErr: "stat is required",
		},
		{
			name: "histogram without name",
			yaml: `
name: n
description: d
events: [{index: 0}]
assertions: [{type: histogram_entries, count: 1}]
`,
			wantErr: "histogram is required",
		},
		{
			name: "final_state without expect",
			yaml: `
name: n
description: d
events: [{index: 0}]
assertions: [{type: final_state, table: results}]
`,
			wantErr: "expect is required",
		},
		{
			name: "unknown assertion",
			yaml: `
name: n
description: d
events: [{index: 0}]
assertions: [{type: trace_order}]
`,
			wantErr: `unknown assertion type "trace_order"`,
		},
		{
			name: "unknown field",
			yaml: `
name: n
description: d
flow_token: x
events: [{index: 0}]
assertions: [{type: result_count}]
`,
			wantErr: "failed to parse YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

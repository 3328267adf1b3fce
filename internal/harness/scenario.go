package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fwdmuon/internal/model"
	"github.com/roach88/fwdmuon/internal/source"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// RunID is an optional fixed run ID. Defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`

	// Cut is an optional track selection expression.
	Cut string `yaml:"cut,omitempty"`

	// Events are processed in order.
	Events []model.Event `yaml:"events,omitempty"`

	// EventsFile is a multi-document YAML event file, used when Events is
	// empty. Relative paths are resolved against the scenario file.
	EventsFile string `yaml:"events_file,omitempty"`

	// Assertions validate the results, counters, histograms and store.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion types.
const (
	AssertResult           = "result"
	AssertResultCount      = "result_count"
	AssertStat             = "stat"
	AssertHistogramEntries = "histogram_entries"
	AssertFinalState       = "final_state"
)

// Assertion validates one aspect of a scenario's outcome.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// ID is the truth particle (used by result).
	ID model.ParticleID `yaml:"id,omitempty"`

	// MotherPDG is the expected absolute mother code (used by result).
	MotherPDG int `yaml:"mother_pdg,omitempty"`

	// Prompt is the expected classification (used by result).
	Prompt *bool `yaml:"prompt,omitempty"`

	// Stat is a counter's JSON name (used by stat).
	Stat string `yaml:"stat,omitempty"`

	// Histogram is a histogram name (used by histogram_entries).
	Histogram string `yaml:"histogram,omitempty"`

	// Count is the expected number (result_count, stat, histogram_entries).
	Count int64 `yaml:"count,omitempty"`

	// Table is the store table name (used by final_state).
	Table string `yaml:"table,omitempty"`

	// Where specifies query filters (used by final_state).
	Where map[string]interface{} `yaml:"where,omitempty"`

	// Expect contains expected column values (used by final_state).
	// Subset match - only specified columns are validated.
	Expect map[string]interface{} `yaml:"expect,omitempty"`
}

// LoadScenario loads a scenario from a YAML file, resolving events_file
// relative to the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if len(scenario.Events) == 0 && scenario.EventsFile != "" {
		eventsPath := scenario.EventsFile
		if !filepath.IsAbs(eventsPath) {
			eventsPath = filepath.Join(filepath.Dir(path), eventsPath)
		}
		events, err := loadEvents(eventsPath)
		if err != nil {
			return nil, fmt.Errorf("invalid scenario: %w", err)
		}
		scenario.Events = events
	}

	if len(scenario.Events) == 0 {
		return nil, fmt.Errorf("invalid scenario: events or events_file is required")
	}

	return scenario, nil
}

// ParseScenario decodes and validates scenario YAML. Unknown fields are
// rejected. An events_file reference is not loaded.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func loadEvents(path string) ([]model.Event, error) {
	f, err := source.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return source.ReadAll(context.Background(), f)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}

	if s.Description == "" {
		return errors.New("description is required")
	}

	if len(s.Events) == 0 && s.EventsFile == "" {
		return errors.New("events or events_file is required")
	}

	if len(s.Assertions) == 0 {
		return errors.New("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertResult:
		if a.ID == 0 {
			return fmt.Errorf("assertions[%d]: id is required for result", index)
		}
	case AssertResultCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for result_count", index)
		}
	case AssertStat:
		if a.Stat == "" {
			return fmt.Errorf("assertions[%d]: stat is required for stat", index)
		}
	case AssertHistogramEntries:
		if a.Histogram == "" {
			return fmt.Errorf("assertions[%d]: histogram is required for histogram_entries", index)
		}
	case AssertFinalState:
		if a.Table == "" {
			return fmt.Errorf("assertions[%d]: table is required for final_state", index)
		}
		if len(a.Expect) == 0 {
			return fmt.Errorf("assertions[%d]: expect is required for final_state", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}

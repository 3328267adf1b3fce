// Package config holds the tunable selection parameters of a run.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/fwdmuon/internal/histo"
)

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// Contains reports whether x lies in [Min, Max].
func (r Range) Contains(x float64) bool {
	return x >= r.Min && x <= r.Max
}

// PDGRange is a closed interval of absolute PDG codes.
type PDGRange struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

// OutputConfig names the files a run writes. Empty means "not written".
type OutputConfig struct {
	CSV       string `yaml:"csv" json:"csv"`
	DB        string `yaml:"db" json:"db"`
	ChainsDOT string `yaml:"chains_dot" json:"chains_dot"`
}

// Config is the full run configuration.
type Config struct {
	ForwardEta     Range        `yaml:"forward_eta" json:"forward_eta"`
	HeavyFlavorPDG PDGRange     `yaml:"heavy_flavor_pdg" json:"heavy_flavor_pdg"`
	PtAxis         histo.Axis   `yaml:"pt_axis" json:"pt_axis"`
	Cut            string       `yaml:"cut" json:"cut"`
	Output         OutputConfig `yaml:"output" json:"output"`
}

// Default returns the standard forward-muon selection: η in [-4.0, -2.5],
// D-meson mothers |pdg| in [411, 435], pT histograms of 10 bins on [0, 20].
func Default() Config {
	return Config{
		ForwardEta:     Range{Min: -4.0, Max: -2.5},
		HeavyFlavorPDG: PDGRange{Min: 411, Max: 435},
		PtAxis:         histo.DefaultPtAxis,
		Output: OutputConfig{
			CSV: "muontracks.txt",
		},
	}
}

// Load reads a YAML config file over Default and validates the result.
// Keys absent from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

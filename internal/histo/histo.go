// Package histo holds the run's monitoring histograms.
package histo

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
)

// Histogram names, as they appear in reports and in the store.
const (
	EventCounter = "eventCounterReco"
	ForwardPt    = "muPtHistReco"
	HeavyFlavor  = "muPtHistRecoD"
)

// Axis is a fixed-width binning.
type Axis struct {
	Bins int     `yaml:"bins" json:"bins"`
	Min  float64 `yaml:"min" json:"min"`
	Max  float64 `yaml:"max" json:"max"`
}

// DefaultPtAxis is 10 bins over [0, 20] GeV/c.
var DefaultPtAxis = Axis{Bins: 10, Min: 0, Max: 20}

var counterAxis = Axis{Bins: 1, Min: 0, Max: 1}

// Bin is a snapshot of one histogram bin.
type Bin struct {
	Low     float64 `json:"low"`
	High    float64 `json:"high"`
	Entries int64   `json:"entries"`
	SumW    float64 `json:"sumw"`
}

// Registry owns the three histograms of one run.
type Registry struct {
	order []string
	hists map[string]*hbook.H1D
}

// NewRegistry books the event counter plus the forward and heavy-flavor
// muon pT histograms on ptAxis.
func NewRegistry(ptAxis Axis) *Registry {
	r := &Registry{hists: make(map[string]*hbook.H1D)}
	r.add(EventCounter, counterAxis)
	r.add(ForwardPt, ptAxis)
	r.add(HeavyFlavor, ptAxis)
	return r
}

func (r *Registry) add(name string, axis Axis) {
	h := hbook.NewH1D(axis.Bins, axis.Min, axis.Max)
	h.Annotation()["name"] = name
	r.order = append(r.order, name)
	r.hists[name] = h
}

// Fill adds x with unit weight to the named histogram.
func (r *Registry) Fill(name string, x float64) error {
	h, ok := r.hists[name]
	if !ok {
		return fmt.Errorf("unknown histogram %q", name)
	}
	h.Fill(x, 1)
	return nil
}

// CountEvent increments the event counter.
func (r *Registry) CountEvent() {
	r.hists[EventCounter].Fill(0.5, 1)
}

// Entries returns the number of fills of the named histogram, including
// fills that landed outside the axis range.
func (r *Registry) Entries(name string) int64 {
	h, ok := r.hists[name]
	if !ok {
		return 0
	}
	return h.Entries()
}

// Bins returns the in-range bins of the named histogram.
func (r *Registry) Bins(name string) []Bin {
	h, ok := r.hists[name]
	if !ok {
		return nil
	}
	bins := make([]Bin, len(h.Binning.Bins))
	for i := range h.Binning.Bins {
		b := &h.Binning.Bins[i]
		bins[i] = Bin{Low: b.XMin(), High: b.XMax(), Entries: b.Entries(), SumW: b.SumW()}
	}
	return bins
}

// Names returns histogram names in booking order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Snapshot is a serializable copy of one histogram.
type Snapshot struct {
	Name    string `json:"name"`
	Entries int64  `json:"entries"`
	Bins    []Bin  `json:"bins"`
}

// Snapshots returns every histogram in booking order.
func (r *Registry) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Snapshot{Name: name, Entries: r.Entries(name), Bins: r.Bins(name)})
	}
	return out
}

package harness

import (
	"github.com/roach88/fwdmuon/internal/histo"
	"github.com/roach88/fwdmuon/internal/model"
	"github.com/roach88/fwdmuon/internal/pipeline"
)

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	Pass bool `json:"pass"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// RunID is the run the results were stored under.
	RunID string `json:"run_id"`

	// Results are the classifications read back from the store, in
	// emission order.
	Results []model.Result `json:"results"`

	// Stats are the pipeline counters at the end of the run.
	Stats pipeline.Stats `json:"stats"`

	// Histograms are the final histogram snapshots.
	Histograms []histo.Snapshot `json:"histograms"`

	// Report is the CSV report exactly as written.
	Report string `json:"report"`

	// Diagnostics is the decay-chain stream exactly as written.
	Diagnostics string `json:"diagnostics"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Find returns the result for a truth particle.
func (r *Result) Find(id model.ParticleID) (model.Result, bool) {
	for _, res := range r.Results {
		if res.TruthID == id {
			return res, true
		}
	}
	return model.Result{}, false
}

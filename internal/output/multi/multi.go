// Package multi fans results out to several outputs.
package multi

import (
	"context"
	"errors"

	"github.com/roach88/fwdmuon/internal/model"
	"github.com/roach88/fwdmuon/internal/output"
)

// Multi delivers every result to each wrapped output in order.
// If one output fails, the remaining outputs still receive the result.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi over outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Write delivers result to every output and joins their errors.
func (m *Multi) Write(ctx context.Context, result model.Result) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Write(ctx, result); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every output, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

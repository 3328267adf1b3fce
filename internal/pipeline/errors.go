package pipeline

import (
	"errors"
	"fmt"

	"github.com/roach88/fwdmuon/internal/model"
)

// SinkError reports that the output refused a result. Partial output is
// not resumable, so a SinkError ends the run.
type SinkError struct {
	TruthID model.ParticleID
	Err     error
}

// Error implements the error interface.
func (e *SinkError) Error() string {
	return fmt.Sprintf("write result for particle %d: %v", e.TruthID, e.Err)
}

// Unwrap returns the output's error.
func (e *SinkError) Unwrap() error {
	return e.Err
}

// IsSinkError returns true if err wraps a SinkError.
func IsSinkError(err error) bool {
	var se *SinkError
	return errors.As(err, &se)
}

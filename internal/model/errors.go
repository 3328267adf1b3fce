package model

import (
	"errors"
	"fmt"
)

// IntegrityErrorKind categorizes broken truth records.
type IntegrityErrorKind string

const (
	// DanglingMother: a mother reference does not resolve in the event's table.
	DanglingMother IntegrityErrorKind = "dangling_mother"

	// DanglingTruth: a track's truth reference does not resolve.
	DanglingTruth IntegrityErrorKind = "dangling_truth"

	// CycleDetected: following first mothers leads back to a visited particle.
	CycleDetected IntegrityErrorKind = "cycle_detected"

	// DuplicateID: two particles in one event share an identity.
	DuplicateID IntegrityErrorKind = "duplicate_id"
)

// IntegrityError reports truth data that violates the ancestry model.
// It is fatal for the track being processed but not for the run.
type IntegrityError struct {
	Kind IntegrityErrorKind

	// ID is the particle whose reference is broken (or the duplicated ID).
	ID ParticleID

	// Ref is the unresolvable or revisited reference, when there is one.
	Ref ParticleID
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	switch e.Kind {
	case DanglingMother:
		return fmt.Sprintf("%s: particle %d references missing mother %d", e.Kind, e.ID, e.Ref)
	case DanglingTruth:
		return fmt.Sprintf("%s: track references missing particle %d", e.Kind, e.Ref)
	case CycleDetected:
		return fmt.Sprintf("%s: mother chain of particle %d revisits %d", e.Kind, e.ID, e.Ref)
	default:
		return fmt.Sprintf("%s: particle %d", e.Kind, e.ID)
	}
}

// IsIntegrityError returns true if err wraps an IntegrityError.
func IsIntegrityError(err error) bool {
	var ie *IntegrityError
	return errors.As(err, &ie)
}

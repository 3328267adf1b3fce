package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/fwdmuon/internal/model"
)

// createTestStore creates a new temporary store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRun inserts a run and fails the test on error.
func createTestRun(t *testing.T, s *Store, id string) {
	t.Helper()
	if err := s.CreateRun(context.Background(), id, "events.yaml"); err != nil {
		t.Fatalf("CreateRun(%q) failed: %v", id, err)
	}
}

// createTestResult creates a result with minimal required fields.
func createTestResult(id model.ParticleID, motherPDG int, prompt bool) model.Result {
	return model.Result{
		TruthID:   id,
		RecoEta:   -3.2,
		RecoPt:    2.5,
		RecoP:     31.7,
		RecoPhi:   0.4,
		MotherPDG: motherPDG,
		NClusters: 10,
		IsPrompt:  prompt,
	}
}

package store

import (
	"context"
	"fmt"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/synth"
)

// Verification is the outcome of recomputing a stored run's hash.
type Verification struct {
	RunToken     string `json:"run_token"`
	StoredHash   string `json:"stored_hash"`
	ComputedHash string `json:"computed_hash"`
	Valid        bool   `json:"valid"`
}

// Verify recomputes the determinism hash from the stored correction trail
// and final text and compares it to the hash recorded at write time.
//
// A mismatch means the audit row was altered after the fact, or the trail
// and result were stored inconsistently. Either way the row can no longer
// prove reproducibility.
func (s *Store) Verify(ctx context.Context, runToken string) (Verification, error) {
	run, err := s.ReadRun(ctx, runToken)
	if err != nil {
		return Verification{}, err
	}

	computed, err := synth.OutputHash(run.Trail, run.FinalText)
	if err != nil {
		return Verification{}, fmt.Errorf("recompute hash for %s: %w", runToken, err)
	}

	return Verification{
		RunToken:     runToken,
		StoredHash:   run.OutputHash,
		ComputedHash: computed,
		Valid:        computed == run.OutputHash,
	}, nil
}

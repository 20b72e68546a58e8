package harness

import (
	"fmt"
	"strings"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/synth"
)

// evaluateExpect checks a synthesis result against an expect clause and
// returns one message per mismatch. An empty slice means the clause held.
func evaluateExpect(expect *ExpectClause, res *synth.Result) []string {
	var errs []string

	if string(res.Reason) != expect.Reason {
		errs = append(errs, fmt.Sprintf(
			"reason: expected %q, got %q", expect.Reason, res.Reason))
	}

	// Success is implied by the reason; check it anyway so a desync
	// between the two fields fails loudly.
	wantSuccess := expect.Reason == string(synth.ReasonResolved)
	if res.Success != wantSuccess {
		errs = append(errs, fmt.Sprintf(
			"success: expected %v for reason %q, got %v", wantSuccess, expect.Reason, res.Success))
	}

	if expect.Iterations >= 0 && res.Iterations != expect.Iterations {
		errs = append(errs, fmt.Sprintf(
			"iterations: expected %d, got %d", expect.Iterations, res.Iterations))
	}

	if expect.Corrections != nil {
		applied := make([]string, len(res.Corrections))
		for i, rec := range res.Corrections {
			applied[i] = rec.PatternID
		}
		if !equalStrings(expect.Corrections, applied) {
			errs = append(errs, fmt.Sprintf(
				"corrections: expected %v, got %v", expect.Corrections, applied))
		}
	}

	if expect.Uncovered != nil && !equalStrings(expect.Uncovered, res.Uncovered) {
		errs = append(errs, fmt.Sprintf(
			"uncovered: expected %v, got %v", expect.Uncovered, res.Uncovered))
	}

	for _, want := range expect.Contains {
		if !strings.Contains(res.FinalText, want) {
			errs = append(errs, fmt.Sprintf("final text missing %q", want))
		}
	}
	for _, forbidden := range expect.NotContains {
		if strings.Contains(res.FinalText, forbidden) {
			errs = append(errs, fmt.Sprintf("final text still contains %q", forbidden))
		}
	}

	return errs
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

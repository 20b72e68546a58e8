package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/canon"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/synth"
)

// Snapshot is the golden-file projection of a scenario run.
//
// It deliberately carries only the synthesis trail, not the final text or
// hashes: the trail is what reviewers sign off on, and hand-auditing a
// short JSON object is feasible where a hash is not. Serialization goes
// through canonical JSON so the bytes are stable.
type Snapshot struct {
	ScenarioName string
	Result       *synth.Result
}

// toCanonicalMap converts a Snapshot to the closed type set canon.Marshal
// accepts. Correction records keep only their identifying fields.
func (s *Snapshot) toCanonicalMap() map[string]any {
	corrections := make([]any, len(s.Result.Corrections))
	for i, rec := range s.Result.Corrections {
		corrections[i] = map[string]any{
			"pattern_id": rec.PatternID,
			"gate_key":   rec.GateKey,
			"strategy":   string(rec.Strategy),
			"priority":   rec.Priority,
		}
	}

	uncovered := make([]any, len(s.Result.Uncovered))
	for i, key := range s.Result.Uncovered {
		uncovered[i] = key
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"reason":        string(s.Result.Reason),
		"success":       s.Result.Success,
		"iterations":    s.Result.Iterations,
		"corrections":   corrections,
		"uncovered":     uncovered,
	}
}

// RunWithGolden executes a scenario, fails the test on expect-clause
// mismatches, and compares the snapshot against a golden file stored in
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("scenario %s: %v", scenario.Name, err)
	}
	for _, msg := range result.Errors {
		t.Errorf("scenario %s: %s", scenario.Name, msg)
	}

	AssertGolden(t, scenario.Name, &result.Synthesis)
}

// AssertGolden compares an already-obtained synthesis result against the
// golden file for the given scenario name.
func AssertGolden(t *testing.T, scenarioName string, res *synth.Result) {
	t.Helper()

	snapshot := Snapshot{ScenarioName: scenarioName, Result: res}
	data, err := canon.Marshal(snapshot.toCanonicalMap())
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
}

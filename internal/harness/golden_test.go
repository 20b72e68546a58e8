package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/canon"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/synth"
)

func TestSnapshot_CanonicalBytes(t *testing.T) {
	res := synth.Result{
		Success:    true,
		Iterations: 1,
		Reason:     synth.ReasonResolved,
		Corrections: []synth.Record{
			{
				PatternID: "vat-threshold-2024",
				GateKey:   "hmrc_vat.vat_threshold",
				Strategy:  catalogue.StrategyRegexReplace,
				Priority:  30,
			},
		},
	}
	snapshot := Snapshot{ScenarioName: "sample", Result: &res}

	data, err := canon.Marshal(snapshot.toCanonicalMap())
	require.NoError(t, err)

	want := `{"corrections":[{"gate_key":"hmrc_vat.vat_threshold","pattern_id":"vat-threshold-2024","priority":30,"strategy":"regex_replace"}],"iterations":1,"reason":"resolved","scenario_name":"sample","success":true,"uncovered":[]}`
	assert.Equal(t, want, string(data))
}

func TestSnapshot_EmptyTrail(t *testing.T) {
	res := synth.Result{
		Success:    false,
		Iterations: 1,
		Reason:     synth.ReasonNoApplicablePatterns,
		Uncovered:  []string{"employment.notice_period"},
	}
	snapshot := Snapshot{ScenarioName: "uncovered", Result: &res}

	data, err := canon.Marshal(snapshot.toCanonicalMap())
	require.NoError(t, err)

	want := `{"corrections":[],"iterations":1,"reason":"no_applicable_patterns","scenario_name":"uncovered","success":false,"uncovered":["employment.notice_period"]}`
	assert.Equal(t, want, string(data))
}

func TestSnapshot_OmitsTextAndHashes(t *testing.T) {
	res := synth.Result{
		Success:    true,
		Reason:     synth.ReasonResolved,
		FinalText:  "document text stays out of snapshots",
		OutputHash: "deadbeef",
		RunToken:   "test-run-1",
	}
	snapshot := Snapshot{ScenarioName: "projection", Result: &res}

	data, err := canon.Marshal(snapshot.toCanonicalMap())
	require.NoError(t, err)

	s := string(data)
	assert.NotContains(t, s, "document text")
	assert.NotContains(t, s, "deadbeef")
	assert.NotContains(t, s, "test-run-1")
}

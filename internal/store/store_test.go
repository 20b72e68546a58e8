package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/synth"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/testutil"
)

var testClock = testutil.NewFrozenClock(
	time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC), time.Second)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleResult(token string) synth.Result {
	records := []synth.Record{
		{
			PatternID:   "vat-threshold-2024",
			GateKey:     "hmrc_vat.vat_threshold",
			Strategy:    catalogue.StrategyRegexReplace,
			Priority:    30,
			Reason:      "threshold uprated",
			LegalSource: "Value Added Tax Act 1994, Sch. 1",
			Changes:     []synth.Change{{Start: 18, Before: "£85,000", After: "£90,000"}},
		},
		{
			PatternID: "vat-mtd-advice",
			GateKey:   "hmrc_vat.making_tax_digital",
			Strategy:  catalogue.StrategySuggestion,
			Priority:  21,
			Reason:    "describe Making Tax Digital requirements",
		},
	}
	finalText := "The threshold is £90,000."
	hash, err := synth.OutputHash(records, finalText)
	if err != nil {
		panic(err)
	}
	return synth.Result{
		Success:     true,
		Iterations:  1,
		Reason:      synth.ReasonResolved,
		FinalText:   finalText,
		Corrections: records,
		OutputHash:  hash,
		RunToken:    token,
	}
}

func TestOpen_FileDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	// Reopen is idempotent: the schema already exists.
	st, err = Open(path)
	require.NoError(t, err)
	assert.NoError(t, st.Close())
}

func TestWriteRun_ReadRun_RoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	res := sampleResult("run-001")
	rec := NewRunRecord(res, "The threshold is £85,000.", []string{"hmrc_vat"}, testClock.Now())
	require.NoError(t, st.WriteRun(ctx, rec))

	got, err := st.ReadRun(ctx, "run-001")
	require.NoError(t, err)

	assert.Equal(t, rec.RunToken, got.RunToken)
	assert.Equal(t, rec.Modules, got.Modules)
	assert.Equal(t, rec.Reason, got.Reason)
	assert.Equal(t, rec.Success, got.Success)
	assert.Equal(t, rec.Iterations, got.Iterations)
	assert.Equal(t, rec.InputHash, got.InputHash)
	assert.Equal(t, rec.OutputHash, got.OutputHash)
	assert.Equal(t, rec.FinalText, got.FinalText)
	assert.Equal(t, rec.Trail, got.Trail)
	assert.Equal(t, rec.CreatedAt.Truncate(time.Second), got.CreatedAt)
}

func TestWriteRun_RequiresToken(t *testing.T) {
	st := openTestStore(t)

	res := sampleResult("")
	rec := NewRunRecord(res, "input", nil, testClock.Now())
	err := st.WriteRun(context.Background(), rec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run token is required")
}

func TestWriteRun_DuplicateTokenRejected(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	rec := NewRunRecord(sampleResult("run-dup"), "input", nil, testClock.Now())
	require.NoError(t, st.WriteRun(ctx, rec))
	require.Error(t, st.WriteRun(ctx, rec))
}

func TestReadRun_NotFound(t *testing.T) {
	st := openTestStore(t)

	_, err := st.ReadRun(context.Background(), "missing-token")
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestNewRunRecord_HashesInput(t *testing.T) {
	res := sampleResult("run-002")
	rec := NewRunRecord(res, "input text", []string{"gdpr"}, testClock.Now())

	assert.NotEmpty(t, rec.InputHash)
	assert.Len(t, rec.InputHash, 64)
	// Input and output digests cover different content.
	assert.NotEqual(t, rec.InputHash, rec.OutputHash)
}

func TestListRunTokens(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	for i, token := range []string{"run-a", "run-b", "run-c"} {
		rec := NewRunRecord(sampleResult(token), "input", nil,
			base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, st.WriteRun(ctx, rec))
	}

	tokens, err := st.ListRunTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-c", "run-b", "run-a"}, tokens)
}

func TestWriteRun_EmptyTrail(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	res := synth.Result{
		Success:    false,
		Iterations: 1,
		Reason:     synth.ReasonNoApplicablePatterns,
		Uncovered:  []string{"employment.notice_period"},
		FinalText:  "unchanged",
		RunToken:   "run-empty",
	}
	var err error
	res.OutputHash, err = synth.OutputHash(nil, res.FinalText)
	require.NoError(t, err)

	rec := NewRunRecord(res, "unchanged", []string{"employment"}, testClock.Now())
	require.NoError(t, st.WriteRun(ctx, rec))

	got, err := st.ReadRun(ctx, "run-empty")
	require.NoError(t, err)
	assert.Empty(t, got.Trail)
	assert.Equal(t, synth.ReasonNoApplicablePatterns, got.Reason)
	assert.False(t, got.Success)
}

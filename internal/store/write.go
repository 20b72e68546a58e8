package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/canon"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/synth"
)

// RunRecord is one audited synthesis run.
//
// CreatedAt is wall-clock audit metadata. It lives in the row and nowhere
// else - in particular it is not part of either hash.
type RunRecord struct {
	RunToken   string
	CreatedAt  time.Time
	Modules    []string
	Reason     synth.Reason
	Success    bool
	Iterations int
	InputHash  string
	OutputHash string
	FinalText  string
	Trail      []synth.Record
}

// NewRunRecord assembles an audit record from a synthesis result.
func NewRunRecord(res synth.Result, inputText string, modules []string, at time.Time) RunRecord {
	return RunRecord{
		RunToken:   res.RunToken,
		CreatedAt:  at.UTC(),
		Modules:    modules,
		Reason:     res.Reason,
		Success:    res.Success,
		Iterations: res.Iterations,
		InputHash:  canon.HashDocument(inputText),
		OutputHash: res.OutputHash,
		FinalText:  res.FinalText,
		Trail:      res.Corrections,
	}
}

// WriteRun appends a run and its correction trail in one transaction.
// Either the whole run is recorded or none of it is.
func (s *Store) WriteRun(ctx context.Context, run RunRecord) error {
	if run.RunToken == "" {
		return fmt.Errorf("run token is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_token, created_at, modules, reason, success, iterations, input_hash, output_hash, final_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunToken,
		run.CreatedAt.UTC().Format(time.RFC3339),
		strings.Join(run.Modules, ","),
		string(run.Reason),
		boolToInt(run.Success),
		run.Iterations,
		run.InputHash,
		run.OutputHash,
		run.FinalText,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.RunToken, err)
	}

	for ord, rec := range run.Trail {
		changes, err := changesJSON(rec)
		if err != nil {
			return fmt.Errorf("serialize changes for %s[%d]: %w", run.RunToken, ord, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO corrections (run_token, ord, pattern_id, gate_key, strategy, priority, reason, legal_source, changes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunToken, ord, rec.PatternID, rec.GateKey, string(rec.Strategy),
			rec.Priority, rec.Reason, rec.LegalSource, changes,
		)
		if err != nil {
			return fmt.Errorf("insert correction %s[%d]: %w", run.RunToken, ord, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.RunToken, err)
	}
	return nil
}

// changesJSON serializes a record's change list as canonical JSON, so the
// stored trail bytes are as reproducible as the hash they back.
func changesJSON(rec synth.Record) (string, error) {
	arr := make([]any, len(rec.Changes))
	for i, ch := range rec.Changes {
		arr[i] = map[string]any{
			"start":  ch.Start,
			"before": ch.Before,
			"after":  ch.After,
		}
	}
	b, err := canon.Marshal(arr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

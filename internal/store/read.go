package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/synth"
)

// ErrRunNotFound is returned when a run token has no audit row.
var ErrRunNotFound = errors.New("run not found")

// ReadRun loads a run and its ordered correction trail.
func (s *Store) ReadRun(ctx context.Context, runToken string) (RunRecord, error) {
	var run RunRecord
	var createdAt, modules, reason string
	var success int

	err := s.db.QueryRowContext(ctx,
		`SELECT run_token, created_at, modules, reason, success, iterations, input_hash, output_hash, final_text
		 FROM runs WHERE run_token = ?`, runToken,
	).Scan(&run.RunToken, &createdAt, &modules, &reason, &success,
		&run.Iterations, &run.InputHash, &run.OutputHash, &run.FinalText)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("%w: %s", ErrRunNotFound, runToken)
	}
	if err != nil {
		return RunRecord{}, fmt.Errorf("read run %s: %w", runToken, err)
	}

	run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return RunRecord{}, fmt.Errorf("parse created_at for %s: %w", runToken, err)
	}
	if modules != "" {
		run.Modules = strings.Split(modules, ",")
	}
	run.Reason = synth.Reason(reason)
	run.Success = success != 0

	run.Trail, err = s.readTrail(ctx, runToken)
	if err != nil {
		return RunRecord{}, err
	}
	return run, nil
}

// ListRunTokens returns all run tokens, most recent first by insertion.
func (s *Store) ListRunTokens(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_token FROM runs ORDER BY created_at DESC, run_token DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan run token: %w", err)
		}
		tokens = append(tokens, t)
	}
	return tokens, rows.Err()
}

func (s *Store) readTrail(ctx context.Context, runToken string) ([]synth.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT pattern_id, gate_key, strategy, priority, reason, legal_source, changes
		 FROM corrections WHERE run_token = ? ORDER BY ord`, runToken)
	if err != nil {
		return nil, fmt.Errorf("read trail for %s: %w", runToken, err)
	}
	defer rows.Close()

	var trail []synth.Record
	for rows.Next() {
		var rec synth.Record
		var strategy, changes string
		if err := rows.Scan(&rec.PatternID, &rec.GateKey, &strategy,
			&rec.Priority, &rec.Reason, &rec.LegalSource, &changes); err != nil {
			return nil, fmt.Errorf("scan correction for %s: %w", runToken, err)
		}
		rec.Strategy = catalogue.Strategy(strategy)
		if changes != "[]" {
			if err := json.Unmarshal([]byte(changes), &rec.Changes); err != nil {
				return nil, fmt.Errorf("decode changes for %s/%s: %w", runToken, rec.PatternID, err)
			}
		}
		trail = append(trail, rec)
	}
	return trail, rows.Err()
}

package synth

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/document"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/gate"
)

// DefaultMaxIterations bounds the fixed-point loop. Progress must be
// strictly monotonic, so the bound is a budget, not a correctness device.
const DefaultMaxIterations = 5

// Evaluator is the external validation collaborator. It must be
// document-pure and side-effect-free per gate; the engine re-invokes it
// after every iteration for the same module set the caller requested.
type Evaluator interface {
	Evaluate(ctx context.Context, doc document.Document, modules []string) ([]gate.Result, error)
}

// Engine drives the correction synthesis loop.
//
// An Engine is a pure function over (Document, GateResults, Catalogue):
// no state crosses runs except the immutable catalogue reference. The
// loop is single-threaded and strictly sequential - each iteration's
// output document is the only input to the next, and executors chain in
// priority order within an iteration.
type Engine struct {
	cat           *catalogue.Catalogue
	eval          Evaluator
	maxIterations int
	runGen        RunTokenGenerator
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxIterations sets the iteration budget (default 5).
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxIterations = n
		}
	}
}

// WithRunTokens overrides the run token generator. Tests use fixed tokens
// for reproducible audit rows; tokens never reach the determinism hash.
func WithRunTokens(gen RunTokenGenerator) Option {
	return func(e *Engine) {
		e.runGen = gen
	}
}

// New creates an Engine over an immutable catalogue and a validator.
func New(cat *catalogue.Catalogue, eval Evaluator, opts ...Option) *Engine {
	e := &Engine{
		cat:           cat,
		eval:          eval,
		maxIterations: DefaultMaxIterations,
		runGen:        UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Synthesize runs the fixed-point correction loop.
//
// Per iteration: select applicable patterns for the current failures in
// priority order, chain their executors over the document snapshot,
// re-validate, and require the failing count to strictly decrease.
// Termination is one of four caller-visible reasons; the loop never
// returns a partially-applied mid-iteration document.
//
// The error return covers evaluator failure only - every synthesis
// outcome, including the three non-resolved ones, is a Result.
func (e *Engine) Synthesize(
	ctx context.Context,
	doc document.Document,
	initial []gate.Result,
	vars map[string]string,
	modules []string,
) (Result, error) {
	text := doc.Text()
	failing := sortedFailing(initial)

	var corrections []Record
	var uncovered []string
	iterations := 0
	reason := ReasonResolved

loop:
	for {
		if len(failing) == 0 {
			reason = ReasonResolved
			break
		}
		if iterations >= e.maxIterations {
			reason = ReasonMaxIterations
			break
		}
		if ctx.Err() != nil {
			// Caller deadline: return the best completed iteration, never
			// a mid-iteration state.
			slog.Warn("synthesis cancelled, returning best completed iteration",
				"iterations", iterations,
				"remaining_failures", len(failing),
			)
			reason = ReasonMaxIterations
			break
		}

		iterations++

		cands, miss := matchPatterns(e.cat, failing)
		if len(cands) == 0 {
			reason = ReasonNoApplicablePatterns
			uncovered = miss
			break
		}
		if len(miss) > 0 {
			slog.Debug("uncovered gates this iteration", "gate_keys", miss)
		}

		applied := 0
		for _, c := range cands {
			newText, rec, ok := applyPattern(text, c.pattern, c.result, vars)
			if !ok {
				slog.Debug("pattern skipped",
					"pattern_id", c.pattern.ID,
					"gate_key", c.result.GateKey,
					"strategy", c.pattern.Strategy,
				)
				continue
			}
			text = newText
			corrections = append(corrections, rec)
			applied++
		}

		if applied == 0 {
			// Every candidate was inapplicable; re-validating cannot help.
			reason = ReasonNoProgress
			break
		}

		results, err := e.eval.Evaluate(ctx, document.New(text), modules)
		if err != nil {
			return Result{}, fmt.Errorf("re-validate iteration %d: %w", iterations, err)
		}
		newFailing := sortedFailing(results)

		slog.Info("synthesis iteration",
			"iteration", iterations,
			"applied", applied,
			"failing_before", len(failing),
			"failing_after", len(newFailing),
		)

		// Strict decrease required. A plateau or regression - including a
		// correction that trades a fixed violation for a new one of equal
		// count - stalls the run for human review instead of oscillating.
		if len(newFailing) >= len(failing) {
			failing = newFailing
			reason = ReasonNoProgress
			break loop
		}
		failing = newFailing
	}

	hash, err := OutputHash(corrections, text)
	if err != nil {
		return Result{}, fmt.Errorf("compute output hash: %w", err)
	}

	return Result{
		Success:     reason == ReasonResolved,
		Iterations:  iterations,
		Reason:      reason,
		Uncovered:   uncovered,
		FinalText:   text,
		Corrections: corrections,
		OutputHash:  hash,
		RunToken:    e.runGen.Generate(),
	}, nil
}

// sortedFailing extracts the failing set in gate-key order. Results are a
// set, not a sequence; sorting fixes the iteration order the matcher sees.
func sortedFailing(results []gate.Result) []gate.Result {
	failing := gate.Failing(results)
	sort.Slice(failing, func(i, j int) bool {
		return failing[i].GateKey < failing[j].GateKey
	})
	return failing
}

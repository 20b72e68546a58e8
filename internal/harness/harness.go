package harness

import (
	"context"
	"fmt"

	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/document"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/gate"
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/synth"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if the expect clause matched the synthesis outcome.
	Pass bool `json:"pass"`

	// Errors contains expect-clause mismatch messages. Empty if Pass.
	Errors []string `json:"errors,omitempty"`

	// Initial is the gate evaluation of the input document.
	Initial []gate.Result `json:"initial"`

	// Synthesis is the engine's result for the scenario.
	Synthesis synth.Result `json:"synthesis"`
}

// AddError adds an expectation mismatch and marks the result as failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Run executes a scenario end-to-end and returns the result.
//
// Execution flow:
//  1. Build the validator over the built-in gate registry
//  2. Build the catalogue (built-in, or compiled from the scenario's CUE dir)
//  3. Evaluate the input document
//  4. Run synthesis with a fixed run token
//  5. Evaluate the expect clause against the synthesis result
//
// The error return covers infrastructure failure only (bad catalogue,
// unknown module); expectation mismatches land in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	validator := gate.NewValidator(gate.DefaultRegistry())

	cat, err := loadCatalogue(scenario)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	doc := document.New(scenario.Document)

	initial, err := validator.Evaluate(ctx, doc, scenario.Modules)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate input document: %w", err)
	}

	opts := []synth.Option{
		synth.WithRunTokens(synth.NewFixedGenerator(scenario.RunToken)),
	}
	if scenario.MaxIterations > 0 {
		opts = append(opts, synth.WithMaxIterations(scenario.MaxIterations))
	}
	engine := synth.New(cat, validator, opts...)

	res, err := engine.Synthesize(ctx, doc, initial, scenario.Context, scenario.Modules)
	if err != nil {
		return nil, fmt.Errorf("synthesis failed: %w", err)
	}

	result := &Result{Pass: true, Initial: initial, Synthesis: res}
	for _, msg := range evaluateExpect(&scenario.Expect, &res) {
		result.AddError(msg)
	}
	return result, nil
}

func loadCatalogue(scenario *Scenario) (*catalogue.Catalogue, error) {
	if scenario.Catalogue == "" {
		return catalogue.Default(), nil
	}
	cat, err := catalogue.LoadDir(scenario.Catalogue)
	if err != nil {
		return nil, fmt.Errorf("failed to compile catalogue %s: %w", scenario.Catalogue, err)
	}
	return cat, nil
}

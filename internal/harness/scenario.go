package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios validate synthesis behavior by running a document through the
// gate validator and correction engine, then asserting on the outcome.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is the input document text.
	Document string `yaml:"document"`

	// Modules lists the gate modules to evaluate. Empty means all.
	Modules []string `yaml:"modules,omitempty"`

	// Context provides substitution values for template placeholders.
	Context map[string]string `yaml:"context,omitempty"`

	// Catalogue optionally points at a directory of CUE pattern files.
	// Empty means the built-in catalogue.
	Catalogue string `yaml:"catalogue,omitempty"`

	// MaxIterations overrides the engine's iteration budget. Zero keeps
	// the default.
	MaxIterations int `yaml:"max_iterations,omitempty"`

	// RunToken is the fixed run token for this scenario. Defaults to
	// "test-run-" + Name so audit rows and result snapshots are stable.
	RunToken string `yaml:"run_token,omitempty"`

	// Expect describes the required synthesis outcome.
	Expect ExpectClause `yaml:"expect"`
}

// ExpectClause specifies the expected synthesis outcome.
// Zero-valued fields are not checked, except Reason which is required.
type ExpectClause struct {
	// Reason is the expected termination reason
	// (resolved, max_iterations, no_progress, no_applicable_patterns).
	Reason string `yaml:"reason"`

	// Iterations is the expected iteration count. Negative means
	// unchecked; YAML omission defaults to -1 during load.
	Iterations int `yaml:"iterations,omitempty"`

	// Corrections lists the expected applied pattern IDs, in order.
	// Nil means unchecked; an explicit empty list means "no corrections".
	Corrections []string `yaml:"corrections,omitempty"`

	// Uncovered lists the expected uncovered gate keys, in order.
	Uncovered []string `yaml:"uncovered,omitempty"`

	// Contains lists substrings the final text must include.
	Contains []string `yaml:"contains,omitempty"`

	// NotContains lists substrings the final text must not include.
	NotContains []string `yaml:"not_contains,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML bytes with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	scenario := Scenario{
		// Sentinel: distinguish "iterations: 0" from omission.
		Expect: ExpectClause{Iterations: -1},
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	if scenario.RunToken == "" {
		scenario.RunToken = "test-run-" + scenario.Name
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Document == "" {
		return fmt.Errorf("document is required")
	}
	if s.MaxIterations < 0 {
		return fmt.Errorf("max_iterations must be non-negative")
	}

	switch s.Expect.Reason {
	case "resolved", "max_iterations", "no_progress", "no_applicable_patterns":
	case "":
		return fmt.Errorf("expect.reason is required")
	default:
		return fmt.Errorf("expect.reason: unknown reason %q", s.Expect.Reason)
	}

	if s.Catalogue != "" {
		if _, err := os.Stat(s.Catalogue); os.IsNotExist(err) {
			return fmt.Errorf("catalogue directory not found: %s", s.Catalogue)
		}
	}
	return nil
}

package synth

import (
	"github.com/Johnobhoy88/loki-interceptor-sub004/internal/catalogue"
)

// Reason is the terminal state of a synthesis run. All four non-resolved
// outcomes are result variants, never errors: the loop always returns a
// Result and the caller decides whether "needs review" is acceptable.
type Reason string

const (
	// ReasonResolved: zero failing gates remain.
	ReasonResolved Reason = "resolved"

	// ReasonMaxIterations: progress was being made but the iteration
	// budget (or the caller's deadline) ran out first.
	ReasonMaxIterations Reason = "max_iterations"

	// ReasonNoProgress: an iteration failed to strictly reduce the
	// failing count. Treated as an engine failure mode needing catalogue
	// improvement, not retried.
	ReasonNoProgress Reason = "no_progress"

	// ReasonNoApplicablePatterns: no catalogue entry covers any
	// remaining failure. The uncovered gate keys are surfaced for triage.
	ReasonNoApplicablePatterns Reason = "no_applicable_patterns"
)

// Change is one contiguous edit made by a correction: the text at Start
// (an offset in the pre-edit document for replacements, the insertion
// offset in the post-edit document for insertions) before and after.
type Change struct {
	Start  int    `json:"start"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Record is the audit entry for one applied pattern. Immutable once
// created; the ordered Record list across a run is the audit trail and
// the determinism hash input.
//
// A Suggestion record carries no Changes - the document is untouched and
// the advisory text travels in Reason.
type Record struct {
	PatternID   string              `json:"pattern_id"`
	GateKey     string              `json:"gate_key"`
	Strategy    catalogue.Strategy  `json:"strategy"`
	Priority    int                 `json:"priority"`
	Reason      string              `json:"reason"`
	LegalSource string              `json:"legal_source"`
	Changes     []Change            `json:"changes,omitempty"`
}

// Result is the outcome of one synthesis run.
//
// RunToken is audit correlation only and is deliberately excluded from
// OutputHash: it identifies "a run", not "the output".
type Result struct {
	Success     bool     `json:"success"`
	Iterations  int      `json:"iterations"`
	Reason      Reason   `json:"reason"`
	Uncovered   []string `json:"uncovered,omitempty"`
	FinalText   string   `json:"final_text"`
	Corrections []Record `json:"corrections"`
	OutputHash  string   `json:"output_hash"`
	RunToken    string   `json:"run_token,omitempty"`
}

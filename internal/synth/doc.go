// Package synth implements the correction synthesis engine: a
// priority-ordered, multi-strategy text transformation pipeline inside a
// bounded-iteration fixed-point loop.
//
// ARCHITECTURE:
//
// Per iteration the loop (a) matches catalogue patterns against the
// current failing gates, (b) chains the matched strategy executors over
// the document in (priority, pattern ID) order, (c) re-invokes the
// external Evaluator, and (d) requires the failing count to strictly
// decrease. Four strategies exist, ordered by invasiveness:
//
//	suggestion             advice only, never edits
//	regex_replace          surgical substitution, all occurrences
//	template_insert        anchored clause insertion
//	structural_reorganize  section-level reshaping, always last
//
// Termination is a caller-visible contract, not an implementation detail:
// resolved, max_iterations, no_progress, or no_applicable_patterns. The
// loop always returns a Result; errors are reserved for evaluator failure.
//
// DETERMINISM: every run is a pure function of (document, gate results,
// catalogue, context vars). Nothing in the loop reads the clock, consults
// randomness, or iterates an unordered collection. The ordered correction
// trail plus the final text canonicalize to OutputHash, which identical
// inputs must reproduce exactly.
package synth

// Package harness provides a conformance testing framework for the
// correction synthesis engine.
//
// Scenarios are YAML documents that bundle an input document, the gate
// modules to check it against, substitution context, and an expect clause
// describing the synthesis outcome. The harness runs each scenario
// end-to-end through the real validator and engine with a fixed run token,
// then evaluates the expect clause against the result.
//
// # Determinism
//
// Every knob that could vary between runs is pinned:
//
//   - Run tokens come from a FixedGenerator seeded from the scenario.
//   - The validator and engine are themselves deterministic over
//     (document, modules, catalogue).
//   - Golden snapshots serialize through canonical JSON, so byte
//     comparison is stable across platforms.
//
// Unlike a mocked harness, nothing here manufactures outcomes: the trace
// in a golden file is what the engine actually produced, so a golden
// mismatch is a behavior change, not a fixture drift.
package harness

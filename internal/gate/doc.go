// Package gate implements the compliance rule evaluators ("gates") and the
// Validator collaborator the synthesis engine re-invokes between iterations.
//
// A gate is declarative: a relevance guard, a trigger pattern, and a
// verdict rule (violation on match, or violation on absence). Gates live
// in a closed, data-driven table per module rather than a type hierarchy -
// they differ in data, not behavior.
//
// Verdicts are PASS, FAIL, WARNING or NOT_APPLICABLE. FAIL and WARNING
// together form the failing set the synthesis loop works to shrink.
//
// DETERMINISM: evaluation is a pure function of (document text, gate
// table). The worker pool inside Validator.Evaluate parallelizes gate
// execution but never reorders the returned slice, which is sorted by
// gate key before it leaves the package.
package gate

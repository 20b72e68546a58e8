// Package store persists the audit trail of synthesis runs in SQLite.
//
// The store is append-only from the engine's point of view: a run row
// plus its ordered correction trail are written atomically after a run
// completes, and Verify can later recompute the determinism hash from
// the stored bytes to prove the trail has not drifted from the result it
// describes.
//
// This is audit persistence, not document storage - the engine itself
// remains stateless across runs.
package store

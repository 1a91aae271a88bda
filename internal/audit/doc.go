// Package audit records envc batches in a local JSON Lines log.
//
// Each encrypt, decrypt or setenv run appends one line to:
//
//	$XDG_STATE_HOME/envc/audit.jsonl
//
// Each entry contains:
//   - Timestamp (RFC3339 with microseconds, UTC)
//   - Run ID (a random UUID per batch)
//   - Operation name
//   - Files read and written, and how many keys were touched
//
// Values and passwords are never recorded.
//
// # Failure Handling
//
// Audit logging is best-effort. Log returns its error so the caller can
// warn, but the operation itself has already finished and is not undone.
//
// # Concurrency
//
// Appends take an exclusive gofrs/flock lock on audit.jsonl.lock, so
// several envc processes can share one log.
package audit

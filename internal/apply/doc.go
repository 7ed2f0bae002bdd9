// Package apply executes update plans against a remote mutation capability
// under a concurrency cap with optional inter-dispatch pacing.
//
// Each plan entry becomes one mutation call. Outcomes are recorded
// per entry: one entry failing never cancels or blocks its siblings. The
// report keeps plan order regardless of completion order, and failures
// carry a classified reason (quota, auth, api_error, server_error, timeout,
// network) so callers can decide on follow-up actions, such as the
// test-and-enable workflow proceeding without confirmation when every
// failure is quota-classified.
//
// The executor never snapshots, never confirms and never retries. Those
// responsibilities belong to the orchestrator, the undo ledger and the
// transport layer respectively.
package apply

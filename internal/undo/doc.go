// Package undo captures and restores pre-mutation channel state.
//
// Before any mutation of an operation is dispatched, the ledger fetches the
// full current field set of every channel in the plan and persists one
// snapshot file per operation under the undo directory. Capture is a hard
// barrier: a single failed fetch or a failed persist aborts the whole
// operation, mutating without a durable pre-image is forbidden.
//
// Snapshot files are named undo_<instance>_<kind>_<timestamp>.json. The
// newest file per (instance, kind) is the default restore candidate; older
// files stay on disk for audit and can be restored by path.
//
// Restoring turns a snapshot back into an overwrite plan over every mutable
// field of every captured channel and runs it through the same apply
// executor as a forward operation.
package undo

// Package orchestrator drives chanctl's operation flows end to end:
// single-site updates, cross-site jobs, snapshot restores and the
// test-and-enable workflow.
//
// Every mutating flow follows the same order: fetch, plan, show the plan,
// stop on dry-run, confirm, snapshot, apply, report. The snapshot is a
// hard barrier: it completes (and persists) for every channel in the plan
// before the first mutation is dispatched, and any capture or persist
// failure aborts the operation.
//
// The orchestrator owns no rendering logic and no transport logic; it
// sequences the filter, plan, crosssite, undo, apply, client and cli
// packages.
package orchestrator

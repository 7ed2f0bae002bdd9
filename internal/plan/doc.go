// Package plan computes the update plans that chanctl dispatches.
//
// The package has three layers:
//
//   - update modes and their per-field-kind validity (mode.go). A mode that
//     is not valid for a field's kind is a configuration error, never a
//     silent coercion.
//   - the resolver (resolve.go): a pure function from (field, current value,
//     mode, desired value) to (next value, changed). All non-overwrite modes
//     are idempotent, re-running them against their own output changes
//     nothing.
//   - the builder (plan.go): selects channels through a filter spec,
//     resolves every enabled field update, encodes changed values through
//     the dialect codec and assembles an ordered Plan. Channels whose
//     resolution yields no change are dropped. The builder is pure, all I/O
//     belongs to the caller.
//
// A Plan entry carries the transport-shaped payload of changed fields only
// plus a human-readable old -> new summary per field for the dry-run view
// and the confirmation gate.
package plan

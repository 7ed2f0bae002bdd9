// Package crosssite reconciles channels across two gateway instances.
//
// A job names a source instance whose filter is expected to resolve to one
// template channel, a target instance whose filter may resolve to many, and
// an action:
//
//   - copy_fields builds one update plan for the target instance, copying
//     the listed fields from the template under a copy mode.
//   - compare_fields reports per-field source/target values and equality,
//     mutating nothing.
//   - compare_channel_counts reports total channel counts only, skipping
//     filtering entirely.
//
// When the source filter matches more than one channel the first match in
// fetch order becomes the template and a warning is returned. The warning
// must be surfaced prominently: silent first-match selection is a classic
// operator trap.
//
// The package is pure. Listing, snapshotting and applying belong to the
// orchestrator; an Execution tracks where in that flow a job stands.
package crosssite

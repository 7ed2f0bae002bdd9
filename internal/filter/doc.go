// Package filter implements the predicate evaluator that selects channels
// for an operation.
//
// A Spec holds inclusion predicate groups (name substring match, group /
// model / tag set membership, type equality), an optional id or key
// short-circuit, exclusion groups, and a match mode deciding how multiple
// inclusion groups combine ("any" or "all").
//
// Evaluation rules:
//
//   - A group is enabled when it has at least one configured value.
//   - With match_mode any, a channel matches when at least one enabled
//     group hits. With all, every enabled group must hit.
//   - Exclusion groups always veto, regardless of mode and regardless of an
//     id or key short-circuit.
//   - When an id or key filter is present the group evaluation is skipped
//     entirely; identity decides, exclusions still veto.
//   - No enabled inclusion groups: any-mode matches nothing. It never
//     falls back to match-everything. all-mode rejects the spec outright
//     at Validate time, there is nothing to satisfy.
//
// Matching is pure: no I/O, no mutation of the channel.
package filter

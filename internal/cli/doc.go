// Package cli renders chanctl's operator-facing output and gates: channel,
// plan, report and comparison tables, the confirm-before-apply prompt, and
// spinner-wrapped progress for slow listings.
//
// Nothing in here decides anything. The orchestrator owns the flow; this
// package only makes it readable on a terminal.
package cli

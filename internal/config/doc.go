// Package config loads and validates the chanctl configuration surface:
//
//   - chanctl.yaml: application settings (API client limits, undo
//     directory, logging), loaded defaults-first with the file overlaid.
//   - connections/<name>.yaml: one stored connection per gateway instance
//     (site URL, token, dialect). Parsed copies are cached as JSON keyed by
//     the source file's mtime; a stale or unreadable cache falls back to
//     the YAML.
//   - update.yaml: a filter spec plus an update spec for single-site runs.
//   - cross_site.yaml: a cross-site job document.
//
// Loaders validate eagerly so that a bad document never survives past
// startup, and Watch exposes an fsnotify-based change feed that update
// --watch uses to re-plan on save.
package config

// Package logging provides structured logging for chanctl with unified
// log handling and level filtering.
//
// The package wraps Go's standard slog package. Every entry carries a
// subsystem identifier so that log output from the different stages of a
// reconciliation run (Config, Client, Plan, Apply, Undo, CrossSite) can be
// told apart and filtered.
//
// # Usage
//
//	import "chanctl/pkg/logging"
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Client", "Fetched %d channels from %s", n, site)
//	logging.Debug("Plan", "Field %s unchanged, dropping", field)
//	logging.Warn("CrossSite", "Multiple source candidates, using first")
//	logging.Error("Apply", err, "Update failed for channel %d", id)
//
// InitWithFile duplicates output into a log file when the --log-file flag
// is set.
//
// Level filtering happens at the handler, so filtered-out messages cost no
// allocation. Logging is safe from multiple goroutines.
package logging

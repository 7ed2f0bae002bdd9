package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"chanctl/pkg/logging"
)

// connectionCache is the JSON copy of a parsed connection profile, keyed by
// the source file's mtime. Parsing YAML on every invocation is cheap; the
// cache exists so that an operator-edited file and the settings actually in
// use can be told apart (the cache records what was loaded, and when).
type connectionCache struct {
	SourceMTime int64      `json:"source_mtime"`
	CachedAt    time.Time  `json:"cached_at"`
	Connection  Connection `json:"connection"`
}

func cachePath(configDir, name string) string {
	return filepath.Join(configDir, cacheDirName, name+".json")
}

// readConnectionCache returns the cached connection when the cache entry is
// current for the source mtime. Any failure falls back to the YAML re-read.
func readConnectionCache(configDir, name string, sourceMTime time.Time) (Connection, bool) {
	data, err := os.ReadFile(cachePath(configDir, name))
	if err != nil {
		return Connection{}, false
	}
	var entry connectionCache
	if err := json.Unmarshal(data, &entry); err != nil {
		logging.Debug("Config", "Stale connection cache for %q: %v", name, err)
		return Connection{}, false
	}
	if entry.SourceMTime != sourceMTime.Unix() {
		return Connection{}, false
	}
	entry.Connection.Name = name
	return entry.Connection, true
}

// writeConnectionCache persists the parsed profile. Failures are logged and
// ignored: the cache is an optimization, never a source of truth.
func writeConnectionCache(configDir, name string, sourceMTime time.Time, conn Connection) {
	entry := connectionCache{
		SourceMTime: sourceMTime.Unix(),
		CachedAt:    time.Now().UTC(),
		Connection:  conn,
	}
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return
	}
	dir := filepath.Join(configDir, cacheDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logging.Debug("Config", "Cannot create cache dir %s: %v", dir, err)
		return
	}
	if err := os.WriteFile(cachePath(configDir, name), data, 0o600); err != nil {
		logging.Debug("Config", "Cannot write connection cache for %q: %v", name, err)
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"chanctl/pkg/logging"
)

// LoadAppConfig reads chanctl.yaml from the config dir, overlaying the
// defaults. A missing file is not an error: the defaults stand.
func LoadAppConfig(configDir string) (AppConfig, error) {
	cfg := DefaultAppConfig(configDir)
	path := filepath.Join(configDir, appConfigName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Config", "No %s at %s, using defaults", appConfigName, configDir)
			return cfg, nil
		}
		return AppConfig{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := validateAppConfig(path, &cfg); err != nil {
		return AppConfig{}, err
	}
	logging.Debug("Config", "Loaded application settings from %s", path)
	return cfg, nil
}

// LoadConnection reads connections/<name>.yaml, preferring the JSON cache
// when it is still current for the source file's mtime.
func LoadConnection(configDir, name string) (Connection, error) {
	path := filepath.Join(configDir, connectionsDir, name+".yaml")
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Connection{}, fmt.Errorf("%w: connection %q (%s)", ErrNotFound, name, path)
		}
		return Connection{}, fmt.Errorf("reading connection %q: %w", name, err)
	}

	if conn, ok := readConnectionCache(configDir, name, info.ModTime()); ok {
		logging.Debug("Config", "Connection %q served from cache", name)
		return conn, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Connection{}, fmt.Errorf("reading connection %q: %w", name, err)
	}
	var conn Connection
	if err := yaml.Unmarshal(data, &conn); err != nil {
		return Connection{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	conn.Name = name
	normalizeConnection(&conn)
	if err := validateConnection(path, &conn); err != nil {
		return Connection{}, err
	}

	writeConnectionCache(configDir, name, info.ModTime(), conn)
	logging.Debug("Config", "Loaded connection %q (%s, %s)", name, conn.APIType, conn.SiteURL)
	return conn, nil
}

// ListConnections returns the stored connection profile names.
func ListConnections(configDir string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(configDir, connectionsDir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	return names, nil
}

// LoadUpdateConfig reads and validates an update.yaml document.
func LoadUpdateConfig(path string) (*UpdateConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: update config %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg UpdateConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Filters.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Updates.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// LoadCrossSiteConfig reads and validates a cross_site.yaml document.
func LoadCrossSiteConfig(path string) (*CrossSiteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: cross-site config %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var cfg CrossSiteConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Job.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func normalizeConnection(conn *Connection) {
	conn.SiteURL = strings.TrimSpace(conn.SiteURL)
	if conn.SiteURL != "" && !strings.HasSuffix(conn.SiteURL, "/") {
		conn.SiteURL += "/"
	}
	conn.APIType = strings.ToLower(strings.TrimSpace(conn.APIType))
	if conn.UserID == "" {
		conn.UserID = defaultUserID
	}
}

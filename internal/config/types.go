package config

import (
	"time"

	"chanctl/internal/crosssite"
	"chanctl/internal/filter"
	"chanctl/internal/plan"
)

// Supported API dialects.
const (
	APITypeNewAPI = "newapi"
	APITypeVoAPI  = "voapi"
)

// Connection is one stored gateway connection profile.
type Connection struct {
	// Name is the profile name, derived from the file name.
	Name string `yaml:"-" json:"-"`

	// SiteURL is the gateway base URL, normalized to a trailing slash.
	SiteURL string `yaml:"site_url" json:"site_url"`
	// APIToken authenticates against the admin API. newapi sends it
	// verbatim, voapi as a bearer token.
	APIToken string `yaml:"api_token" json:"api_token"`
	// APIType selects the dialect: newapi or voapi.
	APIType string `yaml:"api_type" json:"api_type"`
	// UserID fills the New-Api-User header. Defaults to "1".
	UserID string `yaml:"user_id,omitempty" json:"user_id,omitempty"`
}

// APISettings tune the HTTP client shared by all operations.
type APISettings struct {
	// MaxConcurrentRequests caps in-flight requests during apply, capture
	// and test runs.
	MaxConcurrentRequests int `yaml:"max_concurrent_requests"`
	// RequestTimeoutSeconds bounds one request-response cycle.
	RequestTimeoutSeconds int `yaml:"request_timeout"`
	// RequestIntervalMS spaces successive dispatches. Zero disables
	// pacing.
	RequestIntervalMS int `yaml:"request_interval_ms"`
	// PageSizes sets the listing page size per dialect.
	PageSizes map[string]int `yaml:"page_sizes,omitempty"`
}

// RequestTimeout returns the per-request timeout as a duration.
func (s APISettings) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSeconds) * time.Second
}

// RequestInterval returns the dispatch pacing as a duration.
func (s APISettings) RequestInterval() time.Duration {
	return time.Duration(s.RequestIntervalMS) * time.Millisecond
}

// PageSize returns the listing page size for a dialect.
func (s APISettings) PageSize(apiType string) int {
	if n, ok := s.PageSizes[apiType]; ok && n > 0 {
		return n
	}
	return defaultPageSize
}

// UndoSettings locate and bound the snapshot ledger.
type UndoSettings struct {
	// Dir is the snapshot directory. Defaults under the config dir.
	Dir string `yaml:"dir,omitempty"`
	// Keep bounds retained snapshots per instance. Zero keeps all.
	Keep int `yaml:"keep,omitempty"`
}

// LoggingSettings configure the CLI logger.
type LoggingSettings struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// AppConfig is the chanctl.yaml document.
type AppConfig struct {
	APISettings APISettings     `yaml:"api_settings"`
	Undo        UndoSettings    `yaml:"undo"`
	Logging     LoggingSettings `yaml:"logging"`
}

// UpdateConfig is the update.yaml document: what to select and what to
// change.
type UpdateConfig struct {
	Filters filter.Spec     `yaml:"filters"`
	Updates plan.UpdateSpec `yaml:"updates"`
}

// CrossSiteConfig is the cross_site.yaml document.
type CrossSiteConfig struct {
	crosssite.Job `yaml:",inline"`
}

package config

import "net/url"

func validateConnection(path string, conn *Connection) error {
	if conn.SiteURL == "" {
		return validationErrorf(path, "site_url is required")
	}
	u, err := url.Parse(conn.SiteURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return validationErrorf(path, "site_url %q is not an absolute URL", conn.SiteURL)
	}
	if conn.APIToken == "" {
		return validationErrorf(path, "api_token is required")
	}
	switch conn.APIType {
	case APITypeNewAPI, APITypeVoAPI:
	case "":
		return validationErrorf(path, "api_type is required (newapi or voapi)")
	default:
		return validationErrorf(path, "unknown api_type %q (want newapi or voapi)", conn.APIType)
	}
	return nil
}

func validateAppConfig(path string, cfg *AppConfig) error {
	if cfg.APISettings.MaxConcurrentRequests < 0 {
		return validationErrorf(path, "max_concurrent_requests must not be negative")
	}
	if cfg.APISettings.RequestTimeoutSeconds <= 0 {
		return validationErrorf(path, "request_timeout must be positive")
	}
	if cfg.APISettings.RequestIntervalMS < 0 {
		return validationErrorf(path, "request_interval_ms must not be negative")
	}
	for dialect, size := range cfg.APISettings.PageSizes {
		if dialect != APITypeNewAPI && dialect != APITypeVoAPI {
			return validationErrorf(path, "page_sizes: unknown api_type %q", dialect)
		}
		if size <= 0 {
			return validationErrorf(path, "page_sizes: %s must be positive", dialect)
		}
	}
	return nil
}

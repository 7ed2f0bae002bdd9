package client

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"

	"chanctl/internal/config"
)

// userHeader carries the acting admin user id on every request.
const userHeader = "New-Api-User"

// newHTTPClient builds the shared transport: retries with backoff on 5xx
// and transient network failures, a per-request timeout, and for bearer
// dialects a static oauth2 token source so the Authorization header is
// attached below the retry layer and survives redirects.
func newHTTPClient(conn config.Connection, api config.APISettings, d dialect) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 4 * time.Second
	rc.HTTPClient.Timeout = api.RequestTimeout()
	rc.Logger = nil

	std := rc.StandardClient()
	std.Timeout = api.RequestTimeout()

	if d.bearerAuth {
		std.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: conn.APIToken}),
			Base:   std.Transport,
		}
	}
	return std
}

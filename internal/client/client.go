package client

import (
	"context"
	"fmt"

	"chanctl/internal/channel"
	"chanctl/internal/config"
	"chanctl/internal/plan"
)

// MaxPages caps listing pagination against gateways that never report an
// end.
const MaxPages = 500

// TestResult is the outcome of one channel connectivity test.
type TestResult struct {
	Success    bool
	StatusCode int
	Message    string
}

// Client is the capability the reconciliation core needs from a gateway.
// Implementations paginate, deduplicate and decode internally; the core
// only ever sees complete channel sets and opaque payloads.
type Client interface {
	// ListChannels returns the complete, deduplicated channel set.
	ListChannels(ctx context.Context) ([]channel.Channel, error)
	// GetChannel returns one channel's full current field set.
	GetChannel(ctx context.Context, id int64) (*channel.Channel, error)
	// UpdateChannel applies exactly the given changed-field payload.
	// Fields absent from the payload stay untouched server-side.
	UpdateChannel(ctx context.Context, id int64, payload map[string]any) error
	// TestChannel runs the gateway's connectivity test with a model.
	TestChannel(ctx context.Context, id int64, model string) (*TestResult, error)
	// Codec shapes resolved field values for this dialect's wire format.
	Codec() plan.Codec
	// APIType names the dialect.
	APIType() string
}

// New builds the dialect client for a connection profile.
func New(conn config.Connection, api config.APISettings) (Client, error) {
	var d dialect
	switch conn.APIType {
	case config.APITypeNewAPI:
		d = newapiDialect
	case config.APITypeVoAPI:
		d = voapiDialect
	default:
		return nil, fmt.Errorf("unknown api_type %q for connection %q", conn.APIType, conn.Name)
	}
	return &restClient{
		conn: conn,
		api:  api,
		d:    d,
		http: newHTTPClient(conn, api, d),
	}, nil
}

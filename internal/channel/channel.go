package channel

import "maps"

// Channel status values as stored by the gateway.
const (
	StatusEnabled          = 1
	StatusManuallyDisabled = 2
	StatusAutoDisabled     = 3
)

// Channel is the configuration state of one upstream channel on a gateway
// instance. List fields are kept as ordered slices and mapping fields as
// string-keyed maps regardless of how the remote dialect encodes them; the
// client layer converts on the way in and out.
type Channel struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`

	// Key is the channel secret. Read-only: it is matched against
	// key_filter and captured in snapshots, never written back.
	Key string `json:"key,omitempty"`

	Status       int    `json:"status"`
	Priority     int64  `json:"priority"`
	Weight       int64  `json:"weight"`
	TestModel    string `json:"test_model,omitempty"`
	BaseURL      string `json:"base_url,omitempty"`
	Organization string `json:"openai_organization,omitempty"`
	AutoBan      int    `json:"auto_ban"`

	Models []string `json:"models"`
	Groups []string `json:"group"`
	Tags   []string `json:"tag,omitempty"`

	ModelMapping      map[string]any `json:"model_mapping,omitempty"`
	Setting           map[string]any `json:"setting,omitempty"`
	StatusCodeMapping map[string]any `json:"status_code_mapping,omitempty"`
	Headers           map[string]any `json:"headers,omitempty"`
	ParamOverride     map[string]any `json:"param_override,omitempty"`
}

// Clone returns a deep copy. Slices and maps are duplicated so that plan
// resolution can never alias state captured in a snapshot.
func (c *Channel) Clone() *Channel {
	if c == nil {
		return nil
	}
	out := *c
	out.Models = append([]string(nil), c.Models...)
	out.Groups = append([]string(nil), c.Groups...)
	out.Tags = append([]string(nil), c.Tags...)
	out.ModelMapping = cloneMap(c.ModelMapping)
	out.Setting = cloneMap(c.Setting)
	out.StatusCodeMapping = cloneMap(c.StatusCodeMapping)
	out.Headers = cloneMap(c.Headers)
	out.ParamOverride = cloneMap(c.ParamOverride)
	return &out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	maps.Copy(out, m)
	return out
}

// Enabled reports whether the channel is live on the gateway.
func (c *Channel) Enabled() bool {
	return c.Status == StatusEnabled
}

// PreferredTestModel returns the model used for connectivity tests: the
// configured test_model if set, otherwise the first entry of models.
func (c *Channel) PreferredTestModel() string {
	if c.TestModel != "" {
		return c.TestModel
	}
	if len(c.Models) > 0 {
		return c.Models[0]
	}
	return ""
}

// StatusName renders a gateway status value for reports and tables.
func StatusName(status int) string {
	switch status {
	case StatusEnabled:
		return "enabled"
	case StatusManuallyDisabled:
		return "disabled"
	case StatusAutoDisabled:
		return "auto-disabled"
	default:
		return "unknown"
	}
}

// Dedupe returns the channels with duplicate ids removed, keeping the first
// occurrence and the original order. Listings assembled from multiple pages
// can repeat entries when the remote set changes mid-pagination.
func Dedupe(channels []Channel) []Channel {
	seen := make(map[int64]bool, len(channels))
	out := make([]Channel, 0, len(channels))
	for _, c := range channels {
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}

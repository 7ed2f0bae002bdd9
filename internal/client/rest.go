package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"chanctl/internal/channel"
	"chanctl/internal/config"
	"chanctl/internal/plan"
	"chanctl/pkg/logging"
)

// restClient implements Client for both dialects; the dialect struct holds
// every difference that matters.
type restClient struct {
	conn config.Connection
	api  config.APISettings
	d    dialect
	http *http.Client
}

func (c *restClient) APIType() string {
	return c.d.name
}

func (c *restClient) Codec() plan.Codec {
	return dialectCodec{d: c.d}
}

func (c *restClient) ListChannels(ctx context.Context) ([]channel.Channel, error) {
	pageSize := c.api.PageSize(c.d.name)
	var all []channel.Channel

	for page := 0; ; page++ {
		if page >= MaxPages {
			logging.Warn("Client", "Listing on %s hit the %d page cap, returning what was fetched", c.conn.Name, MaxPages)
			break
		}

		listURL := fmt.Sprintf("%sapi/channel/?p=%d&page_size=%d", c.conn.SiteURL, c.d.pageBase+page, pageSize)
		status, env, err := c.doJSON(ctx, http.MethodGet, listURL, nil)
		if err != nil {
			return nil, fmt.Errorf("listing channels on %s: %w", c.conn.Name, err)
		}

		if !env.Success {
			// voapi reports running past the last page as a 400 whose
			// message mentions the page; that is the normal end of a
			// listing, not a failure.
			if c.d.name == config.APITypeVoAPI && status == http.StatusBadRequest &&
				strings.Contains(strings.ToLower(env.Message), "page") {
				break
			}
			return nil, fmt.Errorf("listing channels on %s: %w", c.conn.Name, &APIError{StatusCode: status, Message: env.Message})
		}

		records, err := c.extractRecords(env.Data)
		if err != nil {
			return nil, fmt.Errorf("listing channels on %s, page %d: %w", c.conn.Name, c.d.pageBase+page, err)
		}
		if len(records) == 0 {
			break
		}
		all = append(all, records...)
	}

	deduped := channel.Dedupe(all)
	logging.Info("Client", "Fetched %d channels from %s (%d after dedupe)", len(all), c.conn.Name, len(deduped))
	return deduped, nil
}

// extractRecords unwraps one listing page. newapi's data is the array
// itself; voapi may wrap it in records or list, or return null at the end.
func (c *restClient) extractRecords(data json.RawMessage) ([]channel.Channel, error) {
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	if data[0] == '[' {
		return decodeChannels(data)
	}
	if c.d.name != config.APITypeVoAPI {
		return nil, fmt.Errorf("unexpected listing payload shape")
	}

	var wrapper struct {
		Records json.RawMessage `json:"records"`
		List    json.RawMessage `json:"list"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	switch {
	case len(wrapper.Records) > 0 && !bytes.Equal(wrapper.Records, []byte("null")):
		return decodeChannels(wrapper.Records)
	case len(wrapper.List) > 0 && !bytes.Equal(wrapper.List, []byte("null")):
		return decodeChannels(wrapper.List)
	default:
		return nil, nil
	}
}

func (c *restClient) GetChannel(ctx context.Context, id int64) (*channel.Channel, error) {
	getURL := fmt.Sprintf("%sapi/channel/%d", c.conn.SiteURL, id)
	status, env, err := c.doJSON(ctx, http.MethodGet, getURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching channel %d on %s: %w", id, c.conn.Name, err)
	}
	if !env.Success {
		return nil, fmt.Errorf("fetching channel %d on %s: %w", id, c.conn.Name, &APIError{StatusCode: status, Message: env.Message})
	}

	var wire wireChannel
	if err := json.Unmarshal(env.Data, &wire); err != nil {
		return nil, fmt.Errorf("decoding channel %d on %s: %w", id, c.conn.Name, err)
	}
	return wire.toChannel()
}

func (c *restClient) UpdateChannel(ctx context.Context, id int64, payload map[string]any) error {
	// The update endpoint addresses the channel through the body.
	body := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		body[k] = v
	}
	body["id"] = id

	updateURL := c.conn.SiteURL + "api/channel/"
	status, env, err := c.doJSON(ctx, http.MethodPut, updateURL, body)
	if err != nil {
		return fmt.Errorf("updating channel %d on %s: %w", id, c.conn.Name, err)
	}
	if !env.Success {
		return fmt.Errorf("updating channel %d on %s: %w", id, c.conn.Name, &APIError{StatusCode: status, Message: env.Message})
	}
	return nil
}

func (c *restClient) TestChannel(ctx context.Context, id int64, model string) (*TestResult, error) {
	testURL := fmt.Sprintf("%sapi/channel/test/%d?model=%s", c.conn.SiteURL, id, url.QueryEscape(model))
	status, env, err := c.doJSON(ctx, http.MethodGet, testURL, nil)
	if err != nil {
		return nil, fmt.Errorf("testing channel %d on %s: %w", id, c.conn.Name, err)
	}
	return &TestResult{
		Success:    status == http.StatusOK && env.Success,
		StatusCode: status,
		Message:    env.Message,
	}, nil
}

// doJSON performs one request and decodes the response envelope. Transport
// failures return an error; gateway-reported failures come back as the
// envelope with its status so callers can tell the two apart.
func (c *restClient) doJSON(ctx context.Context, method, rawURL string, body any) (int, *envelope, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(userHeader, c.conn.UserID)
	if !c.d.bearerAuth {
		req.Header.Set("Authorization", c.conn.APIToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("reading response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		if resp.StatusCode >= 400 {
			return resp.StatusCode, &envelope{Message: strings.TrimSpace(string(data))}, nil
		}
		return resp.StatusCode, nil, fmt.Errorf("decoding response (status %d): %w", resp.StatusCode, err)
	}
	return resp.StatusCode, &env, nil
}

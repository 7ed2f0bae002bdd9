package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"chanctl/internal/channel"
)

// envelope is the response shape both dialects share.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// wireChannel is a channel as either dialect serializes it: lists
// comma-joined, maps as objects or as JSON strings depending on the
// dialect.
type wireChannel struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Type         int    `json:"type"`
	Key          string `json:"key"`
	Status       int    `json:"status"`
	Priority     int64  `json:"priority"`
	Weight       int64  `json:"weight"`
	TestModel    string `json:"test_model"`
	BaseURL      string `json:"base_url"`
	Organization string `json:"openai_organization"`
	AutoBan      int    `json:"auto_ban"`

	Models string `json:"models"`
	Group  string `json:"group"`
	Tag    string `json:"tag"`

	ModelMapping      json.RawMessage `json:"model_mapping"`
	Setting           json.RawMessage `json:"setting"`
	StatusCodeMapping json.RawMessage `json:"status_code_mapping"`
	Headers           json.RawMessage `json:"headers"`
	ParamOverride     json.RawMessage `json:"param_override"`
	// OverrideParams is the voapi spelling of ParamOverride.
	OverrideParams json.RawMessage `json:"override_params"`
}

func (w *wireChannel) toChannel() (*channel.Channel, error) {
	c := &channel.Channel{
		ID:           w.ID,
		Name:         w.Name,
		Type:         w.Type,
		Key:          w.Key,
		Status:       w.Status,
		Priority:     w.Priority,
		Weight:       w.Weight,
		TestModel:    w.TestModel,
		BaseURL:      w.BaseURL,
		Organization: w.Organization,
		AutoBan:      w.AutoBan,
		Models:       channel.SplitList(w.Models),
		Groups:       channel.SplitList(w.Group),
		Tags:         channel.SplitList(w.Tag),
	}

	override := w.ParamOverride
	if len(override) == 0 || bytes.Equal(override, []byte("null")) {
		override = w.OverrideParams
	}

	var err error
	if c.ModelMapping, err = decodeWireMap(w.ModelMapping); err != nil {
		return nil, fmt.Errorf("channel %d: model_mapping: %w", w.ID, err)
	}
	if c.Setting, err = decodeWireMap(w.Setting); err != nil {
		return nil, fmt.Errorf("channel %d: setting: %w", w.ID, err)
	}
	if c.StatusCodeMapping, err = decodeWireMap(w.StatusCodeMapping); err != nil {
		return nil, fmt.Errorf("channel %d: status_code_mapping: %w", w.ID, err)
	}
	if c.Headers, err = decodeWireMap(w.Headers); err != nil {
		return nil, fmt.Errorf("channel %d: headers: %w", w.ID, err)
	}
	if c.ParamOverride, err = decodeWireMap(override); err != nil {
		return nil, fmt.Errorf("channel %d: param_override: %w", w.ID, err)
	}
	return c, nil
}

// decodeWireMap accepts the three shapes mapping fields travel in: absent
// or null, a JSON object, or a JSON string containing an object ("" counts
// as empty).
func decodeWireMap(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return channel.ToMap(s)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeChannels(raw json.RawMessage) ([]channel.Channel, error) {
	var wires []wireChannel
	if err := json.Unmarshal(raw, &wires); err != nil {
		return nil, err
	}
	out := make([]channel.Channel, 0, len(wires))
	for i := range wires {
		c, err := wires[i].toChannel()
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

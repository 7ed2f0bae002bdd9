package client

import (
	"encoding/json"
	"fmt"

	"chanctl/internal/channel"
)

// dialectCodec shapes resolved field values for one dialect's wire format.
type dialectCodec struct {
	d dialect
}

func (c dialectCodec) EncodeField(f channel.Field, value any) (string, any, error) {
	key := f.Name
	if f.Name == "param_override" {
		key = c.d.overrideParamsKey
	}

	switch f.Kind {
	case channel.KindList:
		list, err := channel.ToList(value)
		if err != nil {
			return "", nil, err
		}
		return key, channel.JoinList(list), nil

	case channel.KindMap:
		m, err := channel.ToMap(value)
		if err != nil {
			return "", nil, err
		}
		if !c.d.stringMaps {
			if m == nil {
				m = map[string]any{}
			}
			return key, m, nil
		}
		if len(m) == 0 {
			return key, "", nil
		}
		encoded, err := json.Marshal(m)
		if err != nil {
			return "", nil, fmt.Errorf("encoding %s: %w", f.Name, err)
		}
		return key, string(encoded), nil

	default:
		return key, value, nil
	}
}

package channel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SplitList decodes the comma-joined list encoding used on the wire.
// Elements are trimmed and empties dropped, order is preserved.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// JoinList is the inverse of SplitList.
func JoinList(list []string) string {
	return strings.Join(list, ",")
}

// ToList coerces a config or wire value into an ordered string list.
// Accepts nil, []string, []any and a comma-joined string.
func ToList(v any) ([]string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []string:
		return t, nil
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			s, err := stringify(e)
			if err != nil {
				return nil, fmt.Errorf("list element %v: %w", e, err)
			}
			out = append(out, s)
		}
		return out, nil
	case string:
		return SplitList(t), nil
	default:
		return nil, fmt.Errorf("cannot use %T as a list value", v)
	}
}

// ToMap coerces a config or wire value into a string-keyed map.
// Accepts nil, map[string]any, map[string]string and a JSON object string
// (the encoding voapi uses on the wire). An empty string decodes to nil.
func ToMap(v any) (map[string]any, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return t, nil
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = val
		}
		return out, nil
	case string:
		if strings.TrimSpace(t) == "" {
			return nil, nil
		}
		var out map[string]any
		if err := json.Unmarshal([]byte(t), &out); err != nil {
			return nil, fmt.Errorf("cannot decode %q as a JSON object: %w", t, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("cannot use %T as a map value", v)
	}
}

func stringify(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported type %T", v)
	}
}

// ListsEqual reports element-wise equality. Order matters: a reordering is
// a real change because gateways weight some list positions (first model is
// the default test model).
func ListsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MapsEqual compares mapping values structurally. Values are compared
// through their canonical JSON form so that an int 503 from YAML and a
// float64 503 from a JSON response compare equal.
func MapsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	return jsonEqual(a, b)
}

// ValuesEqual compares two values of any shape through their canonical
// JSON form. Used for mapping values, which may nest arbitrarily.
func ValuesEqual(a, b any) bool {
	return jsonEqual(a, b)
}

// ScalarsEqual compares scalar values with numeric types unified, so a
// YAML int matches the int64 priority decoded from the wire.
func ScalarsEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	if aok != bok {
		return false
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	default:
		return 0, false
	}
}

func jsonEqual(a, b any) bool {
	ja, err := json.Marshal(a)
	if err != nil {
		return false
	}
	jb, err := json.Marshal(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ja, jb)
}

// FormatValue renders a field value for change summaries and tables.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []string:
		return JoinList(t)
	case map[string]any:
		if len(t) == 0 {
			return "{}"
		}
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(b)
	default:
		return fmt.Sprintf("%v", v)
	}
}

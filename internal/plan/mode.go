package plan

import (
	"regexp"
	"slices"

	"chanctl/internal/channel"
)

// Mode is the merge policy applied to one field.
type Mode string

// Valid modes. Append and remove apply to ordered-set fields, merge and
// delete_keys to mapping fields, regex_replace to the name field only.
const (
	ModeOverwrite    Mode = "overwrite"
	ModeAppend       Mode = "append"
	ModeRemove       Mode = "remove"
	ModeMerge        Mode = "merge"
	ModeDeleteKeys   Mode = "delete_keys"
	ModeRegexReplace Mode = "regex_replace"
)

// ValidMode reports whether a mode may be applied to a field.
func ValidMode(f channel.Field, mode Mode) bool {
	switch f.Kind {
	case channel.KindScalar:
		if mode == ModeRegexReplace {
			return f.Name == "name"
		}
		return mode == ModeOverwrite
	case channel.KindList:
		return mode == ModeOverwrite || mode == ModeAppend || mode == ModeRemove
	case channel.KindMap:
		return mode == ModeOverwrite || mode == ModeMerge || mode == ModeDeleteKeys
	default:
		return false
	}
}

// FieldUpdate is one field's entry in the updates block of an update config.
// Mode defaults to overwrite. Pattern and Replacement are only read in
// regex_replace mode.
type FieldUpdate struct {
	Enabled     bool   `yaml:"enabled"`
	Mode        Mode   `yaml:"mode,omitempty"`
	Value       any    `yaml:"value,omitempty"`
	Pattern     string `yaml:"pattern,omitempty"`
	Replacement string `yaml:"replacement,omitempty"`
}

// EffectiveMode returns the mode with the default applied.
func (u FieldUpdate) EffectiveMode() Mode {
	if u.Mode == "" {
		return ModeOverwrite
	}
	return u.Mode
}

// UpdateSpec is the updates block of an update config, keyed by field name.
type UpdateSpec map[string]FieldUpdate

// Validate checks every enabled entry: the field must exist, the mode must
// be valid for its kind, a regex rule must compile and desired values must
// coerce to the field kind.
func (s UpdateSpec) Validate() error {
	_, err := s.normalize()
	return err
}

// normalize resolves aliases to canonical field names and validates along
// the way. Disabled entries are dropped.
func (s UpdateSpec) normalize() (map[string]FieldUpdate, error) {
	out := make(map[string]FieldUpdate, len(s))
	for name, upd := range s {
		if !upd.Enabled {
			continue
		}
		f, ok := channel.Lookup(name)
		if !ok {
			return nil, configErrorf(name, "unknown field")
		}
		mode := upd.EffectiveMode()
		if !ValidMode(f, mode) {
			return nil, configErrorf(f.Name, "mode %q is not valid for a %s field", mode, f.Kind)
		}
		if err := checkDesired(f, mode, upd); err != nil {
			return nil, err
		}
		if _, dup := out[f.Name]; dup {
			return nil, configErrorf(f.Name, "configured twice (alias collision)")
		}
		out[f.Name] = upd
	}
	if len(out) == 0 {
		return nil, configErrorf("", "no enabled field updates")
	}
	return out, nil
}

func checkDesired(f channel.Field, mode Mode, upd FieldUpdate) error {
	if mode == ModeRegexReplace {
		if upd.Pattern == "" {
			return configErrorf(f.Name, "regex_replace requires a pattern")
		}
		if _, err := regexp.Compile(upd.Pattern); err != nil {
			return configErrorf(f.Name, "invalid pattern: %v", err)
		}
		return nil
	}
	switch f.Kind {
	case channel.KindList:
		if _, err := channel.ToList(upd.Value); err != nil {
			return configErrorf(f.Name, "%v", err)
		}
	case channel.KindMap:
		if mode == ModeDeleteKeys {
			if _, err := toKeyList(upd.Value); err != nil {
				return configErrorf(f.Name, "%v", err)
			}
		} else {
			if _, err := channel.ToMap(upd.Value); err != nil {
				return configErrorf(f.Name, "%v", err)
			}
		}
	}
	return nil
}

// toKeyList interprets a desired value as a key list for delete_keys.
// Accepts a list, a comma-joined string, or a mapping (its keys are taken,
// sorted for deterministic summaries).
func toKeyList(v any) ([]string, error) {
	if m, err := channel.ToMap(v); err == nil && m != nil {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		return keys, nil
	}
	return channel.ToList(v)
}

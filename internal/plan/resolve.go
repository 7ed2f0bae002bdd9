package plan

import (
	"regexp"
	"slices"

	"chanctl/internal/channel"
)

// RegexRule is the desired value of a regex_replace update. An empty
// Replacement deletes the matched text.
type RegexRule struct {
	Pattern     string
	Replacement string
}

// Resolve computes the next value of one field. It is pure and, for every
// non-overwrite mode, idempotent: feeding the returned value back in with
// the same desired value reports changed=false.
//
// The desired value is the field update's value, except for regex_replace
// where it must be a RegexRule.
func Resolve(f channel.Field, current any, mode Mode, desired any) (next any, changed bool, err error) {
	if !ValidMode(f, mode) {
		return nil, false, configErrorf(f.Name, "mode %q is not valid for a %s field", mode, f.Kind)
	}

	if mode == ModeRegexReplace {
		return resolveRegex(f, current, desired)
	}

	switch f.Kind {
	case channel.KindScalar:
		return desired, !channel.ScalarsEqual(current, desired), nil
	case channel.KindList:
		return resolveList(f, current, mode, desired)
	case channel.KindMap:
		return resolveMap(f, current, mode, desired)
	}
	return nil, false, configErrorf(f.Name, "unhandled field kind %s", f.Kind)
}

func resolveRegex(f channel.Field, current, desired any) (any, bool, error) {
	rule, ok := desired.(RegexRule)
	if !ok {
		return nil, false, configErrorf(f.Name, "regex_replace requires a pattern/replacement rule")
	}
	re, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return nil, false, configErrorf(f.Name, "invalid pattern: %v", err)
	}
	cur, _ := current.(string)
	next := re.ReplaceAllString(cur, rule.Replacement)
	return next, next != cur, nil
}

func resolveList(f channel.Field, current any, mode Mode, desired any) (any, bool, error) {
	cur, err := channel.ToList(current)
	if err != nil {
		return nil, false, configErrorf(f.Name, "current value: %v", err)
	}
	des, err := channel.ToList(desired)
	if err != nil {
		return nil, false, configErrorf(f.Name, "%v", err)
	}

	switch mode {
	case ModeOverwrite:
		return des, !channel.ListsEqual(cur, des), nil
	case ModeAppend:
		next := slices.Clone(cur)
		for _, d := range des {
			if !slices.Contains(next, d) {
				next = append(next, d)
			}
		}
		return next, len(next) != len(cur), nil
	case ModeRemove:
		next := make([]string, 0, len(cur))
		for _, c := range cur {
			if !slices.Contains(des, c) {
				next = append(next, c)
			}
		}
		return next, len(next) != len(cur), nil
	}
	return nil, false, configErrorf(f.Name, "mode %q is not valid for a %s field", mode, f.Kind)
}

func resolveMap(f channel.Field, current any, mode Mode, desired any) (any, bool, error) {
	cur, err := channel.ToMap(current)
	if err != nil {
		return nil, false, configErrorf(f.Name, "current value: %v", err)
	}

	switch mode {
	case ModeOverwrite:
		des, err := channel.ToMap(desired)
		if err != nil {
			return nil, false, configErrorf(f.Name, "%v", err)
		}
		return des, !channel.MapsEqual(cur, des), nil

	case ModeMerge:
		des, err := channel.ToMap(desired)
		if err != nil {
			return nil, false, configErrorf(f.Name, "%v", err)
		}
		next := make(map[string]any, len(cur)+len(des))
		for k, v := range cur {
			next[k] = v
		}
		changed := false
		for k, v := range des {
			old, exists := next[k]
			if !exists || !channel.ValuesEqual(old, v) {
				changed = true
			}
			next[k] = v
		}
		return next, changed, nil

	case ModeDeleteKeys:
		keys, err := toKeyList(desired)
		if err != nil {
			return nil, false, configErrorf(f.Name, "%v", err)
		}
		next := make(map[string]any, len(cur))
		for k, v := range cur {
			next[k] = v
		}
		changed := false
		for _, k := range keys {
			if _, ok := next[k]; ok {
				delete(next, k)
				changed = true
			}
		}
		return next, changed, nil
	}
	return nil, false, configErrorf(f.Name, "mode %q is not valid for a %s field", mode, f.Kind)
}

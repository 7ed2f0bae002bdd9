package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"chanctl/internal/channel"
)

// Match modes for combining enabled inclusion groups.
const (
	MatchAny = "any"
	MatchAll = "all"
)

// ErrInvalidSpec marks filter specs that cannot be evaluated. Raised before
// any remote call is made.
var ErrInvalidSpec = errors.New("invalid filter spec")

// Spec is the filter block of an update or cross-site config file.
type Spec struct {
	MatchMode string `yaml:"match_mode,omitempty"`

	// Identity short-circuits. When any is set, inclusion groups are
	// ignored and the identity alone decides (exclusions still veto).
	ID        *int64  `yaml:"id,omitempty"`
	IDs       []int64 `yaml:"id_filters,omitempty"`
	KeyFilter string  `yaml:"key_filter,omitempty"`

	// Inclusion groups. A group with no values is disabled.
	NameFilters  []string `yaml:"name_filters,omitempty"`
	GroupFilters []string `yaml:"group_filters,omitempty"`
	ModelFilters []string `yaml:"model_filters,omitempty"`
	TagFilters   []string `yaml:"tag_filters,omitempty"`
	TypeFilters  []int    `yaml:"type_filters,omitempty"`

	// Exclusion groups, always subtractive.
	ExcludeNameFilters       []string `yaml:"exclude_name_filters,omitempty"`
	ExcludeGroupFilters      []string `yaml:"exclude_group_filters,omitempty"`
	ExcludeModelFilters      []string `yaml:"exclude_model_filters,omitempty"`
	ExcludeModelMappingKeys  []string `yaml:"exclude_model_mapping_keys,omitempty"`
	ExcludeParamOverrideKeys []string `yaml:"exclude_param_override_keys,omitempty"`
}

// EffectiveMode returns the match mode with the default applied.
func (s *Spec) EffectiveMode() string {
	if s.MatchMode == "" {
		return MatchAny
	}
	return s.MatchMode
}

// Validate rejects specs that must never reach evaluation: an unknown match
// mode, or all-mode with nothing to satisfy.
func (s *Spec) Validate() error {
	switch s.MatchMode {
	case "", MatchAny, MatchAll:
	default:
		return fmt.Errorf("%w: unknown match_mode %q (want %q or %q)", ErrInvalidSpec, s.MatchMode, MatchAny, MatchAll)
	}
	if s.EffectiveMode() == MatchAll && !s.hasIdentity() && s.enabledGroups() == 0 {
		return fmt.Errorf("%w: match_mode %q requires at least one non-empty inclusion group", ErrInvalidSpec, MatchAll)
	}
	return nil
}

// IsZero reports whether the spec selects nothing at all, meaning the caller
// asked for an unfiltered listing.
func (s *Spec) IsZero() bool {
	return !s.hasIdentity() &&
		s.enabledGroups() == 0 &&
		len(s.ExcludeNameFilters) == 0 &&
		len(s.ExcludeGroupFilters) == 0 &&
		len(s.ExcludeModelFilters) == 0 &&
		len(s.ExcludeModelMappingKeys) == 0 &&
		len(s.ExcludeParamOverrideKeys) == 0
}

func (s *Spec) hasIdentity() bool {
	return s.ID != nil || len(s.IDs) > 0 || s.KeyFilter != ""
}

func (s *Spec) enabledGroups() int {
	n := 0
	for _, enabled := range []bool{
		len(s.NameFilters) > 0,
		len(s.GroupFilters) > 0,
		len(s.ModelFilters) > 0,
		len(s.TagFilters) > 0,
		len(s.TypeFilters) > 0,
	} {
		if enabled {
			n++
		}
	}
	return n
}

// Matches evaluates the spec against one channel. The spec must have passed
// Validate; an all-mode spec with no enabled groups matches nothing here.
func (s *Spec) Matches(c *channel.Channel) bool {
	if s.excluded(c) {
		return false
	}
	if s.hasIdentity() {
		return s.identityMatches(c)
	}

	var hits []bool
	if len(s.NameFilters) > 0 {
		hits = append(hits, substringAny(c.Name, s.NameFilters))
	}
	if len(s.GroupFilters) > 0 {
		hits = append(hits, intersects(c.Groups, s.GroupFilters))
	}
	if len(s.ModelFilters) > 0 {
		hits = append(hits, intersects(c.Models, s.ModelFilters))
	}
	if len(s.TagFilters) > 0 {
		hits = append(hits, intersects(c.Tags, s.TagFilters))
	}
	if len(s.TypeFilters) > 0 {
		hits = append(hits, slices.Contains(s.TypeFilters, c.Type))
	}
	if len(hits) == 0 {
		return false
	}

	if s.EffectiveMode() == MatchAll {
		for _, hit := range hits {
			if !hit {
				return false
			}
		}
		return true
	}
	for _, hit := range hits {
		if hit {
			return true
		}
	}
	return false
}

// identityMatches checks the id short-circuit, which takes precedence over
// the key filter when both are configured.
func (s *Spec) identityMatches(c *channel.Channel) bool {
	if s.ID != nil || len(s.IDs) > 0 {
		if s.ID != nil && c.ID == *s.ID {
			return true
		}
		return slices.Contains(s.IDs, c.ID)
	}
	return c.Key == s.KeyFilter
}

func (s *Spec) excluded(c *channel.Channel) bool {
	if substringAny(c.Name, s.ExcludeNameFilters) {
		return true
	}
	if intersects(c.Groups, s.ExcludeGroupFilters) {
		return true
	}
	if intersects(c.Models, s.ExcludeModelFilters) {
		return true
	}
	if hasAnyKey(c.ModelMapping, s.ExcludeModelMappingKeys) {
		return true
	}
	if hasAnyKey(c.ParamOverride, s.ExcludeParamOverrideKeys) {
		return true
	}
	return false
}

func substringAny(value string, filters []string) bool {
	for _, f := range filters {
		if f == "" {
			continue
		}
		if strings.Contains(value, f) {
			return true
		}
	}
	return false
}

func intersects(set []string, filters []string) bool {
	for _, f := range filters {
		if slices.Contains(set, f) {
			return true
		}
	}
	return false
}

func hasAnyKey(m map[string]any, keys []string) bool {
	if len(m) == 0 {
		return false
	}
	for _, k := range keys {
		if _, ok := m[k]; ok {
			return true
		}
	}
	return false
}

// Select validates the spec and returns the channels it matches, preserving
// input order. A nil spec selects everything.
func Select(channels []channel.Channel, spec *Spec) ([]channel.Channel, error) {
	if spec == nil {
		return channels, nil
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	out := make([]channel.Channel, 0, len(channels))
	for i := range channels {
		if spec.Matches(&channels[i]) {
			out = append(out, channels[i])
		}
	}
	return out, nil
}

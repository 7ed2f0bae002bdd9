package crosssite

import (
	"errors"
	"fmt"

	"chanctl/internal/channel"
	"chanctl/internal/filter"
	"chanctl/internal/plan"
)

// Action selects what a cross-site job does.
type Action string

const (
	ActionCopyFields    Action = "copy_fields"
	ActionCompareFields Action = "compare_fields"
	ActionCompareCounts Action = "compare_channel_counts"
)

// ErrNoSourceMatch is returned when the source filter resolves no channel.
var ErrNoSourceMatch = errors.New("source filter matched no channels")

// Endpoint names one side of a job: a stored connection plus the filter
// applied to its channel listing.
type Endpoint struct {
	Connection string      `yaml:"connection"`
	Filter     filter.Spec `yaml:"filters"`
}

// Job is the cross_site.yaml document.
type Job struct {
	Action Action   `yaml:"action"`
	Source Endpoint `yaml:"source"`
	Target Endpoint `yaml:"target"`

	// Fields is the copy allow-list or the compare field list.
	Fields []string `yaml:"fields,omitempty"`
	// CopyMode applies to every copied field. Defaults to overwrite.
	CopyMode plan.Mode `yaml:"copy_mode,omitempty"`
}

// EffectiveCopyMode returns the copy mode with the default applied.
func (j *Job) EffectiveCopyMode() plan.Mode {
	if j.CopyMode == "" {
		return plan.ModeOverwrite
	}
	return j.CopyMode
}

// Validate rejects a job before any network I/O: unknown action, missing
// connections, unknown or missing fields, and for copy jobs any (field,
// copy mode) pair the field's kind does not support.
func (j *Job) Validate() error {
	switch j.Action {
	case ActionCopyFields, ActionCompareFields, ActionCompareCounts:
	case "":
		return fmt.Errorf("cross-site job: action is required")
	default:
		return fmt.Errorf("cross-site job: unknown action %q", j.Action)
	}

	if j.Source.Connection == "" {
		return fmt.Errorf("cross-site job: source connection is required")
	}
	if j.Target.Connection == "" {
		return fmt.Errorf("cross-site job: target connection is required")
	}

	if err := j.Source.Filter.Validate(); err != nil {
		return fmt.Errorf("cross-site job: source %w", err)
	}
	if err := j.Target.Filter.Validate(); err != nil {
		return fmt.Errorf("cross-site job: target %w", err)
	}

	if j.Action == ActionCompareCounts {
		return nil
	}
	if len(j.Fields) == 0 {
		return fmt.Errorf("cross-site job: action %s requires at least one field", j.Action)
	}

	for _, name := range j.Fields {
		f, ok := channel.Lookup(name)
		if !ok {
			return fmt.Errorf("cross-site job: unknown field %q", name)
		}
		if j.Action == ActionCopyFields && !plan.ValidMode(f, j.EffectiveCopyMode()) {
			return fmt.Errorf("cross-site job: copy mode %q is not valid for %s field %q",
				j.EffectiveCopyMode(), f.Kind, f.Name)
		}
	}
	return nil
}

package plan

import (
	"errors"
	"fmt"
)

// ErrNoMatch is returned when the filter spec selects no channels. Callers
// treat it as a reportable outcome, not a fatal failure.
var ErrNoMatch = errors.New("no channels matched the filters")

// ConfigError marks an invalid update or copy description: an unknown
// field, a mode that does not exist, a mode applied to the wrong field
// kind, or a desired value that cannot be coerced to the field's kind.
// Always raised before any remote call.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: field %q: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

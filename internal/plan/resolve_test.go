package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chanctl/internal/channel"
)

func field(t *testing.T, name string) channel.Field {
	t.Helper()
	f, ok := channel.Lookup(name)
	require.True(t, ok, "field %q must exist", name)
	return f
}

func TestResolveScalarOverwrite(t *testing.T) {
	f := field(t, "priority")

	next, changed, err := Resolve(f, int64(5), ModeOverwrite, 10)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 10, next)

	// YAML int vs wire int64 compare equal
	_, changed, err = Resolve(f, int64(5), ModeOverwrite, 5)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestResolveListAppend(t *testing.T) {
	f := field(t, "models")

	next, changed, err := Resolve(f, []string{"a", "b"}, ModeAppend, []any{"b", "c"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"a", "b", "c"}, next)

	// idempotent against its own output
	next2, changed, err := Resolve(f, next, ModeAppend, []any{"b", "c"})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, next, next2)
}

func TestResolveListRemove(t *testing.T) {
	f := field(t, "models")

	next, changed, err := Resolve(f, []string{"a", "b", "c"}, ModeRemove, []any{"b", "x"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, []string{"a", "c"}, next)

	_, changed, err = Resolve(f, []string{"a", "c"}, ModeRemove, []any{"b", "x"})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestAppendThenRemoveRestoresOriginal(t *testing.T) {
	f := field(t, "group")
	original := []string{"default", "vip"}

	appended, changed, err := Resolve(f, original, ModeAppend, []any{"batch", "eu"})
	require.NoError(t, err)
	require.True(t, changed)

	restored, changed, err := Resolve(f, appended, ModeRemove, []any{"batch", "eu"})
	require.NoError(t, err)
	require.True(t, changed)
	assert.Equal(t, original, restored)
}

func TestResolveListOverwriteIsOrderSensitive(t *testing.T) {
	f := field(t, "models")

	_, changed, err := Resolve(f, []string{"a", "b"}, ModeOverwrite, []any{"b", "a"})
	require.NoError(t, err)
	assert.True(t, changed, "reordering is a real change")

	_, changed, err = Resolve(f, []string{"a", "b"}, ModeOverwrite, "a,b")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestResolveMapMerge(t *testing.T) {
	f := field(t, "model_mapping")

	next, changed, err := Resolve(f,
		map[string]any{"x": "1"},
		ModeMerge,
		map[string]any{"x": "2", "y": "3"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, map[string]any{"x": "2", "y": "3"}, next)

	// keys not mentioned are never dropped
	next, changed, err = Resolve(f,
		map[string]any{"x": "1", "keep": "me"},
		ModeMerge,
		map[string]any{"x": "2"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, map[string]any{"x": "2", "keep": "me"}, next)

	// merging identical values is a no-op
	_, changed, err = Resolve(f,
		map[string]any{"x": "2"},
		ModeMerge,
		map[string]any{"x": "2"})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestResolveMapDeleteKeys(t *testing.T) {
	f := field(t, "status_code_mapping")

	next, changed, err := Resolve(f,
		map[string]any{"429": 503, "401": 403},
		ModeDeleteKeys,
		[]any{"429"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, map[string]any{"401": 403}, next)

	// absent key is a no-op, not an error
	_, changed, err = Resolve(f,
		map[string]any{"401": 403},
		ModeDeleteKeys,
		[]any{"429"})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestResolveMapDeleteKeysAcceptsMapping(t *testing.T) {
	f := field(t, "model_mapping")

	// a mapping desired value contributes its keys
	next, changed, err := Resolve(f,
		map[string]any{"gpt-4": "gpt-4o", "keep": "v"},
		ModeDeleteKeys,
		map[string]any{"gpt-4": "whatever"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, map[string]any{"keep": "v"}, next)
}

func TestResolveMapOverwrite(t *testing.T) {
	f := field(t, "headers")

	next, changed, err := Resolve(f,
		map[string]any{"a": "1"},
		ModeOverwrite,
		map[string]any{"b": "2"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, map[string]any{"b": "2"}, next)

	// YAML ints equal wire floats
	_, changed, err = Resolve(f,
		map[string]any{"n": float64(503)},
		ModeOverwrite,
		map[string]any{"n": 503})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestResolveRegexReplace(t *testing.T) {
	f := field(t, "name")

	next, changed, err := Resolve(f, "openai-old-eu-old", ModeRegexReplace, RegexRule{Pattern: "-old", Replacement: ""})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "openai-eu", next)

	next, changed, err = Resolve(f, "azure backup", ModeRegexReplace, RegexRule{Pattern: "backup", Replacement: "main"})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "azure main", next)

	_, changed, err = Resolve(f, "azure main", ModeRegexReplace, RegexRule{Pattern: "nomatch", Replacement: "x"})
	require.NoError(t, err)
	assert.False(t, changed)

	_, _, err = Resolve(f, "azure", ModeRegexReplace, RegexRule{Pattern: "([", Replacement: ""})
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestResolveRejectsInvalidModeForKind(t *testing.T) {
	tests := []struct {
		field string
		mode  Mode
	}{
		{"priority", ModeAppend},
		{"priority", ModeMerge},
		{"priority", ModeRegexReplace}, // regex only on name
		{"models", ModeMerge},
		{"models", ModeDeleteKeys},
		{"models", ModeRegexReplace},
		{"model_mapping", ModeAppend},
		{"model_mapping", ModeRemove},
		{"name", ModeAppend},
	}

	for _, tt := range tests {
		f := field(t, tt.field)
		_, _, err := Resolve(f, f.Get(&channel.Channel{}), tt.mode, nil)
		var cfgErr *ConfigError
		assert.ErrorAs(t, err, &cfgErr, "%s with mode %s must be rejected", tt.field, tt.mode)
	}
}

func TestValidMode(t *testing.T) {
	assert.True(t, ValidMode(field(t, "name"), ModeRegexReplace))
	assert.True(t, ValidMode(field(t, "name"), ModeOverwrite))
	assert.False(t, ValidMode(field(t, "base_url"), ModeRegexReplace))
	assert.True(t, ValidMode(field(t, "tag"), ModeAppend))
	assert.True(t, ValidMode(field(t, "setting"), ModeDeleteKeys))
	assert.False(t, ValidMode(field(t, "setting"), ModeRemove))
}

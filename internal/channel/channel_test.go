package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsDeep(t *testing.T) {
	orig := &Channel{
		ID:           7,
		Name:         "openai-main",
		Models:       []string{"gpt-4o", "gpt-4o-mini"},
		Groups:       []string{"default"},
		ModelMapping: map[string]any{"gpt-4": "gpt-4o"},
	}

	cp := orig.Clone()
	require.NotNil(t, cp)

	cp.Models[0] = "changed"
	cp.ModelMapping["gpt-4"] = "changed"
	cp.Name = "other"

	assert.Equal(t, "gpt-4o", orig.Models[0])
	assert.Equal(t, "gpt-4o", orig.ModelMapping["gpt-4"])
	assert.Equal(t, "openai-main", orig.Name)
}

func TestCloneNil(t *testing.T) {
	var c *Channel
	assert.Nil(t, c.Clone())
}

func TestPreferredTestModel(t *testing.T) {
	tests := []struct {
		name     string
		channel  Channel
		expected string
	}{
		{"explicit test model wins", Channel{TestModel: "gpt-4o-mini", Models: []string{"gpt-4o"}}, "gpt-4o-mini"},
		{"falls back to first model", Channel{Models: []string{"gpt-4o", "o3"}}, "gpt-4o"},
		{"no models at all", Channel{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.channel.PreferredTestModel())
		})
	}
}

func TestStatusName(t *testing.T) {
	assert.Equal(t, "enabled", StatusName(StatusEnabled))
	assert.Equal(t, "disabled", StatusName(StatusManuallyDisabled))
	assert.Equal(t, "auto-disabled", StatusName(StatusAutoDisabled))
	assert.Equal(t, "unknown", StatusName(99))
}

func TestDedupeKeepsFirstAndOrder(t *testing.T) {
	in := []Channel{
		{ID: 3, Name: "c"},
		{ID: 1, Name: "a"},
		{ID: 3, Name: "c-again"},
		{ID: 2, Name: "b"},
		{ID: 1, Name: "a-again"},
	}

	out := Dedupe(in)

	require.Len(t, out, 3)
	assert.Equal(t, int64(3), out[0].ID)
	assert.Equal(t, "c", out[0].Name)
	assert.Equal(t, int64(1), out[1].ID)
	assert.Equal(t, "a", out[1].Name)
	assert.Equal(t, int64(2), out[2].ID)
}

func TestLookup(t *testing.T) {
	f, ok := Lookup("models")
	require.True(t, ok)
	assert.Equal(t, KindList, f.Kind)

	f, ok = Lookup("model_mapping")
	require.True(t, ok)
	assert.Equal(t, KindMap, f.Kind)

	f, ok = Lookup("priority")
	require.True(t, ok)
	assert.Equal(t, KindScalar, f.Kind)

	// aliases resolve to their canonical field
	f, ok = Lookup("override_params")
	require.True(t, ok)
	assert.Equal(t, "param_override", f.Name)

	_, ok = Lookup("id")
	assert.False(t, ok, "id must not be a mutable field")

	_, ok = Lookup("key")
	assert.False(t, ok, "key must not be a mutable field")

	_, ok = Lookup("nonsense")
	assert.False(t, ok)
}

func TestFieldAccessors(t *testing.T) {
	c := &Channel{
		Name:     "anthropic-eu",
		Type:     14,
		Priority: 10,
		Models:   []string{"claude-sonnet-4-5"},
		Setting:  map[string]any{"force_format": true},
	}

	assert.Equal(t, "anthropic-eu", MustLookup("name").Get(c))
	assert.Equal(t, 14, MustLookup("type").Get(c))
	assert.Equal(t, int64(10), MustLookup("priority").Get(c))
	assert.Equal(t, []string{"claude-sonnet-4-5"}, MustLookup("models").Get(c))
	assert.Equal(t, map[string]any{"force_format": true}, MustLookup("setting").Get(c))
}

func TestSplitJoinList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList("  "))
	assert.Equal(t, []string{"a", "b", "c"}, SplitList("a,b,c"))
	assert.Equal(t, []string{"a", "b"}, SplitList(" a , ,b, "))
	assert.Equal(t, "a,b,c", JoinList([]string{"a", "b", "c"}))
	assert.Equal(t, "", JoinList(nil))
}

func TestToList(t *testing.T) {
	got, err := ToList([]any{"a", 2, int64(3)})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "2", "3"}, got)

	got, err = ToList("x, y")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, got)

	got, err = ToList(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ToList(42)
	assert.Error(t, err)
}

func TestToMap(t *testing.T) {
	got, err := ToMap(map[string]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 1}, got)

	got, err = ToMap(`{"gpt-4":"gpt-4o"}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"gpt-4": "gpt-4o"}, got)

	got, err = ToMap("")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ToMap(map[string]string{"x-api": "v1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"x-api": "v1"}, got)

	_, err = ToMap("not json")
	assert.Error(t, err)

	_, err = ToMap([]string{"a"})
	assert.Error(t, err)
}

func TestListsEqualIsOrderSensitive(t *testing.T) {
	assert.True(t, ListsEqual([]string{"a", "b"}, []string{"a", "b"}))
	assert.False(t, ListsEqual([]string{"a", "b"}, []string{"b", "a"}))
	assert.False(t, ListsEqual([]string{"a"}, []string{"a", "b"}))
	assert.True(t, ListsEqual(nil, nil))
	assert.True(t, ListsEqual(nil, []string{}))
}

func TestMapsEqualUnifiesNumericTypes(t *testing.T) {
	a := map[string]any{"429": 503, "nested": map[string]any{"n": 1}}
	b := map[string]any{"429": float64(503), "nested": map[string]any{"n": float64(1)}}
	assert.True(t, MapsEqual(a, b))

	assert.False(t, MapsEqual(map[string]any{"a": 1}, map[string]any{"a": 2}))
	assert.False(t, MapsEqual(map[string]any{"a": 1}, map[string]any{"a": 1, "b": 2}))
	assert.True(t, MapsEqual(nil, nil))
	assert.True(t, MapsEqual(nil, map[string]any{}))
}

func TestScalarsEqual(t *testing.T) {
	assert.True(t, ScalarsEqual(int64(5), 5))
	assert.True(t, ScalarsEqual(5, float64(5)))
	assert.True(t, ScalarsEqual("a", "a"))
	assert.False(t, ScalarsEqual("5", 5))
	assert.False(t, ScalarsEqual(5, 6))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "a,b", FormatValue([]string{"a", "b"}))
	assert.Equal(t, "{}", FormatValue(map[string]any{}))
	assert.Equal(t, `{"k":"v"}`, FormatValue(map[string]any{"k": "v"}))
	assert.Equal(t, "42", FormatValue(42))
}

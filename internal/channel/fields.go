package channel

import "fmt"

// FieldKind classifies how a field's values combine during planning.
type FieldKind int

const (
	KindScalar FieldKind = iota
	KindList
	KindMap
)

func (k FieldKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Field describes one mutable channel field: its canonical wire name, its
// kind, and an accessor for the current value on a channel.
type Field struct {
	Name string
	Kind FieldKind
	Get  func(*Channel) any
}

// fields is the registry in canonical order. The id and key are deliberately
// absent: id is the immutable handle, key is read-only.
var fields = []Field{
	{Name: "name", Kind: KindScalar, Get: func(c *Channel) any { return c.Name }},
	{Name: "type", Kind: KindScalar, Get: func(c *Channel) any { return c.Type }},
	{Name: "status", Kind: KindScalar, Get: func(c *Channel) any { return c.Status }},
	{Name: "priority", Kind: KindScalar, Get: func(c *Channel) any { return c.Priority }},
	{Name: "weight", Kind: KindScalar, Get: func(c *Channel) any { return c.Weight }},
	{Name: "test_model", Kind: KindScalar, Get: func(c *Channel) any { return c.TestModel }},
	{Name: "base_url", Kind: KindScalar, Get: func(c *Channel) any { return c.BaseURL }},
	{Name: "openai_organization", Kind: KindScalar, Get: func(c *Channel) any { return c.Organization }},
	{Name: "auto_ban", Kind: KindScalar, Get: func(c *Channel) any { return c.AutoBan }},
	{Name: "models", Kind: KindList, Get: func(c *Channel) any { return c.Models }},
	{Name: "group", Kind: KindList, Get: func(c *Channel) any { return c.Groups }},
	{Name: "tag", Kind: KindList, Get: func(c *Channel) any { return c.Tags }},
	{Name: "model_mapping", Kind: KindMap, Get: func(c *Channel) any { return c.ModelMapping }},
	{Name: "setting", Kind: KindMap, Get: func(c *Channel) any { return c.Setting }},
	{Name: "status_code_mapping", Kind: KindMap, Get: func(c *Channel) any { return c.StatusCodeMapping }},
	{Name: "headers", Kind: KindMap, Get: func(c *Channel) any { return c.Headers }},
	{Name: "param_override", Kind: KindMap, Get: func(c *Channel) any { return c.ParamOverride }},
}

// aliases maps accepted alternative spellings to canonical names. voapi
// deployments call param_override "override_params".
var aliases = map[string]string{
	"override_params": "param_override",
	"groups":          "group",
	"tags":            "tag",
}

var fieldIndex = func() map[string]Field {
	idx := make(map[string]Field, len(fields))
	for _, f := range fields {
		idx[f.Name] = f
	}
	return idx
}()

// Lookup resolves a field name (canonical or alias) from a config file.
func Lookup(name string) (Field, bool) {
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	f, ok := fieldIndex[name]
	return f, ok
}

// MustLookup is Lookup for registry-internal callers where the name is a
// compile-time constant.
func MustLookup(name string) Field {
	f, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("channel: unknown field %q", name))
	}
	return f
}

// Fields returns the full registry in canonical order.
func Fields() []Field {
	return fields
}

// FieldNames returns the canonical names in registry order.
func FieldNames() []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return names
}

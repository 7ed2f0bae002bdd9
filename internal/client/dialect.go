package client

// dialect captures how one API variant differs on the wire. Everything else
// is shared.
type dialect struct {
	name string
	// bearerAuth prefixes the token with "Bearer "; newapi sends it raw.
	bearerAuth bool
	// pageBase is the first page number in listing requests.
	pageBase int
	// stringMaps serializes mapping fields as JSON strings in payloads,
	// with "" for an empty map.
	stringMaps bool
	// overrideParamsKey is the wire name of the param_override field.
	overrideParamsKey string
}

var newapiDialect = dialect{
	name:              "newapi",
	pageBase:          0,
	overrideParamsKey: "param_override",
}

var voapiDialect = dialect{
	name:              "voapi",
	bearerAuth:        true,
	pageBase:          1,
	stringMaps:        true,
	overrideParamsKey: "override_params",
}

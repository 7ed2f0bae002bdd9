// Package channel defines the channel entity managed by chanctl and the
// field registry that the filtering, planning and cross-site layers are
// built on.
//
// A channel is a remote upstream definition held by a one-api style gateway
// instance. chanctl treats its configuration surface as three kinds of
// fields:
//
//   - scalar fields (name, type, priority, weight, test_model, base_url,
//     openai_organization, status, auto_ban)
//   - ordered-set fields (models, group, tag) — unique elements whose order
//     is preserved end to end
//   - mapping fields (model_mapping, setting, status_code_mapping, headers,
//     param_override) — string-keyed objects
//
// The id is the stable handle and is never mutated. The key is a privileged
// read-only secret: it participates in key_filter matching and in snapshots,
// but is never part of an update payload.
//
// The field registry (Lookup, Fields, FieldNames) maps canonical wire
// names to their kind and a typed accessor, so the rest of the engine never
// switches on field names directly.
package channel

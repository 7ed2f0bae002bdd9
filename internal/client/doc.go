// Package client talks to gateway admin APIs on behalf of the
// reconciliation core.
//
// Two dialects of the one-api family are supported, selected by the
// connection profile:
//
//   - newapi: raw token Authorization header, 0-based pagination, list and
//     map fields arrive comma-joined / as JSON objects.
//   - voapi: bearer token, 1-based pagination with records/list envelope
//     variants, map fields travel as JSON strings and param_override is
//     spelled override_params on the wire.
//
// The core never sees any of this: both dialects satisfy the same Client
// interface, decode into the same channel model, and expose a plan.Codec
// that the plan builder uses to shape payloads for the wire.
//
// Transport: retryable HTTP (3 retries with backoff on 5xx and transient
// network failures), per-request context, configurable timeout, and a page
// cap defending against a gateway that paginates forever.
package client

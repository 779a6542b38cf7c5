// Package gateway is the single entry point from the gallery client to the
// backend's remote procedures.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Gateway interface): invoke a
//     named procedure with a JSON-serializable payload and decode the `data`
//     portion of the response.
//  2. A concrete HTTP implementation (see HTTPGateway) that posts JSON to
//     {base}/functions/v1/{procedure}, authenticates with the project's
//     public API key and tags each call with a request id.
//  3. CheckAPIKey, which refuses privileged (service role) keys.
//
// # Error Handling
//
// Every failure is an *Error carrying the procedure, the HTTP status and the
// backend-provided message when there is one. It unwraps to one of the
// sentinels ErrUnavailable, ErrUnauthorized or ErrRemote so callers can match
// with errors.Is. Message extracts a user-facing text with a fallback.
//
// # Calls
//
// Each Invoke is exactly one network attempt: no retries, no timeout beyond
// what the caller's context and the http.Client impose. HTTPGateway holds no
// per-call state and is safe for concurrent use.
package gateway

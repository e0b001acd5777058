// Package api contains the client-side building blocks for talking to the
// Momento backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface):
//     Register/Login/Logout, CurrentUser, Feed, Upload, DeletePost.
//  2. A concrete HTTP implementation (see HTTPClient) that carries the
//     session credential in a cookie jar, speaks the backend's REST dialect
//     (JSON bodies, form-encoded login, multipart upload), and maps HTTP
//     status codes to sentinel errors.
//
// # Error Handling
//
// Common conditions are exposed as values that callers match with errors.Is
// or errors.As: ErrUnavailable, ErrUnauthorized, ErrNotFound, and *AuthError
// for rejected credentials (carrying a user-displayable reason).
//
// A 401 from the identity probe is deliberately an ErrUnauthorized value,
// not a failure mode: being a guest is a normal state of the application.
//
// # Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept a
// context.Context and honor cancellation; the only built-in deadline is the
// configured per-request timeout. Retries and backoff are out of scope.
package api

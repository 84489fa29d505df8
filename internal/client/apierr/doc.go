// Package apierr turns admin API responses into typed errors.
//
// # Error kinds
//
// The server names every failure with a string discriminator ("type") and an
// optional human-readable message. Two kinds are singled out:
//
//   - "AuthError": missing, invalid or expired token; surfaces as *AuthError.
//   - "ConflictError": the If-Match precondition did not hold; surfaces as
//     *APIError and is matched with IsConflict.
//
// Every other kind surfaces as *APIError with Type preserved verbatim.
// errors.As(err, new(*APIError)) succeeds for both *APIError and *AuthError.
//
// # Body styles
//
// Two server generations disagree on the error body:
//
//	raw:     {"type": "AuthError", "message": "token expired"}
//	wrapped: {"status": "error", "type": "AuthError", "message": "..."}
//	         {"status": "ok", "data": {...}}
//
// A Classifier is bound to one Style. StyleAuto inspects each body and picks
// wrapped when a "status" member is present. Classification never looks at
// the HTTP status code alone: error-shaped bodies on 200 are errors, and
// non-2xx responses with unrecognised bodies are returned unchanged.
package apierr

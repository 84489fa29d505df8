// Package adminfake is an in-memory stand-in for the game server admin API.
//
// It speaks the same /api/v1 protocol the client consumes: JWT bearer tokens
// in X-Token, argon2 verifiers over client password hashes, per-resource
// versions published as ETag and enforced through If-Match, and either error
// body style. Tests drive it through httptest; cmd/devserver serves it for
// manual runs of the CLI.
package adminfake

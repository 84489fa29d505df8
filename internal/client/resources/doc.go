// Package resources holds the typed clients for the versioned admin API
// collections: config, whitelist, blacklist and connections.
//
// # Optimistic concurrency
//
// Every successful GET remembers the response ETag under the request path;
// a GET without ETag forgets whatever was stored for that path. Every POST to
// the same path sends the remembered value as If-Match (unless the caller set
// If-Match already), and the server rejects it with a ConflictError when its
// current version differs. A POST does not refresh the stored ETag: after a
// mutation, callers re-fetch before the next conditional write.
//
// One slot per path is inherently racy across several clients or tabs. The
// server precondition is the only lock; nothing here serialises mutations.
//
// # Positional removal
//
// RemovePlayer addresses a player by its index in the last fetched snapshot.
// The index is not re-validated against a fresh fetch: the If-Match header
// already binds it to that snapshot, so a stale index is rejected by the
// server as a conflict instead of removing the wrong player.
package resources

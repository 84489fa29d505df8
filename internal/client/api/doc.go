// Package api is the single entry point the rest of the program uses to talk
// to the admin server.
//
// API is the full operation set; V1 implements it on top of the transport,
// the error classifier, the session manager and the resource clients.
// Constructing a V1 with a restored token starts a background verification;
// wait on Settled before trusting Logged.
//
// Errors returned by API methods keep their chain intact:
//
//   - apierr.IsAuth(err): the server rejected the token or credentials
//   - apierr.IsConflict(err): a conditional write lost to a concurrent change
//   - apierr.Kind(err): any other server-declared error kind
//   - *transport.TransportError: the server could not be reached
//   - apierr.ErrNotImplemented: IP list operations
package api

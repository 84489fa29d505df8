package common

// APIBasePath is the path prefix of every admin API endpoint.
const APIBasePath = "/api/v1"

// Header names used by the admin API.
const (
	// TokenHeaderName carries the bearer token on authenticated requests.
	TokenHeaderName = "X-Token"

	// ETagHeaderName carries the resource version on GET responses.
	ETagHeaderName = "ETag"

	// IfMatchHeaderName carries the expected resource version on mutations.
	IfMatchHeaderName = "If-Match"
)

// Package metadata is a small key/value table for client state that must
// survive restarts, such as the persisted session token.
package metadata

import (
	"context"
)

// Repository reads and writes the metadata table. Get returns (nil, nil)
// for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
}

// Package metadata is the durable key/value store of the client. It plays the
// part browser local storage plays for a web front end: values are opaque
// byte blobs under string keys.
package metadata

import "context"

// Repository stores opaque values by key.
//
// Get returns (nil, nil) for an absent key; Delete of an absent key is not an
// error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

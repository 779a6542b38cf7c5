package metadata

import "context"

// Repository is a small key/value table for client-side state that must
// survive restarts, such as the persisted session credential.
// Get returns a nil value and no error for a missing key; Delete of a
// missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

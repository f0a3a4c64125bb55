package storage

import "context"

// KV is the durable key-value medium the habit store is persisted in.
// Get reports found=false, not an error, for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Clear(ctx context.Context) error
	Close() error
}

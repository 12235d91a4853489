package kv

import "context"

// Store is the durable key-value collaborator the archive is built on.
// Get reports ErrNotFound for keys that were never written or were removed;
// Remove on an absent key is a no-op.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

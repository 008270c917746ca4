// Package store persists cart contents and saved preferences behind a small
// key-value interface. The planner itself never touches a store.
package store

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("key not found")
	ErrDuplicate = errors.New("course already in cart")
)

// Store is a key-value store. Implementations are safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
	Close() error
}

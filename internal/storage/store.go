package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("slot not found")

// Store is a namespaced key/value slot holding serialized client state.
// Consumers define their own narrower interfaces where they need less.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

func namespaced(namespace, key string) string {
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}

// Package record provides the opaque document store the rest of the service
// persists through. Records are JSON documents addressed by (entity, id);
// callers own the schema of what they put in.
package record

import (
	"context"
	"errors"
)

// ErrNotFound indicates the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Store is the persistence contract. Implementations must treat documents as
// opaque bytes.
type Store interface {
	Get(ctx context.Context, entity, id string) ([]byte, error)
	Put(ctx context.Context, entity, id string, doc []byte) error
	Delete(ctx context.Context, entity, id string) error
	List(ctx context.Context, entity string) (map[string][]byte, error)
}

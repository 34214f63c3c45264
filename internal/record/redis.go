package record

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Redis stores each entity as a hash keyed by record id.
type Redis struct {
	Client *redis.Client
	Prefix string
}

func (r Redis) key(entity string) string {
	prefix := r.Prefix
	if prefix == "" {
		prefix = "records"
	}
	return prefix + ":" + entity
}

// Get fetches a document from the entity hash.
func (r Redis) Get(ctx context.Context, entity, id string) ([]byte, error) {
	doc, err := r.Client.HGet(ctx, r.key(entity), id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

// Put writes a document into the entity hash.
func (r Redis) Put(ctx context.Context, entity, id string, doc []byte) error {
	return r.Client.HSet(ctx, r.key(entity), id, doc).Err()
}

// Delete removes a document. Missing records are not an error.
func (r Redis) Delete(ctx context.Context, entity, id string) error {
	return r.Client.HDel(ctx, r.key(entity), id).Err()
}

// List returns every document stored under the entity.
func (r Redis) List(ctx context.Context, entity string) (map[string][]byte, error) {
	values, err := r.Client.HGetAll(ctx, r.key(entity)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(values))
	for id, doc := range values {
		out[id] = []byte(doc)
	}
	return out, nil
}

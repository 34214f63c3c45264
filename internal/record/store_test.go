package record_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/emprendia/backend-tienda/internal/record"
)

func runStoreContract(t *testing.T, store record.Store) {
	t.Helper()
	ctx := context.Background()

	_, err := store.Get(ctx, "stores", "missing")
	require.ErrorIs(t, err, record.ErrNotFound)

	require.NoError(t, store.Put(ctx, "stores", "s1", []byte(`{"name":"one"}`)))
	require.NoError(t, store.Put(ctx, "stores", "s2", []byte(`{"name":"two"}`)))
	require.NoError(t, store.Put(ctx, "products", "p1", []byte(`{"name":"shoe"}`)))

	doc, err := store.Get(ctx, "stores", "s1")
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"one"}`, string(doc))

	// Overwrite replaces the document.
	require.NoError(t, store.Put(ctx, "stores", "s1", []byte(`{"name":"uno"}`)))
	doc, err = store.Get(ctx, "stores", "s1")
	require.NoError(t, err)
	require.JSONEq(t, `{"name":"uno"}`, string(doc))

	all, err := store.List(ctx, "stores")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Contains(t, all, "s1")
	require.Contains(t, all, "s2")

	require.NoError(t, store.Delete(ctx, "stores", "s2"))
	_, err = store.Get(ctx, "stores", "s2")
	require.ErrorIs(t, err, record.ErrNotFound)

	// Entities do not bleed into each other.
	products, err := store.List(ctx, "products")
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, record.NewMemory())
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	runStoreContract(t, record.Redis{Client: client, Prefix: "test"})
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := record.NewMemory()
	require.NoError(t, store.Put(ctx, "stores", "s1", []byte(`{"a":1}`)))

	doc, err := store.Get(ctx, "stores", "s1")
	require.NoError(t, err)
	doc[0] = 'X'

	again, err := store.Get(ctx, "stores", "s1")
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(again))
}

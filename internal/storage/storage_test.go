package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	*MemoryStore
}

func (f *failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection reset")
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	value := []byte(`{"a":1}`)
	require.NoError(t, store.Set(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, store.Delete(ctx, "k", "never-set"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Close())
	assert.ErrorIs(t, store.Set(ctx, "k", value), ErrClosed)
}

func TestNamespacePrefixesKeys(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	store := WithNamespace(inner, "freshmarket")

	require.NoError(t, store.Set(ctx, KeyUsers, []byte("[]")))

	_, err := inner.Get(ctx, KeyUsers)
	assert.ErrorIs(t, err, ErrNotFound)

	raw, err := inner.Get(ctx, "freshmarket:users")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	require.NoError(t, store.Delete(ctx, KeyUsers))
	_, err = inner.Get(ctx, "freshmarket:users")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Same(t, inner, WithNamespace(inner, ""))
}

func TestReadFallsBackToDefault(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	assert.Equal(t, []string{"def"}, Read(ctx, store, "missing", []string{"def"}))

	require.NoError(t, store.Set(ctx, "broken", []byte("{not json")))
	assert.Equal(t, 7, Read(ctx, store, "broken", 7))

	failing := &failingStore{MemoryStore: NewMemoryStore()}
	assert.Equal(t, "fallback", Read[string](ctx, failing, "any", "fallback"))
}

func TestWriteThenRead(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	type record struct {
		Name string `json:"name"`
	}
	require.NoError(t, Write(ctx, store, "r", []record{{Name: "a"}, {Name: "b"}}))

	got := Read(ctx, store, "r", []record(nil))
	assert.Equal(t, []record{{Name: "a"}, {Name: "b"}}, got)

	require.NoError(t, Remove(ctx, store, "r"))
	assert.Nil(t, Read(ctx, store, "r", []record(nil)))
}

func TestWriteRejectsUnencodableValues(t *testing.T) {
	err := Write(context.Background(), NewMemoryStore(), "ch", make(chan int))
	assert.Error(t, err)
}

func TestOpenMemory(t *testing.T) {
	store, err := Open(context.Background(), Options{Driver: "memory", Namespace: "test"})
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, Write(context.Background(), store, KeyBank, map[string]bool{"isLinked": true}))
	assert.Equal(t, map[string]bool{"isLinked": true}, Read(context.Background(), store, KeyBank, map[string]bool{}))

	_, err = Open(context.Background(), Options{Driver: "etcd"})
	assert.Error(t, err)
}

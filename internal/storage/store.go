// Package storage is the durable key-value layer every repository reads and
// writes whole collections through.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Logical keys of the persisted state.
const (
	KeyUsers    = "users"
	KeyProducts = "products"
	KeyOrders   = "orders"
	KeySession  = "session"
	KeyBank     = "bank"
)

// AllKeys lists every key the application persists.
func AllKeys() []string {
	return []string{KeyProducts, KeyOrders, KeyUsers, KeySession, KeyBank}
}

var (
	// ErrNotFound is returned by Get when the key holds no value.
	ErrNotFound = errors.New("storage: key not found")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("storage: store closed")
)

// Store is a string-keyed blob store. Writes replace the whole value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Options selects and configures a backend for Open.
type Options struct {
	Driver        string
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	Namespace     string
}

// Open constructs the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	var (
		store Store
		err   error
	)

	switch opts.Driver {
	case "memory":
		store = NewMemoryStore()
	case "sqlite", "postgres":
		store, err = OpenSQL(opts.Driver, opts.DSN)
	case "redis":
		store, err = OpenRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
	default:
		return nil, fmt.Errorf("storage: unsupported driver %q", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	return WithNamespace(store, opts.Namespace), nil
}

type namespaced struct {
	Store
	prefix string
}

// WithNamespace prefixes every key with "<namespace>:". An empty namespace
// returns store unchanged.
func WithNamespace(store Store, namespace string) Store {
	if namespace == "" {
		return store
	}
	return &namespaced{Store: store, prefix: namespace + ":"}
}

func (n *namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.Store.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.Store.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = n.prefix + key
	}
	return n.Store.Delete(ctx, full...)
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
)

// Read decodes the JSON value stored under key. A missing key, a backend
// failure or an undecodable value all yield def; only the latter two are
// logged.
func Read[T any](ctx context.Context, store Store, key string, def T) T {
	raw, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[Storage] read %s failed, using default: %v", key, err)
		}
		return def
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		log.Printf("[Storage] decode %s failed, using default: %v", key, err)
		return def
	}
	return value
}

// Write encodes value as JSON and replaces whatever key held.
func Write(ctx context.Context, store Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}

// Remove deletes keys; absent keys are ignored.
func Remove(ctx context.Context, store Store, keys ...string) error {
	return store.Delete(ctx, keys...)
}

// Package bootstrap turns a Config into a seeded store and its repositories.
// The server and the CLI share it.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/example/freshmarket/internal/config"
	"github.com/example/freshmarket/internal/latency"
	"github.com/example/freshmarket/internal/repository"
	"github.com/example/freshmarket/internal/seed"
	"github.com/example/freshmarket/internal/storage"
	"github.com/example/freshmarket/internal/utils"
)

// Runtime is an opened, seeded store with its repositories.
type Runtime struct {
	Store storage.Store
	Repos *repository.Repositories
	Seed  seed.Result
}

// Boot opens the configured store, seeds it and builds the repositories.
func Boot(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	hasher, err := utils.NewPasswordHasher(cfg.PasswordHashing)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, storage.Options{
		Driver:        cfg.StoreDriver,
		DSN:           cfg.DatabaseURL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
		Namespace:     cfg.StoreNamespace,
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	seedOpts := seed.Options{
		Admin: seed.Admin{
			Name:     cfg.AdminName,
			Contact:  cfg.AdminContact,
			Password: cfg.AdminPassword,
		},
		Hasher: hasher,
	}

	res, err := seed.Initialize(ctx, store, seedOpts)
	if err != nil {
		store.Close()
		return nil, err
	}

	profile := latency.DefaultProfile()
	profile.Scale = cfg.LatencyScale

	repos := repository.New(repository.Options{
		Store:   store,
		Latency: latency.New(profile),
		Hasher:  hasher,
		Seed:    seedOpts,
	})

	log.Printf("[Bootstrap] store %q ready (namespace %q, latency x%.2f)", cfg.StoreDriver, cfg.StoreNamespace, cfg.LatencyScale)
	return &Runtime{Store: store, Repos: repos, Seed: res}, nil
}

// Close releases the store.
func (r *Runtime) Close() error {
	return r.Store.Close()
}

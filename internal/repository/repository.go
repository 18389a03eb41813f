// Package repository implements the storefront's collections on top of a
// storage.Store. Every operation reads the whole collection, changes it in
// memory and writes it back, so a single writer per store is assumed.
package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/example/freshmarket/internal/latency"
	"github.com/example/freshmarket/internal/seed"
	"github.com/example/freshmarket/internal/storage"
	"github.com/example/freshmarket/internal/utils"
)

// Options wires the collaborators shared by every repository.
type Options struct {
	Store   storage.Store
	Latency latency.Simulator
	Hasher  utils.PasswordHasher
	Now     func() time.Time
	NewID   func() string
	// Seed configures the administrator re-created by a database reset.
	Seed seed.Options
}

// Repositories groups the storefront repositories over one store.
type Repositories struct {
	Auth     *AuthRepository
	Users    *UserRepository
	Products *ProductRepository
	Orders   *OrderRepository
	Settings *SettingsRepository
}

type base struct {
	// mu serializes read-modify-write cycles on the collections.
	mu sync.Mutex

	store   storage.Store
	latency latency.Simulator
	hasher  utils.PasswordHasher
	now     func() time.Time
	newID   func() string
	seed    seed.Options
}

// New builds the repositories. Missing options default to no latency,
// clear-text passwords, time.Now and time-ordered UUIDs.
func New(opts Options) *Repositories {
	b := &base{
		store:   opts.Store,
		latency: opts.Latency,
		hasher:  opts.Hasher,
		now:     opts.Now,
		newID:   opts.NewID,
		seed:    opts.Seed,
	}
	if b.latency == nil {
		b.latency = latency.None
	}
	if b.hasher == nil {
		b.hasher = utils.PlainHasher{}
	}
	if b.now == nil {
		b.now = time.Now
	}
	if b.newID == nil {
		b.newID = NewID
	}
	if b.seed.Hasher == nil {
		b.seed.Hasher = b.hasher
	}
	if b.seed.Now == nil {
		b.seed.Now = b.now
	}

	users := &UserRepository{base: b}
	return &Repositories{
		Auth:     &AuthRepository{base: b, users: users},
		Users:    users,
		Products: &ProductRepository{base: b},
		Orders:   &OrderRepository{base: b},
		Settings: &SettingsRepository{base: b},
	}
}

// NewID returns a fresh time-ordered identifier.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// begin holds op back by the simulated latency. The returned context is
// detached from ctx's cancellation: once an operation reaches the store it
// runs to completion.
func (b *base) begin(ctx context.Context, op latency.Op) (context.Context, error) {
	if err := b.latency.Wait(ctx, op); err != nil {
		return nil, err
	}
	return context.WithoutCancel(ctx), nil
}

// beginWrite is begin for operations that read a collection, change it and
// write it back. Callers must call unlock once the write is done.
func (b *base) beginWrite(ctx context.Context, op latency.Op) (_ context.Context, unlock func(), err error) {
	ctx, err = b.begin(ctx, op)
	if err != nil {
		return nil, nil, err
	}
	b.mu.Lock()
	return ctx, b.mu.Unlock, nil
}

func (b *base) nowMillis() int64 {
	return b.now().UnixMilli()
}

package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/seed"
	"github.com/example/freshmarket/internal/storage"
)

var (
	admin    = Caller{UserID: "admin-1", Role: models.RoleAdmin}
	subAdmin = Caller{UserID: "sub-1", Role: models.RoleSubAdmin}
)

type fixture struct {
	store *storage.MemoryStore
	repos *Repositories
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := storage.NewMemoryStore()
	var ids atomic.Int64
	var clock atomic.Int64
	clock.Store(1_700_000_000_000)

	repos := New(Options{
		Store: store,
		Now: func() time.Time {
			return time.UnixMilli(clock.Add(1))
		},
		NewID: func() string {
			return fmt.Sprintf("id-%d", ids.Add(1))
		},
	})

	_, err := seed.Initialize(context.Background(), store, seed.Options{})
	require.NoError(t, err)

	return &fixture{store: store, repos: repos}
}

func (f *fixture) signup(t *testing.T, name, contact, password string) (models.User, Caller) {
	t.Helper()
	u, err := f.repos.Auth.Signup(context.Background(), name, contact, password)
	require.NoError(t, err)
	return u, Caller{UserID: u.ID, Role: u.Role}
}

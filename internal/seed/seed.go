// Package seed prepares a store for first use: it guarantees the
// administrator account and the default catalog exist, and patches known
// catalog defects in stores seeded by earlier releases.
package seed

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/storage"
	"github.com/example/freshmarket/internal/utils"
)

// Admin describes the protected administrator account.
type Admin struct {
	ID       string
	Name     string
	Contact  string
	Password string
}

// DefaultAdmin is the account every fresh store starts with.
func DefaultAdmin() Admin {
	return Admin{
		ID:       "admin-1",
		Name:     "Super Admin",
		Contact:  "admin@freshmarket.com",
		Password: "admin",
	}
}

// Options tunes Initialize. Zero fields fall back to defaults.
type Options struct {
	Admin   Admin
	Hasher  utils.PasswordHasher
	Now     func() time.Time
	Patches []Patch
}

// Result reports what Initialize changed.
type Result struct {
	AdminCreated  bool
	CatalogSeeded bool
	Patched       []string
}

type step struct {
	name string
	fn   func(ctx context.Context, store storage.Store, opts Options, res *Result) error
}

var steps = []step{
	{name: "admin", fn: ensureAdmin},
	{name: "catalog", fn: ensureCatalog},
}

// Initialize is safe to call on every start. It never duplicates the
// administrator and never rewrites a catalog that needs no patching.
func Initialize(ctx context.Context, store storage.Store, opts Options) (Result, error) {
	opts = withDefaults(opts)

	var res Result
	for _, s := range steps {
		if err := s.fn(ctx, store, opts, &res); err != nil {
			return res, fmt.Errorf("seed %s: %w", s.name, err)
		}
	}
	return res, nil
}

func withDefaults(opts Options) Options {
	def := DefaultAdmin()
	if opts.Admin.ID == "" {
		opts.Admin.ID = def.ID
	}
	if opts.Admin.Name == "" {
		opts.Admin.Name = def.Name
	}
	if opts.Admin.Contact == "" {
		opts.Admin.Contact = def.Contact
	}
	if opts.Admin.Password == "" {
		opts.Admin.Password = def.Password
	}
	if opts.Hasher == nil {
		opts.Hasher = utils.PlainHasher{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Patches == nil {
		opts.Patches = CatalogPatches
	}
	return opts
}

func ensureAdmin(ctx context.Context, store storage.Store, opts Options, res *Result) error {
	users := storage.Read(ctx, store, storage.KeyUsers, []models.User{})

	contact := models.NormalizeContact(opts.Admin.Contact)
	for _, u := range users {
		if u.NormalizedContact() == contact {
			return nil
		}
	}

	password, err := opts.Hasher.Hash(opts.Admin.Password)
	if err != nil {
		return err
	}

	users = append(users, models.User{
		ID:       opts.Admin.ID,
		Name:     opts.Admin.Name,
		Contact:  contact,
		Password: password,
		Role:     models.RoleAdmin,
		JoinedAt: opts.Now().UnixMilli(),
	})
	if err := storage.Write(ctx, store, storage.KeyUsers, users); err != nil {
		return err
	}

	res.AdminCreated = true
	log.Printf("[Seed] administrator %s created", contact)
	return nil
}

func ensureCatalog(ctx context.Context, store storage.Store, opts Options, res *Result) error {
	products := storage.Read(ctx, store, storage.KeyProducts, []models.Product{})

	if len(products) == 0 {
		catalog := DefaultCatalog()
		if err := storage.Write(ctx, store, storage.KeyProducts, catalog); err != nil {
			return err
		}
		res.CatalogSeeded = true
		log.Printf("[Seed] default catalog written (%d products)", len(catalog))
		return nil
	}

	changed := applyPatches(products, opts.Patches)
	if len(changed) == 0 {
		return nil
	}
	if err := storage.Write(ctx, store, storage.KeyProducts, products); err != nil {
		return err
	}

	res.Patched = changed
	log.Printf("[Seed] patched catalog entries %v", changed)
	return nil
}

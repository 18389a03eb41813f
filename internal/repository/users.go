package repository

import (
	"context"
	"fmt"

	"github.com/example/freshmarket/internal/latency"
	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/storage"
)

// UserRepository manages the users collection.
type UserRepository struct {
	*base
}

func (r *UserRepository) load(ctx context.Context) []models.User {
	return storage.Read(ctx, r.store, storage.KeyUsers, []models.User{})
}

func (r *UserRepository) save(ctx context.Context, users []models.User) error {
	if err := storage.Write(ctx, r.store, storage.KeyUsers, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// GetAll returns every user. Admin only.
func (r *UserRepository) GetAll(ctx context.Context, caller Caller) ([]models.User, error) {
	if !caller.canManageUsers() {
		return nil, ErrForbidden
	}
	ctx, err := r.begin(ctx, latency.OpUsersList)
	if err != nil {
		return nil, err
	}
	return r.load(ctx), nil
}

// Count returns the number of stored users without simulated latency.
func (r *UserRepository) Count(ctx context.Context) int {
	return len(r.load(ctx))
}

// Delete removes the user with id if present. The administrator can never be
// deleted. Admin only.
func (r *UserRepository) Delete(ctx context.Context, caller Caller, id string) error {
	if !caller.canManageUsers() {
		return ErrForbidden
	}
	ctx, unlock, err := r.beginWrite(ctx, latency.OpUserDelete)
	if err != nil {
		return err
	}
	defer unlock()

	users := r.load(ctx)
	if u, ok := findUser(users, id); ok && u.Role == models.RoleAdmin {
		return ErrForbidden
	}
	return r.save(ctx, removeUser(users, id))
}

// FindByID returns the stored user with id, without simulated latency.
// Request authentication uses it to resolve token subjects.
func (r *UserRepository) FindByID(ctx context.Context, id string) (models.User, bool) {
	return findUser(r.load(ctx), id)
}

// FindByContact returns the user whose normalized contact matches.
func (r *UserRepository) FindByContact(ctx context.Context, contact string) (models.User, bool) {
	normalized := models.NormalizeContact(contact)
	for _, u := range r.load(ctx) {
		if u.NormalizedContact() == normalized {
			return u, true
		}
	}
	return models.User{}, false
}

// FindByCredentials returns the user matching the normalized contact and
// the password.
func (r *UserRepository) FindByCredentials(ctx context.Context, contact, password string) (models.User, bool) {
	u, ok := r.FindByContact(ctx, contact)
	if !ok || !r.hasher.Compare(u.Password, password) {
		return models.User{}, false
	}
	return u, true
}

func findUser(users []models.User, id string) (models.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func removeUser(users []models.User, id string) []models.User {
	kept := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	return kept
}

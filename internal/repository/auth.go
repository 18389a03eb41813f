package repository

import (
	"context"
	"fmt"

	"github.com/example/freshmarket/internal/latency"
	"github.com/example/freshmarket/internal/models"
	"github.com/example/freshmarket/internal/storage"
)

// AuthRepository owns the session: a single stored snapshot of the user who
// last logged in or signed up. The snapshot is not refreshed when the user
// record changes later.
type AuthRepository struct {
	*base
	users *UserRepository
}

func (r *AuthRepository) setSession(ctx context.Context, u models.User) error {
	if err := storage.Write(ctx, r.store, storage.KeySession, u.Sanitized()); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *AuthRepository) clearSession(ctx context.Context) error {
	if err := storage.Remove(ctx, r.store, storage.KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// CurrentSession returns the session snapshot, or nil when nobody is logged in.
func (r *AuthRepository) CurrentSession(ctx context.Context) (*models.User, error) {
	ctx, err := r.begin(ctx, latency.OpSessionGet)
	if err != nil {
		return nil, err
	}
	return storage.Read[*models.User](ctx, r.store, storage.KeySession, nil), nil
}

// SessionFor returns the session snapshot when it belongs to caller, or to
// anyone when caller is staff. Otherwise it reports no session.
func (r *AuthRepository) SessionFor(ctx context.Context, caller Caller) (*models.User, error) {
	session, err := r.CurrentSession(ctx)
	if err != nil || session == nil {
		return nil, err
	}
	if !caller.canViewSessionOf(session.ID) {
		return nil, nil
	}
	return session, nil
}

// Login authenticates by contact (trimmed, case-insensitive) and password and
// makes the user the current session.
func (r *AuthRepository) Login(ctx context.Context, contact, password string) (models.User, error) {
	ctx, err := r.begin(ctx, latency.OpLogin)
	if err != nil {
		return models.User{}, err
	}

	u, ok := r.users.FindByCredentials(ctx, contact, password)
	if !ok {
		return models.User{}, ErrInvalidCredentials
	}
	if err := r.setSession(ctx, u); err != nil {
		return models.User{}, err
	}
	return u.Sanitized(), nil
}

// Signup creates a user account with role user and logs it in.
func (r *AuthRepository) Signup(ctx context.Context, name, contact, password string) (models.User, error) {
	ctx, unlock, err := r.beginWrite(ctx, latency.OpSignup)
	if err != nil {
		return models.User{}, err
	}
	defer unlock()

	normalized := models.NormalizeContact(contact)
	users := r.users.load(ctx)
	for _, u := range users {
		if u.NormalizedContact() == normalized {
			return models.User{}, ErrAlreadyExists
		}
	}

	stored, err := r.hasher.Hash(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := models.User{
		ID:       r.newID(),
		Name:     name,
		Contact:  normalized,
		Password: stored,
		Role:     models.RoleUser,
		JoinedAt: r.nowMillis(),
	}
	if err := r.users.save(ctx, append(users, u)); err != nil {
		return models.User{}, err
	}
	if err := r.setSession(ctx, u); err != nil {
		return models.User{}, err
	}
	return u.Sanitized(), nil
}

// Logout clears the session. Logging out twice is not an error.
func (r *AuthRepository) Logout(ctx context.Context) error {
	ctx, err := r.begin(ctx, latency.OpLogout)
	if err != nil {
		return err
	}
	return r.clearSession(ctx)
}

// LogoutAs clears the session if it belongs to caller, or to anyone when
// caller is staff. A session held by someone else is left alone.
func (r *AuthRepository) LogoutAs(ctx context.Context, caller Caller) error {
	ctx, err := r.begin(ctx, latency.OpLogout)
	if err != nil {
		return err
	}
	session := storage.Read[*models.User](ctx, r.store, storage.KeySession, nil)
	if session == nil || !caller.canViewSessionOf(session.ID) {
		return nil
	}
	return r.clearSession(ctx)
}

// DeleteAccount removes the user with id and clears the session. The session
// is cleared even when it belongs to someone else, matching the storefront's
// historical behaviour. The administrator cannot be deleted.
func (r *AuthRepository) DeleteAccount(ctx context.Context, caller Caller, id string) error {
	if !caller.canDeleteAccount(id) {
		return ErrForbidden
	}
	ctx, unlock, err := r.beginWrite(ctx, latency.OpDeleteAccount)
	if err != nil {
		return err
	}
	defer unlock()

	users := r.users.load(ctx)
	if u, ok := findUser(users, id); ok && u.Role == models.RoleAdmin {
		return ErrForbidden
	}
	if err := r.users.save(ctx, removeUser(users, id)); err != nil {
		return err
	}
	return r.clearSession(ctx)
}

package repository

import "github.com/example/freshmarket/internal/models"

// Caller identifies who invokes a privileged operation. Repositories check
// it themselves so skipping a client-side role check grants nothing.
type Caller struct {
	UserID string
	Role   models.Role
}

// SystemCaller is used by maintenance tooling that runs with admin rights.
var SystemCaller = Caller{UserID: "system", Role: models.RoleAdmin}

// Anonymous is the caller with no session.
var Anonymous = Caller{}

func (c Caller) authenticated() bool {
	return c.UserID != "" && c.Role.Valid()
}

func (c Caller) isAdmin() bool {
	return c.authenticated() && c.Role == models.RoleAdmin
}

func (c Caller) isStaff() bool {
	return c.authenticated() && c.Role.IsStaff()
}

func (c Caller) canManageCatalog() bool { return c.isStaff() }

func (c Caller) canManageUsers() bool { return c.isAdmin() }

func (c Caller) canManageSettings() bool { return c.isAdmin() }

func (c Caller) canViewAllOrders() bool { return c.isStaff() }

func (c Caller) canViewOrdersOf(userID string) bool {
	return c.isStaff() || (c.authenticated() && c.UserID == userID)
}

func (c Caller) canOrderFor(userID string) bool {
	return c.isAdmin() || (c.authenticated() && c.UserID == userID)
}

func (c Caller) canDeleteAccount(userID string) bool {
	return c.isAdmin() || (c.authenticated() && c.UserID == userID)
}

func (c Caller) canViewSessionOf(userID string) bool {
	return c.isStaff() || (c.authenticated() && c.UserID == userID)
}

package models

import "strings"

// Role is the authorization level of a User.
type Role string

const (
	RoleUser     Role = "user"
	RoleAdmin    Role = "admin"
	RoleSubAdmin Role = "sub-admin"
)

// IsStaff reports whether the role may use the admin back-office.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSubAdmin
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSubAdmin:
		return true
	}
	return false
}

// User represents a storefront account.
//
// Password holds whatever the configured hasher produced. With the default
// plain hasher that is the clear-text password.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Password string `json:"password,omitempty"`
	Role     Role   `json:"role"`
	JoinedAt int64  `json:"joinedAt"`
}

// Sanitized returns a copy of the user without the password.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// NormalizedContact returns the user's contact in its canonical form.
func (u User) NormalizedContact() string {
	return NormalizeContact(u.Contact)
}

// NormalizeContact trims and lowercases an email address or phone number.
func NormalizeContact(contact string) string {
	return strings.ToLower(strings.TrimSpace(contact))
}

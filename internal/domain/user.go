package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an account in the system. Fields are unexported so state
// only changes through the lifecycle methods below.
type User struct {
	id           uuid.UUID
	username     string
	email        string
	passwordHash string
	role         string
	isActive     bool
	createdAt    time.Time
	lastLoginAt  *time.Time
}

// NewUser creates an active user. The email is stored lowercased; the
// password must already be hashed by the caller.
func NewUser(username, email, passwordHash, role string) (*User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, NewValidationError("username", "username cannot be empty")
	}
	if strings.TrimSpace(email) == "" {
		return nil, NewValidationError("email", "email cannot be empty")
	}
	if strings.TrimSpace(passwordHash) == "" {
		return nil, NewValidationError("password", "password hash cannot be empty")
	}
	if !isValidEmail(email) {
		return nil, NewValidationError("email", "email format is not valid")
	}
	if role == "" {
		role = "User"
	}

	return &User{
		id:           uuid.New(),
		username:     username,
		email:        strings.ToLower(email),
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    time.Now().UTC(),
	}, nil
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Username() string     { return u.username }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() string         { return u.role }
func (u *User) IsActive() bool       { return u.isActive }
func (u *User) CreatedAt() time.Time { return u.createdAt }

// LastLoginAt returns the last login timestamp, if any login was recorded.
func (u *User) LastLoginAt() (time.Time, bool) {
	if u.lastLoginAt == nil {
		return time.Time{}, false
	}
	return *u.lastLoginAt, true
}

// UpdateLastLogin records the current time as the last successful login.
func (u *User) UpdateLastLogin() {
	now := time.Now().UTC()
	u.lastLoginAt = &now
}

// Deactivate disables the account; a deactivated user cannot log in.
func (u *User) Deactivate() {
	u.isActive = false
}

// Activate re-enables the account.
func (u *User) Activate() {
	u.isActive = true
}

// ChangeRole assigns a new role to the user.
func (u *User) ChangeRole(newRole string) error {
	if strings.TrimSpace(newRole) == "" {
		return NewValidationError("role", "role cannot be empty")
	}
	u.role = newRole
	return nil
}

// isValidEmail accepts only a plain address, rejecting display names and
// other forms the address parser would otherwise tolerate.
func isValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email
}

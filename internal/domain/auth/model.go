// Package auth provides authentication: users, password verification and
// JWT issuance. Authorization is carried by scope.UserScope — a user is
// either bound to one store or global.
package auth

import (
	"context"
	"time"

	"gestock/internal/core/apperror"
	"gestock/internal/core/id"
)

// User represents a system user. StoreID nil means a global user who may
// act across stores.
type User struct {
	ID           id.ID   `db:"id" json:"id"`
	Username     string  `db:"username" json:"username"`
	Email        *string `db:"email" json:"email,omitempty"`
	PasswordHash string  `db:"password_hash" json:"-"`

	StoreID *id.ID `db:"store_id" json:"storeId,omitempty"`

	IsActive bool `db:"is_active" json:"isActive"`

	LastLoginAt         *time.Time `db:"last_login_at" json:"lastLoginAt,omitempty"`
	FailedLoginAttempts int        `db:"failed_login_attempts" json:"-"`
	LockedUntil         *time.Time `db:"locked_until" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	Version   int       `db:"version" json:"version"`
}

// NewUser creates an active user.
func NewUser(username, passwordHash string, storeID *id.ID) *User {
	now := time.Now().UTC()
	return &User{
		ID:           id.New(),
		Username:     username,
		PasswordHash: passwordHash,
		StoreID:      storeID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
		Version:      1,
	}
}

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if u.Username == "" {
		return apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	return nil
}

// IsGlobal reports whether the user acts across stores.
func (u *User) IsGlobal() bool {
	return u.StoreID == nil
}

// IsLocked reports whether the account is temporarily locked.
func (u *User) IsLocked() bool {
	if u.LockedUntil == nil {
		return false
	}
	return time.Now().Before(*u.LockedUntil)
}

// CanLogin checks whether the user may log in.
func (u *User) CanLogin() error {
	if !u.IsActive {
		return apperror.NewForbidden("account is disabled")
	}
	if u.IsLocked() {
		return apperror.NewForbidden("account is temporarily locked")
	}
	return nil
}

// RecordFailedLogin increments the failure counter, locking the account
// once maxAttempts is reached.
func (u *User) RecordFailedLogin(maxAttempts int, lockDuration time.Duration) {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= maxAttempts {
		lockUntil := time.Now().Add(lockDuration)
		u.LockedUntil = &lockUntil
	}
}

// RecordSuccessfulLogin resets the failure counter.
func (u *User) RecordSuccessfulLogin() {
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
	now := time.Now().UTC()
	u.LastLoginAt = &now
}

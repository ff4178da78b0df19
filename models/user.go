// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Role is the authorization level of a dashboard account.
type Role string

const (
	// RoleAdmin grants access to the user administration area.
	RoleAdmin Role = "ADMIN"

	// RoleStandard is the default role assigned at registration.
	RoleStandard Role = "STANDARD"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStandard
}

// User represents a dashboard account together with its credential and
// lockout state. Sensitive fields are never serialized to JSON.
type User struct {
	// UserID is the database identifier of the account.
	UserID int64 `json:"id"`

	// Email is unique and always stored lowercase.
	Email string `json:"email"`

	// Username is unique case-insensitively; the original casing is kept.
	Username string `json:"username"`

	// Name is the display name shown in the dashboard.
	Name string `json:"name"`

	// PasswordHash is the bcrypt hash of the account password.
	PasswordHash string `json:"-"`

	// Role is the authorization level of the account.
	Role Role `json:"role"`

	// EmailVerified is the time the email address was confirmed.
	// A nil value blocks login.
	EmailVerified *time.Time `json:"emailVerified,omitempty"`

	// FailedLogins counts consecutive failed password attempts.
	FailedLogins int `json:"-"`

	// LockedUntil is set when FailedLogins reached the lockout threshold.
	LockedUntil *time.Time `json:"-"`

	// PasswordChangedAt is stamped on registration and every password change.
	PasswordChangedAt time.Time `json:"-"`

	// CreatedAt is the registration time.
	CreatedAt time.Time `json:"createdAt"`
}

// IsLocked reports whether the account is locked at the given moment.
func (u User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// Identity returns the public identity of the user carried by sessions.
func (u User) Identity(rememberMe bool) Identity {
	return Identity{
		UserID:     u.UserID,
		Email:      u.Email,
		Name:       u.Name,
		Username:   u.Username,
		Role:       u.Role,
		RememberMe: rememberMe,
	}
}

// Identity is the result of a successful credential verification.
type Identity struct {
	UserID     int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	Role       Role   `json:"role"`
	RememberMe bool   `json:"rememberMe"`
}

// ProfileUpdate is a partial update of a user record. Only non-nil fields
// are written, all in one statement.
type ProfileUpdate struct {
	UserID int64

	Email    *string
	Username *string
	Name     *string

	// PasswordHash replaces the stored hash; PasswordChangedAt is written
	// with it and ignored otherwise.
	PasswordHash      *string
	PasswordChangedAt time.Time
}

// Empty reports whether the update carries no changes.
func (p ProfileUpdate) Empty() bool {
	return p.Email == nil && p.Username == nil && p.Name == nil && p.PasswordHash == nil
}

// LoginFailures is the lockout state after a failed attempt was recorded.
type LoginFailures struct {
	FailedLogins int
	LockedUntil  *time.Time
}

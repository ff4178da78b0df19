// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OneTimeToken is a persisted single-use token (password reset or email
// verification). Only the SHA-256 hash of the raw value is ever stored.
type OneTimeToken struct {
	// ID is the database identifier of the token row.
	ID int64 `json:"-"`

	// TokenHash is the hex-encoded SHA-256 of the raw token.
	TokenHash string `json:"-"`

	// UserID is the owner of the token.
	UserID int64 `json:"user_id"`

	// Expires is the moment after which the token is no longer valid.
	Expires time.Time `json:"expires"`

	// UsedAt is set when the token was redeemed.
	UsedAt *time.Time `json:"used_at,omitempty"`
}

// Usable reports whether the token can still be redeemed at the given moment.
func (t OneTimeToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.Expires)
}

// IssuedToken is what the owner of a freshly created token receives.
// RawToken is delivered by email and never persisted.
type IssuedToken struct {
	RawToken  string
	ExpiresAt time.Time
}

// PasswordRedemption describes the atomic unit that consumes a reset token
// and replaces the owner's password.
type PasswordRedemption struct {
	TokenID      int64
	UserID       int64
	PasswordHash string

	// Now is used both as the redemption timestamp and as the expiry
	// boundary checked inside the transaction.
	Now time.Time
}

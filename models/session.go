// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of the signed, client-held session token.
//
// RoleSyncedAt and LastActivity are epoch milliseconds. LastActivity drives
// the idle timeout; RoleSyncedAt bounds how long Email, Name, Username and
// Role may be served without re-reading the user record.
type SessionClaims struct {
	jwt.RegisteredClaims

	UserID       int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Role         Role   `json:"role"`
	RememberMe   bool   `json:"rememberMe"`
	RoleSyncedAt int64  `json:"roleSyncedAt"`
	LastActivity int64  `json:"lastActivity"`
}

// Identity returns the identity carried by the claims.
func (c SessionClaims) Identity() Identity {
	return Identity{
		UserID:     c.UserID,
		Email:      c.Email,
		Name:       c.Name,
		Username:   c.Username,
		Role:       c.Role,
		RememberMe: c.RememberMe,
	}
}

// SubjectID returns the "sub" claim value for the user.
func (c SessionClaims) SubjectID() string {
	return strconv.FormatInt(c.UserID, 10)
}

// LastActivityTime converts LastActivity to a time.Time.
func (c SessionClaims) LastActivityTime() time.Time {
	return time.UnixMilli(c.LastActivity).UTC()
}

// RoleSyncedTime converts RoleSyncedAt to a time.Time.
func (c SessionClaims) RoleSyncedTime() time.Time {
	return time.UnixMilli(c.RoleSyncedAt).UTC()
}

// Session is a minted or refreshed session token.
type Session struct {
	// Token is the compact JWS form stored in the session cookie.
	Token string

	// Claims is the decoded payload of Token.
	Claims SessionClaims

	// ExpiresAt is the idle deadline: LastActivity plus the idle limit.
	ExpiresAt time.Time
}

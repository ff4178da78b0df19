package models

import "time"

// SessionResponse is returned by a successful login and by GET /auth/session.
// The token itself travels only in the session cookie.
type SessionResponse struct {
	User      Identity  `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries a user-facing error message. Email is filled only
// for the "verify your email" outcome so the UI can offer a resend action.
type ErrorResponse struct {
	Error string `json:"error"`
	Email string `json:"email,omitempty"`
}

// VersionResponse is returned by GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

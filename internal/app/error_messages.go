// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the user-facing message strings of the dashboard
// server. Handlers write them into response bodies; internal failure detail
// stays in the logs.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails validation.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidCredentials covers unknown identifiers, wrong passwords and
	// locked accounts with one wording.
	MsgInvalidCredentials = "invalid email/username or password"

	// MsgTooManyAttempts is returned when the login rate limit is exhausted.
	// It never discloses the window or the remaining budget.
	MsgTooManyAttempts = "too many login attempts, please try again later"

	// MsgEmailNotVerified is returned together with the pending address.
	MsgEmailNotVerified = "please verify your email address before signing in"

	// MsgTokenInvalid covers missing, expired and already used tokens.
	MsgTokenInvalid = "this link is invalid or has expired"

	MsgSessionExpired = "session expired, please sign in again"

	// MsgTryAgainLater is returned for store and delivery failures.
	MsgTryAgainLater = "something went wrong, please try again later"

	MsgEmailTaken    = "email is already registered"
	MsgUsernameTaken = "username is already taken"
	MsgWrongPassword = "current password is incorrect"

	MsgCityNotFound       = "city not found"
	MsgWeatherUnavailable = "weather is unavailable right now"

	MsgServiceUnavailable = "service unavailable"
)

const (
	// MsgPasswordResetRequested is the only answer to a forgot-password
	// request, whether or not the account exists.
	MsgPasswordResetRequested = "if an account exists, a password reset link has been sent"

	MsgPasswordResetDone = "password has been reset, you can sign in now"

	MsgRegistered = "account created, check your inbox to verify your email"

	MsgVerificationResent = "if the address is awaiting verification, a new link has been sent"

	MsgEmailVerified = "email verified, you can sign in now"

	MsgSignedOut = "signed out"
)

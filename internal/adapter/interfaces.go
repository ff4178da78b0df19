// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides clients for the third-party HTTP APIs the
// dashboard depends on: the transactional email API and the weather API.
//
// Non-2xx responses are mapped by mapHTTPError to the sentinel values in
// errors.go so callers can use [errors.Is] without knowing the transport.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-dashboard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Template keys accepted by [Mailer.SendEmail].
const (
	TemplatePasswordReset = "password-reset"
	TemplateVerifyEmail   = "verify-email"
)

// Mailer delivers transactional emails.
type Mailer interface {
	// SendEmail renders the template registered under subjectKey with data
	// and sends it to the recipient. Any failure is wrapped in
	// [ErrDeliveryFailed].
	SendEmail(ctx context.Context, to, subjectKey string, data EmailData) error
}

// WeatherProvider returns current conditions for a city.
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, city string) (models.Weather, error)
}

// EmailData is the template payload of a transactional email.
type EmailData struct {
	Name      string
	Link      string
	ExpiresIn string
}

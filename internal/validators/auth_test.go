// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-dashboard/models"
)

func ptr(s string) *string { return &s }

func validRegister() models.RegisterRequest {
	return models.RegisterRequest{
		Email:           "alice@example.com",
		Username:        "alice",
		Name:            "Alice",
		Password:        "s3cretpass",
		ConfirmPassword: "s3cretpass",
	}
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	reg := validRegister()
	assert.NoError(t, v.Validate(ctx, reg))
	assert.NoError(t, v.Validate(ctx, &reg))
	assert.NoError(t, v.Validate(ctx, models.LoginRequest{Identifier: "alice", Password: "x"}))
	assert.NoError(t, v.Validate(ctx, models.ForgotPasswordRequest{Identifier: "alice"}))
	assert.NoError(t, v.Validate(ctx, models.VerifyEmailRequest{Token: "abc"}))
	assert.NoError(t, v.Validate(ctx, models.ResendVerificationRequest{Email: "a@b.co"}))
	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
}

func TestValidateLogin(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Identifier: "  ", Password: "x"}), ErrEmptyIdentifier)
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{Identifier: "alice"}), ErrEmptyPassword)
	// legacy short passwords are still accepted at login
	assert.NoError(t, v.Validate(ctx, models.LoginRequest{Identifier: "alice", Password: "abc"}))
	assert.ErrorIs(t, v.Validate(ctx, models.LoginRequest{}, "bogus"), ErrUnknownField)
}

func TestValidateRegister(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *models.RegisterRequest)
		want   error
	}{
		{name: "valid", modify: func(r *models.RegisterRequest) {}},
		{name: "bad email", modify: func(r *models.RegisterRequest) { r.Email = "not-an-email" }, want: ErrInvalidEmail},
		{name: "display name in email", modify: func(r *models.RegisterRequest) { r.Email = "Alice <alice@example.com>" }, want: ErrInvalidEmail},
		{name: "short username", modify: func(r *models.RegisterRequest) { r.Username = "al" }, want: ErrInvalidUsername},
		{name: "username with at", modify: func(r *models.RegisterRequest) { r.Username = "al@ce" }, want: ErrInvalidUsername},
		{name: "long name", modify: func(r *models.RegisterRequest) { r.Name = strings.Repeat("n", 101) }, want: ErrInvalidName},
		{name: "short password", modify: func(r *models.RegisterRequest) { r.Password, r.ConfirmPassword = "a1", "a1" }, want: ErrWeakPassword},
		{name: "no digit", modify: func(r *models.RegisterRequest) { r.Password, r.ConfirmPassword = "password", "password" }, want: ErrWeakPassword},
		{name: "too long", modify: func(r *models.RegisterRequest) {
			r.Password = strings.Repeat("a1", 37)
			r.ConfirmPassword = r.Password
		}, want: ErrWeakPassword},
		{name: "mismatch", modify: func(r *models.RegisterRequest) { r.ConfirmPassword = "other1234" }, want: ErrPasswordsDoNotMatch},
	}

	v := NewAuthValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.modify(&req)

			err := v.Validate(context.Background(), req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateResetPassword(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.ResetPasswordRequest{Token: "t", Password: "n3wpassword", ConfirmPassword: "n3wpassword"}))
	assert.ErrorIs(t, v.Validate(ctx, models.ResetPasswordRequest{Password: "n3wpassword", ConfirmPassword: "n3wpassword"}), ErrEmptyToken)
	assert.ErrorIs(t, v.Validate(ctx, models.ResetPasswordRequest{Token: "t", Password: "n3wpassword", ConfirmPassword: "x"}), ErrPasswordsDoNotMatch)
}

func TestValidateAccountUpdate(t *testing.T) {
	tests := []struct {
		name string
		req  models.AccountUpdateRequest
		want error
	}{
		{name: "empty", req: models.AccountUpdateRequest{}, want: ErrNoFieldsToUpdate},
		{name: "profile only", req: models.AccountUpdateRequest{Name: ptr("Alice B")}},
		{name: "bad email", req: models.AccountUpdateRequest{Email: ptr("nope")}, want: ErrInvalidEmail},
		{name: "password only", req: models.AccountUpdateRequest{PasswordChange: &models.PasswordChange{
			CurrentPassword: "old", NewPassword: "n3wpassword", ConfirmPassword: "n3wpassword",
		}}},
		{name: "password without current", req: models.AccountUpdateRequest{PasswordChange: &models.PasswordChange{
			NewPassword: "n3wpassword", ConfirmPassword: "n3wpassword",
		}}, want: ErrCurrentPasswordNeeded},
		{name: "weak new password", req: models.AccountUpdateRequest{PasswordChange: &models.PasswordChange{
			CurrentPassword: "old", NewPassword: "short", ConfirmPassword: "short",
		}}, want: ErrWeakPassword},
		{name: "profile and password mismatch", req: models.AccountUpdateRequest{
			Username: ptr("alice_b"),
			PasswordChange: &models.PasswordChange{
				CurrentPassword: "old", NewPassword: "n3wpassword", ConfirmPassword: "n3wpasswerd",
			},
		}, want: ErrPasswordsDoNotMatch},
	}

	v := NewAuthValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), &tt.req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

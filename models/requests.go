package models

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	// Identifier is either an email address or a username.
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ForgotPasswordRequest is the body of POST /auth/forgot-password.
type ForgotPasswordRequest struct {
	Identifier string `json:"identifier"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password.
type ResetPasswordRequest struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// VerifyEmailRequest is the body of POST /auth/verify-email.
type VerifyEmailRequest struct {
	Token string `json:"token"`
}

// ResendVerificationRequest is the body of POST /auth/resend-verification.
type ResendVerificationRequest struct {
	Email string `json:"email"`
}

// AccountUpdateRequest is the body of PATCH /dashboard/account.
//
// Profile fields are optional; PasswordChange is present only when the
// caller wants to replace the password. The whole request is validated
// as one schema.
type AccountUpdateRequest struct {
	Email          *string         `json:"email,omitempty"`
	Username       *string         `json:"username,omitempty"`
	Name           *string         `json:"name,omitempty"`
	PasswordChange *PasswordChange `json:"passwordChange,omitempty"`
}

// PasswordChange is the optional password part of AccountUpdateRequest.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

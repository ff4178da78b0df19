package validators

import (
	"context"
	"net/mail"
	"regexp"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-dashboard/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	FieldIdentifier      = "identifier"
	FieldEmail           = "email"
	FieldUsername        = "username"
	FieldName            = "name"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldToken           = "token"
	FieldPasswordChange  = "password_change"
	FieldAnyUpdate       = "any_update"
)

const (
	maxEmailLength    = 254
	maxNameLength     = 100
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes
	maxPasswordLength = 72
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.\-]{3,32}$`)

// AuthValidator implements [Validator] for the authentication and account
// request bodies.
type AuthValidator struct{}

// NewAuthValidator constructs an [AuthValidator].
func NewAuthValidator() Validator {
	return &AuthValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted. Returns ErrUnsupportedType for unknown types.
func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.ForgotPasswordRequest:
		return v.validateIdentifier(value.Identifier)
	case *models.ForgotPasswordRequest:
		return v.validateIdentifier(value.Identifier)

	case models.ResetPasswordRequest:
		return v.validateResetPassword(value, fields...)
	case *models.ResetPasswordRequest:
		return v.validateResetPassword(*value, fields...)

	case models.VerifyEmailRequest:
		return validateToken(value.Token)
	case *models.VerifyEmailRequest:
		return validateToken(value.Token)

	case models.ResendVerificationRequest:
		return validateEmail(value.Email)
	case *models.ResendVerificationRequest:
		return validateEmail(value.Email)

	case models.AccountUpdateRequest:
		return v.validateAccountUpdate(value, fields...)
	case *models.AccountUpdateRequest:
		return v.validateAccountUpdate(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateIdentifier(identifier string) error {
	if strings.TrimSpace(identifier) == "" {
		return ErrEmptyIdentifier
	}
	return nil
}

// validateLogin checks presence only. Password policy is not applied to
// login so that accounts created under an older policy can still sign in.
func (v *AuthValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldIdentifier, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldIdentifier:
			if err := v.validateIdentifier(req.Identifier); err != nil {
				return err
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AuthValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldUsername, FieldName, FieldPassword, FieldConfirmPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldEmail:
			err = validateEmail(req.Email)
		case FieldUsername:
			err = validateUsername(req.Username)
		case FieldName:
			err = validateName(req.Name)
		case FieldPassword:
			err = validatePassword(req.Password)
		case FieldConfirmPassword:
			if req.Password != req.ConfirmPassword {
				err = ErrPasswordsDoNotMatch
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (v *AuthValidator) validateResetPassword(req models.ResetPasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldToken, FieldPassword, FieldConfirmPassword}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldToken:
			err = validateToken(req.Token)
		case FieldPassword:
			err = validatePassword(req.Password)
		case FieldConfirmPassword:
			if req.Password != req.ConfirmPassword {
				err = ErrPasswordsDoNotMatch
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// validateAccountUpdate validates the profile fields and, when present, the
// password change payload as one schema.
func (v *AuthValidator) validateAccountUpdate(req models.AccountUpdateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAnyUpdate, FieldEmail, FieldUsername, FieldName, FieldPasswordChange}
	}

	for _, f := range fields {
		var err error
		switch f {
		case FieldAnyUpdate:
			if req.Email == nil && req.Username == nil && req.Name == nil && req.PasswordChange == nil {
				err = ErrNoFieldsToUpdate
			}
		case FieldEmail:
			if req.Email != nil {
				err = validateEmail(*req.Email)
			}
		case FieldUsername:
			if req.Username != nil {
				err = validateUsername(*req.Username)
			}
		case FieldName:
			if req.Name != nil {
				err = validateName(*req.Name)
			}
		case FieldPasswordChange:
			if req.PasswordChange != nil {
				err = validatePasswordChange(*req.PasswordChange)
			}
		default:
			err = ErrUnknownField
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func validatePasswordChange(change models.PasswordChange) error {
	if change.CurrentPassword == "" {
		return ErrCurrentPasswordNeeded
	}
	if err := validatePassword(change.NewPassword); err != nil {
		return err
	}
	if change.NewPassword != change.ConfirmPassword {
		return ErrPasswordsDoNotMatch
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" || len(email) > maxEmailLength {
		return ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return ErrInvalidEmail
	}

	return nil
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(strings.TrimSpace(username)) {
		return ErrInvalidUsername
	}
	return nil
}

func validateName(name string) error {
	if len([]rune(strings.TrimSpace(name))) > maxNameLength {
		return ErrInvalidName
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return ErrWeakPassword
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrWeakPassword
	}

	return nil
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}
	return nil
}

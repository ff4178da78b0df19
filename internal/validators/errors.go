package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyIdentifier       = errors.New("email or username is required")
	ErrEmptyPassword         = errors.New("password is required")
	ErrInvalidEmail          = errors.New("invalid email address")
	ErrInvalidUsername       = errors.New("username must be 3-32 letters, digits, dots, dashes or underscores")
	ErrInvalidName           = errors.New("name is too long")
	ErrWeakPassword          = errors.New("password must be 8-72 characters and contain a letter and a digit")
	ErrPasswordsDoNotMatch   = errors.New("passwords do not match")
	ErrEmptyToken            = errors.New("token is required")
	ErrNoFieldsToUpdate      = errors.New("at least one field must be provided for update")
	ErrCurrentPasswordNeeded = errors.New("current password is required")
)

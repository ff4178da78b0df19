package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-dashboard/models"
)

const (
	usersTable              = "users"
	passwordResetTable      = "password_reset_tokens"
	emailVerificationsTable = "email_verification_tokens"
)

var userColumns = []string{
	"id",
	"email",
	"username",
	"name",
	"password_hash",
	"role",
	"email_verified",
	"failed_logins",
	"locked_until",
	"password_changed_at",
	"created_at",
}

var tokenColumns = []string{
	"id",
	"token_hash",
	"user_id",
	"expires",
	"used_at",
}

// lockOnThreshold arms locked_until when the incremented counter reaches
// the threshold. Arguments: threshold, lock deadline.
const lockOnThreshold = "CASE WHEN failed_logins + 1 >= ? THEN ? ELSE locked_until END"

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// dbTime scans a nullable timestamp from either driver. pgx yields
// time.Time; sqlite may hand back text for columns without a declared type.
type dbTime struct {
	Time  time.Time
	Valid bool
}

// Scan implements sql.Scanner.
func (t *dbTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		t.Time, t.Valid = time.Time{}, false
		return nil
	case time.Time:
		t.Time, t.Valid = v.UTC(), true
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("unsupported time value %T", value)
	}
}

func (t *dbTime) parse(s string) error {
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time, t.Valid = parsed.UTC(), true
			return nil
		}
	}
	return fmt.Errorf("cannot parse time %q", s)
}

// Ptr returns nil for NULL.
func (t dbTime) Ptr() *time.Time {
	if !t.Valid {
		return nil
	}
	tm := t.Time
	return &tm
}

// nullTime converts an optional timestamp into a driver value.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user              models.User
		role              string
		emailVerified     dbTime
		lockedUntil       dbTime
		passwordChangedAt dbTime
		createdAt         dbTime
	)

	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.Username,
		&user.Name,
		&user.PasswordHash,
		&role,
		&emailVerified,
		&user.FailedLogins,
		&lockedUntil,
		&passwordChangedAt,
		&createdAt,
	)
	if err != nil {
		return models.User{}, err
	}

	user.Role = models.Role(role)
	user.EmailVerified = emailVerified.Ptr()
	user.LockedUntil = lockedUntil.Ptr()
	user.PasswordChangedAt = passwordChangedAt.Time
	user.CreatedAt = createdAt.Time

	return user, nil
}

func scanToken(row rowScanner) (models.OneTimeToken, error) {
	var (
		token   models.OneTimeToken
		expires dbTime
		usedAt  dbTime
	)

	if err := row.Scan(&token.ID, &token.TokenHash, &token.UserID, &expires, &usedAt); err != nil {
		return models.OneTimeToken{}, err
	}

	token.Expires = expires.Time
	token.UsedAt = usedAt.Ptr()

	return token, nil
}

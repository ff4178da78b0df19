package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-dashboard/internal/store"
	"github.com/MKhiriev/go-dashboard/internal/utils"
	"github.com/MKhiriev/go-dashboard/models"
)

// normalizeEmail trims and lowercases an address.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// findUserByIdentifier treats identifiers containing "@" as email
// addresses and everything else as usernames.
func findUserByIdentifier(ctx context.Context, users store.UserRepository, identifier string) (models.User, error) {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return users.FindUserByEmail(ctx, normalizeEmail(identifier))
	}
	return users.FindUserByUsername(ctx, identifier)
}

// newOneTimeToken generates a raw token and the record that stores its hash.
func newOneTimeToken(userID int64, now time.Time, ttl time.Duration) (models.IssuedToken, models.OneTimeToken, error) {
	raw, err := utils.GenerateRawToken()
	if err != nil {
		return models.IssuedToken{}, models.OneTimeToken{}, fmt.Errorf("error generating token: %w", err)
	}

	expires := now.Add(ttl).UTC()
	return models.IssuedToken{RawToken: raw, ExpiresAt: expires},
		models.OneTimeToken{TokenHash: utils.HashToken(raw), UserID: userID, Expires: expires},
		nil
}

// humanDuration renders ttl for email bodies ("30 minutes", "24 hours").
func humanDuration(ttl time.Duration) string {
	switch {
	case ttl >= time.Hour && ttl%time.Hour == 0:
		if ttl == time.Hour {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", int(ttl/time.Hour))
	case ttl >= time.Minute:
		if ttl < 2*time.Minute {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", int(ttl/time.Minute))
	default:
		return ttl.String()
	}
}

// link joins the public base URL, a path and a token query parameter.
func link(baseURL, path, token string) string {
	return strings.TrimRight(baseURL, "/") + path + "?token=" + token
}

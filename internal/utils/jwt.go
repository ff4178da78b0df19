package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-dashboard/models"
	"github.com/golang-jwt/jwt/v5"
)

// SignSessionToken signs the session claims with HMAC-SHA256.
//
// Example usage:
//
//	token, err := utils.SignSessionToken(claims, "secret")
func SignSessionToken(claims models.SessionClaims, signKey string) (string, error) {
	if signKey == "" {
		return "", errors.New("empty sign key")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return signed, nil
}

// ParseSessionToken verifies the signature, issuer and expiry of a session
// token and returns its claims. now is the clock used for the time based
// checks; a one second leeway absorbs the whole-second precision of exp.
func ParseSessionToken(tokenString, signKey, issuer string, now func() time.Time) (models.SessionClaims, error) {
	claims := models.SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(time.Second),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return models.SessionClaims{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.UserID == 0 {
		return models.SessionClaims{}, errors.New("session token without user id")
	}

	return claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer ..."
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

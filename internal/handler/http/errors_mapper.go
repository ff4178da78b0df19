package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-dashboard/internal/app"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/service"
	"github.com/MKhiriev/go-dashboard/internal/utils"
	"github.com/MKhiriev/go-dashboard/models"
)

// maxBodyBytes bounds every JSON request body.
const maxBodyBytes = 1 << 20

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorMappings is checked in order with errors.Is; anything unmatched is a
// 500 with the generic message.
var errorMappings = []errorMapping{
	{ErrInvalidJSON, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrNoSession, http.StatusUnauthorized, app.MsgSessionExpired},
	{service.ErrRateLimited, http.StatusTooManyRequests, app.MsgTooManyAttempts},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidCredentials},
	{service.ErrTokenInvalid, http.StatusBadRequest, app.MsgTokenInvalid},
	{service.ErrSessionExpired, http.StatusUnauthorized, app.MsgSessionExpired},
	{service.ErrWrongPassword, http.StatusBadRequest, app.MsgWrongPassword},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrEmailTaken, http.StatusConflict, app.MsgEmailTaken},
	{service.ErrUsernameTaken, http.StatusConflict, app.MsgUsernameTaken},
	{service.ErrCityNotFound, http.StatusNotFound, app.MsgCityNotFound},
	{service.ErrWeatherUnavailable, http.StatusBadGateway, app.MsgWeatherUnavailable},
	{service.ErrUnhealthy, http.StatusServiceUnavailable, app.MsgServiceUnavailable},
	{service.ErrDeliveryFailed, http.StatusInternalServerError, app.MsgTryAgainLater},
}

func statusFromError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, app.MsgTryAgainLater
}

// writeError maps err to a status and a user-facing message. Server-side
// failures are logged with their full chain; the body never carries it.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	var notVerified *service.EmailNotVerifiedError
	if errors.As(err, &notVerified) {
		log.Info().Msg("sign in blocked until email is verified")
		utils.WriteJSON(w, models.ErrorResponse{Error: app.MsgEmailNotVerified, Email: notVerified.Email}, http.StatusForbidden)
		return
	}

	status, message := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	utils.WriteJSON(w, models.ErrorResponse{Error: message}, status)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

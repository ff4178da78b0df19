package http

import (
	"net/http"

	"github.com/MKhiriev/go-dashboard/internal/utils"
	"github.com/MKhiriev/go-dashboard/models"
)

// dashboard is the landing endpoint of the protected area.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoSession)
		return
	}

	resp := models.SessionResponse{User: claims.Identity()}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.UTC()
	}
	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoSession)
		return
	}

	user, err := h.services.AccountService.GetAccount(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoSession)
		return
	}

	var req models.AccountUpdateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.AccountService.UpdateAccount(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) weather(w http.ResponseWriter, r *http.Request) {
	weather, err := h.services.WeatherService.CurrentWeather(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, weather, http.StatusOK)
}

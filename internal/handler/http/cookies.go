package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-dashboard/internal/utils"
	"github.com/MKhiriev/go-dashboard/models"
)

const sessionCookieName = "dashboard_session"

// setSessionCookie writes the session token. Without "remember me" the
// cookie has no Expires and ends with the browser session; either way the
// token's own exp enforces the idle limit.
func (h *Handler) setSessionCookie(w http.ResponseWriter, session models.Session) {
	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	if session.Claims.RememberMe {
		cookie.Expires = session.ExpiresAt
	}
	http.SetCookie(w, cookie)
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionToken reads the session cookie, falling back to an
// "Authorization: Bearer" header for API clients.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if header := r.Header.Get("Authorization"); strings.TrimSpace(header) != "" {
		if token, err := utils.ParseBearerToken(header); err == nil {
			return token
		}
	}

	return ""
}

package http

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/service"
	"github.com/MKhiriev/go-dashboard/internal/utils"
)

// guard refreshes the session on every request and keeps anonymous users
// out of the protected area and signed-in users off the auth pages.
//
// A valid session is stored in the request context and its refreshed token
// is written back as the cookie. An expired or invalid token clears the
// cookie and the request continues as anonymous. OPTIONS and HEAD requests
// pass through untouched.
func (h *Handler) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions || r.Method == http.MethodHead {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		signedIn := false
		if token := sessionToken(r); token != "" {
			session, err := h.services.SessionService.Refresh(r.Context(), token)
			switch {
			case err == nil:
				signedIn = true
				userID := session.Claims.UserID
				zerolog.Ctx(r.Context()).UpdateContext(func(c zerolog.Context) zerolog.Context {
					return c.Int64("user_id", userID)
				})
				h.setSessionCookie(w, session)
				r = r.WithContext(utils.WithSession(r.Context(), session.Claims))
			case errors.Is(err, service.ErrSessionExpired):
				log.Debug().Str("path", r.URL.Path).Msg("session expired or invalid")
				h.clearSessionCookie(w)
			default:
				writeError(w, r, err)
				return
			}
		}

		switch {
		case !signedIn && isProtectedPath(r.URL.Path):
			target := signInPath + "?callbackUrl=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		case signedIn && isAuthPage(r.URL.Path) && isPageGET(r):
			http.Redirect(w, r, landingPath, http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func isProtectedPath(path string) bool {
	return path == protectedPrefix || strings.HasPrefix(path, protectedPrefix+"/")
}

func isAuthPage(path string) bool {
	path = strings.TrimSuffix(path, "/")
	return path == signInPath || path == signUpPath
}

// isPageGET reports whether r is a browser navigation: a GET whose Accept
// header is empty or asks for HTML.
func isPageGET(r *http.Request) bool {
	if r.Method != http.MethodGet {
		return false
	}
	accept := r.Header.Get("Accept")
	return accept == "" || strings.Contains(accept, "text/html")
}

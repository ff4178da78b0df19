package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/mock"
	"github.com/MKhiriev/go-dashboard/internal/service"
	"github.com/MKhiriev/go-dashboard/models"
)

// testServices holds the mocks behind a Handler built by newTestHandler.
type testServices struct {
	auth     *mock.MockAuthService
	sessions *mock.MockSessionService
	reset    *mock.MockPasswordResetService
	account  *mock.MockAccountService
	weather  *mock.MockWeatherService
	appInfo  *mock.MockAppInfoService
}

func newTestHandler(t *testing.T) (*Handler, *testServices) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := &testServices{
		auth:     mock.NewMockAuthService(ctrl),
		sessions: mock.NewMockSessionService(ctrl),
		reset:    mock.NewMockPasswordResetService(ctrl),
		account:  mock.NewMockAccountService(ctrl),
		weather:  mock.NewMockWeatherService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}

	services := &service.Services{
		AuthService:          mocks.auth,
		SessionService:       mocks.sessions,
		PasswordResetService: mocks.reset,
		AccountService:       mocks.account,
		WeatherService:       mocks.weather,
		AppInfoService:       mocks.appInfo,
	}

	return NewHandler(services, config.StructuredConfig{App: config.App{SecureCookies: true}}, logger.Nop()), mocks
}

var testExpiry = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

func testSession(token string, rememberMe bool) models.Session {
	return models.Session{
		Token: token,
		Claims: models.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(testExpiry)},
			UserID:           7,
			Email:            "ada@example.com",
			Name:             "Ada Lovelace",
			Username:         "Ada",
			Role:             models.RoleStandard,
			RememberMe:       rememberMe,
		},
		ExpiresAt: testExpiry,
	}
}

// serve runs a request through the full router.
func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

func jsonRequest(method, target, body string) *http.Request {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req
}

func withSessionCookie(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	return req
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func findCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

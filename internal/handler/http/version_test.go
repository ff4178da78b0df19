package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-dashboard/internal/service"
	"github.com/MKhiriev/go-dashboard/models"
)

func TestGetServerVersion(t *testing.T) {
	h, mocks := newTestHandler(t)
	want := models.VersionResponse{Version: "1.2.3", Commit: "abc1234", Date: "2026-03-01"}
	mocks.appInfo.EXPECT().BuildInfo(gomock.Any()).Return(want)

	rr := serve(h, jsonRequest(http.MethodGet, "/api/version", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, want, decodeBody[models.VersionResponse](t, rr))
}

func TestHealthz(t *testing.T) {
	h, mocks := newTestHandler(t)
	mocks.appInfo.EXPECT().Health(gomock.Any()).Return(nil)

	rr := serve(h, jsonRequest(http.MethodGet, "/healthz", ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestHealthz_Unhealthy(t *testing.T) {
	h, mocks := newTestHandler(t)
	mocks.appInfo.EXPECT().Health(gomock.Any()).Return(service.ErrUnhealthy)

	rr := serve(h, jsonRequest(http.MethodGet, "/healthz", ""))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

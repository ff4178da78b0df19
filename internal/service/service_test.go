package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/mock"
	"github.com/MKhiriev/go-dashboard/internal/utils"
	"github.com/MKhiriev/go-dashboard/internal/validators"
	"github.com/MKhiriev/go-dashboard/models"
)

const (
	testPassword = "correct-horse1"
	testBaseURL  = "https://dash.test"
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{
			TokenSignKey: "test-sign-key",
			TokenIssuer:  config.DefaultTokenIssuer,
			BcryptCost:   bcrypt.MinCost,
			BaseURL:      testBaseURL,
			Version:      "1.2.3",
		},
		Auth: config.Auth{
			LockoutThreshold:      config.DefaultLockoutThreshold,
			LockoutDuration:       config.DefaultLockoutDuration,
			IdleTimeout:           config.DefaultIdleTimeout,
			RememberMeIdleTimeout: config.DefaultRememberMeIdleTimeout,
			RoleSyncInterval:      config.DefaultRoleSyncInterval,
			ResetTokenTTL:         config.DefaultResetTokenTTL,
			VerificationTokenTTL:  config.DefaultVerificationTokenTTL,
		},
	}
}

func testUser(t *testing.T) models.User {
	t.Helper()

	hash, err := utils.HashPassword(testPassword, bcrypt.MinCost)
	require.NoError(t, err)

	verified := testEpoch.Add(-48 * time.Hour)
	return models.User{
		UserID:        7,
		Email:         "ada@example.com",
		Username:      "Ada",
		Name:          "Ada Lovelace",
		PasswordHash:  hash,
		Role:          models.RoleStandard,
		EmailVerified: &verified,
		CreatedAt:     testEpoch.Add(-72 * time.Hour),
	}
}

// authFixture wires the auth and session services to mocks and a fixed
// clock. Audit events are collected rather than asserted call by call.
type authFixture struct {
	svc      *authService
	sessions *sessionService

	users         *mock.MockUserRepository
	verifications *mock.MockVerificationTokenRepository
	limiter       *mock.MockLoginLimiter
	mailer        *mock.MockMailer
	audit         *mock.MockPublisher

	now    time.Time
	events []models.AuditEvent
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &authFixture{
		users:         mock.NewMockUserRepository(ctrl),
		verifications: mock.NewMockVerificationTokenRepository(ctrl),
		limiter:       mock.NewMockLoginLimiter(ctrl),
		mailer:        mock.NewMockMailer(ctrl),
		audit:         mock.NewMockPublisher(ctrl),
		now:           testEpoch,
	}
	clock := func() time.Time { return f.now }

	cfg := testConfig()
	sessions := NewSessionService(f.users, cfg, logger.Nop()).(*sessionService)
	sessions.now = clock

	svc, err := NewAuthService(f.users, f.verifications, f.limiter, sessions, f.mailer, f.audit, validators.NewAuthValidator(), cfg, logger.Nop())
	require.NoError(t, err)

	f.svc = svc.(*authService)
	f.svc.now = clock
	f.sessions = sessions

	f.audit.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(func(_ context.Context, event models.AuditEvent) {
		f.events = append(f.events, event)
	}).AnyTimes()

	return f
}

func (f *authFixture) eventTypes() []models.AuditEventType {
	types := make([]models.AuditEventType, 0, len(f.events))
	for _, e := range f.events {
		types = append(types, e.Type)
	}
	return types
}

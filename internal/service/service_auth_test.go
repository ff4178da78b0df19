package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-dashboard/internal/adapter"
	"github.com/MKhiriev/go-dashboard/internal/ratelimit"
	"github.com/MKhiriev/go-dashboard/internal/store"
	"github.com/MKhiriev/go-dashboard/internal/utils"
	"github.com/MKhiriev/go-dashboard/models"
)

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestLogin_RateLimited_DoesNotTouchStore(t *testing.T) {
	f := newAuthFixture(t)
	f.limiter.EXPECT().CheckLoginRateLimit(gomock.Any(), "10.0.0.1").
		Return(ratelimit.Result{Allowed: false, Limit: 5, ResetAt: f.now.Add(time.Minute)})

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Identifier: "ada", Password: testPassword}, "10.0.0.1")

	require.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, []models.AuditEventType{models.AuditLoginRateLimited}, f.eventTypes())
}

func TestLogin_Success_MintsSession(t *testing.T) {
	f := newAuthFixture(t)
	user := testUser(t)

	f.limiter.EXPECT().CheckLoginRateLimit(gomock.Any(), "10.0.0.1").Return(ratelimit.Result{Allowed: true, Limit: 5, Remaining: 4})
	f.users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").Return(user, nil)

	session, err := f.svc.Login(context.Background(), models.LoginRequest{
		Identifier: " ADA@example.com ",
		Password:   testPassword,
		RememberMe: true,
	}, "10.0.0.1")

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, user.Identity(true), session.Claims.Identity())
	assert.Equal(t, f.now.UnixMilli(), session.Claims.LastActivity)
	assert.Equal(t, f.now.UnixMilli(), session.Claims.RoleSyncedAt)
	assert.Equal(t, f.now.Add(24*time.Hour), session.ExpiresAt)
	assert.Contains(t, f.eventTypes(), models.AuditLoginSucceeded)
}

func TestLogin_MissingPassword_ReturnsInvalidData(t *testing.T) {
	f := newAuthFixture(t)
	f.limiter.EXPECT().CheckLoginRateLimit(gomock.Any(), gomock.Any()).Return(ratelimit.Result{Allowed: true})

	_, err := f.svc.Login(context.Background(), models.LoginRequest{Identifier: "ada"}, "10.0.0.1")

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// VerifyCredentials
// ─────────────────────────────────────────────

func TestNewAuthService_DummyHashUsesConfiguredCost(t *testing.T) {
	f := newAuthFixture(t)

	cost, err := bcrypt.Cost([]byte(f.svc.dummyHash))

	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestVerifyCredentials_UnknownIdentifier(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().FindUserByUsername(gomock.Any(), "nobody").Return(models.User{}, store.ErrNotFound)

	_, err := f.svc.VerifyCredentials(context.Background(), "nobody", testPassword, false)

	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, f.events, 1)
	assert.Equal(t, "unknown identifier", f.events[0].Reason)
}

func TestVerifyCredentials_WrongPassword_RecordsFailure(t *testing.T) {
	f := newAuthFixture(t)
	user := testUser(t)

	f.users.EXPECT().FindUserByUsername(gomock.Any(), "Ada").Return(user, nil)
	f.users.EXPECT().RecordFailedLogin(gomock.Any(), user.UserID, 10, f.now.Add(15*time.Minute)).
		Return(models.LoginFailures{FailedLogins: 1}, nil)

	_, err := f.svc.VerifyCredentials(context.Background(), "Ada", "wrong-password1", false)

	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, []models.AuditEventType{models.AuditLoginFailed}, f.eventTypes())
}

func TestVerifyCredentials_TenFailuresLockTheAccount(t *testing.T) {
	f := newAuthFixture(t)
	user := testUser(t)
	ctx := context.Background()

	f.users.EXPECT().FindUserByUsername(gomock.Any(), "Ada").DoAndReturn(
		func(context.Context, string) (models.User, error) { return user, nil },
	).Times(12)
	f.users.EXPECT().RecordFailedLogin(gomock.Any(), user.UserID, 10, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, threshold int, lockUntil time.Time) (models.LoginFailures, error) {
			user.FailedLogins++
			if user.FailedLogins >= threshold {
				user.LockedUntil = &lockUntil
			}
			return models.LoginFailures{FailedLogins: user.FailedLogins, LockedUntil: user.LockedUntil}, nil
		},
	).Times(10)

	for i := 0; i < 10; i++ {
		_, err := f.svc.VerifyCredentials(ctx, "Ada", "wrong-password1", false)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	require.NotNil(t, user.LockedUntil)
	assert.Equal(t, f.now.Add(15*time.Minute), *user.LockedUntil)
	assert.Contains(t, f.eventTypes(), models.AuditAccountLocked)

	// the correct password is rejected while locked and the attempt is not counted
	_, err := f.svc.VerifyCredentials(ctx, "Ada", testPassword, false)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, 10, user.FailedLogins)

	f.now = f.now.Add(16 * time.Minute)
	f.users.EXPECT().ResetLoginFailures(gomock.Any(), user.UserID).Return(nil)

	identity, err := f.svc.VerifyCredentials(ctx, "Ada", testPassword, false)
	require.NoError(t, err)
	assert.Equal(t, user.UserID, identity.UserID)
}

func TestVerifyCredentials_LockedAccount_SameErrorAsWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	user := testUser(t)
	lockedUntil := f.now.Add(time.Minute)
	user.FailedLogins = 10
	user.LockedUntil = &lockedUntil

	f.users.EXPECT().FindUserByUsername(gomock.Any(), "Ada").Return(user, nil).Times(2)

	_, errLockedRight := f.svc.VerifyCredentials(context.Background(), "Ada", testPassword, false)
	_, errLockedWrong := f.svc.VerifyCredentials(context.Background(), "Ada", "wrong-password1", false)

	require.ErrorIs(t, errLockedRight, ErrInvalidCredentials)
	assert.Equal(t, errLockedRight, errLockedWrong)
}

func TestVerifyCredentials_SuccessResetsCounters(t *testing.T) {
	f := newAuthFixture(t)
	user := testUser(t)
	user.FailedLogins = 3

	f.users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").Return(user, nil)
	f.users.EXPECT().ResetLoginFailures(gomock.Any(), user.UserID).Return(nil)

	identity, err := f.svc.VerifyCredentials(context.Background(), "ada@example.com", testPassword, true)

	require.NoError(t, err)
	assert.Equal(t, user.Identity(true), identity)
}

func TestVerifyCredentials_SuccessWithCleanCounters_NoWrite(t *testing.T) {
	f := newAuthFixture(t)
	user := testUser(t)

	f.users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").Return(user, nil)

	_, err := f.svc.VerifyCredentials(context.Background(), "ada@example.com", testPassword, false)

	require.NoError(t, err)
}

func TestVerifyCredentials_ResetFailure_ReturnsError(t *testing.T) {
	f := newAuthFixture(t)
	user := testUser(t)
	user.FailedLogins = 1

	f.users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").Return(user, nil)
	f.users.EXPECT().ResetLoginFailures(gomock.Any(), user.UserID).Return(errors.New("db down"))

	_, err := f.svc.VerifyCredentials(context.Background(), "ada@example.com", testPassword, false)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyCredentials_UnverifiedEmail_CountersUnchanged(t *testing.T) {
	f := newAuthFixture(t)
	user := testUser(t)
	user.EmailVerified = nil
	user.FailedLogins = 2

	f.users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").Return(user, nil)

	_, err := f.svc.VerifyCredentials(context.Background(), "ada@example.com", testPassword, false)

	require.ErrorIs(t, err, ErrEmailNotVerified)
	var notVerified *EmailNotVerifiedError
	require.ErrorAs(t, err, &notVerified)
	assert.Equal(t, "ada@example.com", notVerified.Email)
}

func TestVerifyCredentials_UnverifiedEmailWrongPassword_IsInvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	user := testUser(t)
	user.EmailVerified = nil

	f.users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").Return(user, nil)
	f.users.EXPECT().RecordFailedLogin(gomock.Any(), user.UserID, 10, gomock.Any()).Return(models.LoginFailures{FailedLogins: 1}, nil)

	_, err := f.svc.VerifyCredentials(context.Background(), "ada@example.com", "wrong-password1", false)

	require.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrEmailNotVerified)
}

func TestVerifyCredentials_StoreError_IsNotInvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().FindUserByUsername(gomock.Any(), "Ada").Return(models.User{}, errors.New("connection refused"))

	_, err := f.svc.VerifyCredentials(context.Background(), "Ada", testPassword, false)

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// ─────────────────────────────────────────────
// Register
// ─────────────────────────────────────────────

func validRegisterRequest() models.RegisterRequest {
	return models.RegisterRequest{
		Email:           "Ada@Example.com",
		Username:        "ada",
		Name:            "Ada Lovelace",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	}
}

func TestRegister_Success_SendsVerificationLink(t *testing.T) {
	f := newAuthFixture(t)

	var created models.User
	f.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			created = u
			u.UserID = 7
			return u, nil
		})

	var stored models.OneTimeToken
	f.verifications.EXPECT().CreateVerificationToken(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, token models.OneTimeToken) (models.OneTimeToken, error) {
			stored = token
			token.ID = 1
			return token, nil
		})

	var sent adapter.EmailData
	f.mailer.EXPECT().SendEmail(gomock.Any(), "ada@example.com", adapter.TemplateVerifyEmail, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, data adapter.EmailData) error {
			sent = data
			return nil
		})

	user, err := f.svc.Register(context.Background(), validRegisterRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
	assert.Equal(t, "ada@example.com", created.Email)
	assert.Equal(t, models.RoleStandard, created.Role)
	assert.Nil(t, created.EmailVerified)

	match, err := utils.CheckPassword(created.PasswordHash, testPassword)
	require.NoError(t, err)
	assert.True(t, match)

	prefix := testBaseURL + "/auth/verify-email?token="
	require.True(t, strings.HasPrefix(sent.Link, prefix))
	raw := strings.TrimPrefix(sent.Link, prefix)
	assert.Equal(t, utils.HashToken(raw), stored.TokenHash)
	assert.NotEqual(t, raw, stored.TokenHash)
	assert.Equal(t, int64(7), stored.UserID)
	assert.Equal(t, f.now.Add(24*time.Hour), stored.Expires)
	assert.Equal(t, "24 hours", sent.ExpiresIn)
}

func TestRegister_EmailTaken(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{}, store.ErrEmailTaken)

	_, err := f.svc.Register(context.Background(), validRegisterRequest())

	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegister_PasswordsDoNotMatch(t *testing.T) {
	f := newAuthFixture(t)
	req := validRegisterRequest()
	req.ConfirmPassword = "other-horse2"

	_, err := f.svc.Register(context.Background(), req)

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestRegister_MailFailure_ReturnsDeliveryFailed(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(models.User{UserID: 7, Email: "ada@example.com"}, nil)
	f.verifications.EXPECT().CreateVerificationToken(gomock.Any(), gomock.Any()).Return(models.OneTimeToken{ID: 1}, nil)
	f.mailer.EXPECT().SendEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(adapter.ErrDeliveryFailed)

	user, err := f.svc.Register(context.Background(), validRegisterRequest())

	require.ErrorIs(t, err, ErrDeliveryFailed)
	assert.Equal(t, int64(7), user.UserID)
}

// ─────────────────────────────────────────────
// VerifyEmail / ResendVerification
// ─────────────────────────────────────────────

func TestVerifyEmail_Success(t *testing.T) {
	f := newAuthFixture(t)
	f.verifications.EXPECT().RedeemVerificationToken(gomock.Any(), utils.HashToken("raw-token"), f.now).Return(int64(7), nil)

	err := f.svc.VerifyEmail(context.Background(), models.VerifyEmailRequest{Token: "raw-token"})

	require.NoError(t, err)
	assert.Equal(t, []models.AuditEventType{models.AuditEmailVerified}, f.eventTypes())
}

func TestVerifyEmail_RejectedTokens(t *testing.T) {
	for _, storeErr := range []error{store.ErrNotFound, store.ErrTokenAlreadyUsed, store.ErrTokenExpired} {
		t.Run(storeErr.Error(), func(t *testing.T) {
			f := newAuthFixture(t)
			f.verifications.EXPECT().RedeemVerificationToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), storeErr)

			err := f.svc.VerifyEmail(context.Background(), models.VerifyEmailRequest{Token: "raw-token"})

			require.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestVerifyEmail_EmptyToken(t *testing.T) {
	f := newAuthFixture(t)

	err := f.svc.VerifyEmail(context.Background(), models.VerifyEmailRequest{Token: "  "})

	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestResendVerification_UnknownEmail_ReturnsNil(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().FindUserByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, store.ErrNotFound)

	err := f.svc.ResendVerification(context.Background(), models.ResendVerificationRequest{Email: "ghost@example.com"})

	require.NoError(t, err)
}

func TestResendVerification_AlreadyVerified_NoMail(t *testing.T) {
	f := newAuthFixture(t)
	f.users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").Return(testUser(t), nil)

	err := f.svc.ResendVerification(context.Background(), models.ResendVerificationRequest{Email: "ada@example.com"})

	require.NoError(t, err)
}

func TestResendVerification_Unverified_SendsMail(t *testing.T) {
	f := newAuthFixture(t)
	user := testUser(t)
	user.EmailVerified = nil

	f.users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").Return(user, nil)
	f.verifications.EXPECT().CreateVerificationToken(gomock.Any(), gomock.Any()).Return(models.OneTimeToken{ID: 2}, nil)
	f.mailer.EXPECT().SendEmail(gomock.Any(), "ada@example.com", adapter.TemplateVerifyEmail, gomock.Any()).Return(errors.New("smtp down"))

	err := f.svc.ResendVerification(context.Background(), models.ResendVerificationRequest{Email: "ada@example.com"})

	require.NoError(t, err)
}

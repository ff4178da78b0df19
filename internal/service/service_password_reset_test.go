package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-dashboard/internal/adapter"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/mock"
	"github.com/MKhiriev/go-dashboard/internal/store"
	"github.com/MKhiriev/go-dashboard/internal/utils"
	"github.com/MKhiriev/go-dashboard/internal/validators"
	"github.com/MKhiriev/go-dashboard/models"
)

// memResetTokens is an in-memory PasswordResetRepository with the same
// replace and single-use semantics as the SQL one.
type memResetTokens struct {
	mu       sync.Mutex
	nextID   int64
	tokens   map[int64]models.OneTimeToken
	password map[int64]string
}

func newMemResetTokens() *memResetTokens {
	return &memResetTokens{tokens: map[int64]models.OneTimeToken{}, password: map[int64]string{}}
}

func (m *memResetTokens) CreateResetToken(_ context.Context, token models.OneTimeToken) (models.OneTimeToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, t := range m.tokens {
		if t.UserID == token.UserID && t.UsedAt == nil {
			delete(m.tokens, id)
		}
	}
	m.nextID++
	token.ID = m.nextID
	m.tokens[token.ID] = token
	return token, nil
}

func (m *memResetTokens) FindResetTokenByHash(_ context.Context, hash string) (models.OneTimeToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.tokens {
		if t.TokenHash == hash {
			return t, nil
		}
	}
	return models.OneTimeToken{}, store.ErrNotFound
}

func (m *memResetTokens) DeleteResetToken(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, id)
	return nil
}

func (m *memResetTokens) RedeemResetToken(_ context.Context, r models.PasswordRedemption) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tokens[r.TokenID]
	if !ok || !t.Usable(r.Now) {
		return store.ErrTokenAlreadyUsed
	}
	used := r.Now
	t.UsedAt = &used
	m.tokens[r.TokenID] = t
	m.password[r.UserID] = r.PasswordHash
	return nil
}

type resetFixture struct {
	svc    *passwordResetService
	users  *mock.MockUserRepository
	mailer *mock.MockMailer
	tokens *memResetTokens
	now    time.Time
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &resetFixture{
		users:  mock.NewMockUserRepository(ctrl),
		mailer: mock.NewMockMailer(ctrl),
		tokens: newMemResetTokens(),
		now:    testEpoch,
	}

	publisher := mock.NewMockPublisher(ctrl)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).AnyTimes()

	svc := NewPasswordResetService(f.users, f.tokens, f.mailer, publisher, validators.NewAuthValidator(), testConfig(), logger.Nop())
	f.svc = svc.(*passwordResetService)
	f.svc.now = func() time.Time { return f.now }
	return f
}

func resetRequest(token, password string) models.ResetPasswordRequest {
	return models.ResetPasswordRequest{Token: token, Password: password, ConfirmPassword: password}
}

func TestCreatePasswordResetToken_StoresOnlyHash(t *testing.T) {
	f := newResetFixture(t)

	issued, err := f.svc.CreatePasswordResetToken(context.Background(), 7)
	require.NoError(t, err)

	found, err := f.svc.FindValidPasswordResetToken(context.Background(), issued.RawToken)
	require.NoError(t, err)
	assert.Equal(t, utils.HashToken(issued.RawToken), found.TokenHash)
	assert.NotEqual(t, issued.RawToken, found.TokenHash)
	assert.Equal(t, int64(7), found.UserID)
	assert.Equal(t, f.now.Add(30*time.Minute), found.Expires)
	assert.Equal(t, found.Expires, issued.ExpiresAt)
}

func TestCreatePasswordResetToken_SecondInvalidatesFirst(t *testing.T) {
	f := newResetFixture(t)

	first, err := f.svc.CreatePasswordResetToken(context.Background(), 7)
	require.NoError(t, err)
	second, err := f.svc.CreatePasswordResetToken(context.Background(), 7)
	require.NoError(t, err)

	_, err = f.svc.FindValidPasswordResetToken(context.Background(), first.RawToken)
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = f.svc.FindValidPasswordResetToken(context.Background(), second.RawToken)
	require.NoError(t, err)
}

func TestFindValidPasswordResetToken_ExpiredIsDeleted(t *testing.T) {
	f := newResetFixture(t)
	issued, err := f.svc.CreatePasswordResetToken(context.Background(), 7)
	require.NoError(t, err)

	f.now = f.now.Add(30 * time.Minute)
	_, err = f.svc.FindValidPasswordResetToken(context.Background(), issued.RawToken)

	require.ErrorIs(t, err, ErrTokenInvalid)
	assert.Empty(t, f.tokens.tokens)
}

func TestFindValidPasswordResetToken_UnknownAndEmpty(t *testing.T) {
	f := newResetFixture(t)

	_, err := f.svc.FindValidPasswordResetToken(context.Background(), "never-issued")
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = f.svc.FindValidPasswordResetToken(context.Background(), "")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestResetPassword_TokenIsSingleUse(t *testing.T) {
	f := newResetFixture(t)
	issued, err := f.svc.CreatePasswordResetToken(context.Background(), 7)
	require.NoError(t, err)

	err = f.svc.ResetPassword(context.Background(), resetRequest(issued.RawToken, "new-password1"))
	require.NoError(t, err)

	match, err := utils.CheckPassword(f.tokens.password[7], "new-password1")
	require.NoError(t, err)
	assert.True(t, match)

	err = f.svc.ResetPassword(context.Background(), resetRequest(issued.RawToken, "other-password2"))
	require.ErrorIs(t, err, ErrTokenInvalid)

	match, err = utils.CheckPassword(f.tokens.password[7], "new-password1")
	require.NoError(t, err)
	assert.True(t, match)
}

func TestResetPassword_ConcurrentRedemption_OneWins(t *testing.T) {
	f := newResetFixture(t)
	issued, err := f.svc.CreatePasswordResetToken(context.Background(), 7)
	require.NoError(t, err)

	const attempts = 5
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- f.svc.ResetPassword(context.Background(), resetRequest(issued.RawToken, "new-password1"))
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded int
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, ErrTokenInvalid)
	}
	assert.Equal(t, 1, succeeded)
}

func TestResetPassword_Validation(t *testing.T) {
	f := newResetFixture(t)

	err := f.svc.ResetPassword(context.Background(), models.ResetPasswordRequest{
		Token:           "raw",
		Password:        "new-password1",
		ConfirmPassword: "new-password2",
	})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	err = f.svc.ResetPassword(context.Background(), resetRequest("raw", "short"))
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	err = f.svc.ResetPassword(context.Background(), resetRequest("", "new-password1"))
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRequestPasswordReset_KnownUser_SendsLink(t *testing.T) {
	f := newResetFixture(t)
	user := testUser(t)

	f.users.EXPECT().FindUserByUsername(gomock.Any(), "Ada").Return(user, nil)

	var sent adapter.EmailData
	f.mailer.EXPECT().SendEmail(gomock.Any(), user.Email, adapter.TemplatePasswordReset, gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _ string, data adapter.EmailData) error {
			sent = data
			return nil
		})

	err := f.svc.RequestPasswordReset(context.Background(), models.ForgotPasswordRequest{Identifier: "Ada"})
	require.NoError(t, err)

	prefix := testBaseURL + "/auth/reset-password?token="
	require.True(t, strings.HasPrefix(sent.Link, prefix))
	assert.Equal(t, "30 minutes", sent.ExpiresIn)

	_, err = f.svc.FindValidPasswordResetToken(context.Background(), strings.TrimPrefix(sent.Link, prefix))
	require.NoError(t, err)
}

func TestRequestPasswordReset_UnknownUser_ReturnsNil(t *testing.T) {
	f := newResetFixture(t)
	f.users.EXPECT().FindUserByEmail(gomock.Any(), "ghost@example.com").Return(models.User{}, store.ErrNotFound)

	err := f.svc.RequestPasswordReset(context.Background(), models.ForgotPasswordRequest{Identifier: "Ghost@example.com"})

	require.NoError(t, err)
	assert.Empty(t, f.tokens.tokens)
}

func TestRequestPasswordReset_MailFailure_ReturnsNil(t *testing.T) {
	f := newResetFixture(t)
	f.users.EXPECT().FindUserByEmail(gomock.Any(), "ada@example.com").Return(testUser(t), nil)
	f.mailer.EXPECT().SendEmail(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(adapter.ErrDeliveryFailed)

	err := f.svc.RequestPasswordReset(context.Background(), models.ForgotPasswordRequest{Identifier: "ada@example.com"})

	require.NoError(t, err)
}

func TestRequestPasswordReset_EmptyIdentifier(t *testing.T) {
	f := newResetFixture(t)

	err := f.svc.RequestPasswordReset(context.Background(), models.ForgotPasswordRequest{})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

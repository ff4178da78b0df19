package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/store"
	"github.com/MKhiriev/go-dashboard/internal/utils"
	"github.com/MKhiriev/go-dashboard/internal/validators"
	"github.com/MKhiriev/go-dashboard/models"
)

type accountService struct {
	users      store.UserRepository
	validator  validators.Validator
	bcryptCost int

	now    func() time.Time
	logger *logger.Logger
}

func NewAccountService(users store.UserRepository, validator validators.Validator, cfg config.App, logger *logger.Logger) AccountService {
	return &accountService{
		users:      users,
		validator:  validator,
		bcryptCost: cfg.BcryptCost,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *accountService) GetAccount(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.users.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, ErrSessionExpired
	}
	return user, err
}

// UpdateAccount applies the profile fields and, when present, the password
// change in one store write. The current password is checked first.
func (s *accountService) UpdateAccount(ctx context.Context, userID int64, req models.AccountUpdateRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	var newHash string
	if req.PasswordChange != nil {
		user, err := s.GetAccount(ctx, userID)
		if err != nil {
			return models.User{}, err
		}

		match, err := utils.CheckPassword(user.PasswordHash, req.PasswordChange.CurrentPassword)
		if err != nil || !match {
			log.Info().Int64("user_id", userID).Msg("account update with wrong current password")
			return models.User{}, ErrWrongPassword
		}

		if newHash, err = utils.HashPassword(req.PasswordChange.NewPassword, s.bcryptCost); err != nil {
			return models.User{}, err
		}
	}

	update := models.ProfileUpdate{UserID: userID}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		update.Email = &email
	}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		update.Username = &username
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		update.Name = &name
	}
	if newHash != "" {
		update.PasswordHash = &newHash
		update.PasswordChangedAt = s.now().UTC()
	}

	user, err := s.users.UpdateProfile(ctx, update)
	switch {
	case errors.Is(err, store.ErrEmailTaken), errors.Is(err, store.ErrUsernameTaken):
		return models.User{}, err
	case errors.Is(err, store.ErrNotFound):
		return models.User{}, ErrSessionExpired
	case err != nil:
		log.Err(err).Int64("user_id", userID).Msg("error updating profile")
		return models.User{}, fmt.Errorf("error updating profile: %w", err)
	}

	return user, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
	"github.com/MKhiriev/go-dashboard/internal/store"
	"github.com/MKhiriev/go-dashboard/internal/utils"
	"github.com/MKhiriev/go-dashboard/models"
)

// sessionService keeps sessions in signed, client-held tokens. Identity
// fields are a cache of the user record bounded by resyncInterval.
type sessionService struct {
	users store.UserRepository

	signKey        string
	issuer         string
	idle           time.Duration
	rememberIdle   time.Duration
	resyncInterval time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewSessionService constructs a SessionService from the App and Auth
// configuration groups.
func NewSessionService(users store.UserRepository, cfg config.StructuredConfig, logger *logger.Logger) SessionService {
	return &sessionService{
		users:          users,
		signKey:        cfg.App.TokenSignKey,
		issuer:         cfg.App.TokenIssuer,
		idle:           cfg.Auth.IdleTimeout,
		rememberIdle:   cfg.Auth.RememberMeIdleTimeout,
		resyncInterval: cfg.Auth.RoleSyncInterval,
		now:            time.Now,
		logger:         logger,
	}
}

func (s *sessionService) IdleLimit(rememberMe bool) time.Duration {
	if rememberMe {
		return s.rememberIdle
	}
	return s.idle
}

// Mint stamps roleSyncedAt and lastActivity with the same instant.
func (s *sessionService) Mint(ctx context.Context, identity models.Identity) (models.Session, error) {
	now := s.now()

	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
		UserID:       identity.UserID,
		Email:        identity.Email,
		Name:         identity.Name,
		Username:     identity.Username,
		Role:         identity.Role,
		RememberMe:   identity.RememberMe,
		RoleSyncedAt: now.UnixMilli(),
		LastActivity: now.UnixMilli(),
	}
	claims.Subject = claims.SubjectID()

	return s.sign(claims, now)
}

func (s *sessionService) Refresh(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)
	now := s.now()

	claims, err := utils.ParseSessionToken(token, s.signKey, s.issuer, s.now)
	if err != nil {
		log.Debug().Err(err).Msg("session token rejected")
		return models.Session{}, ErrSessionExpired
	}

	if now.Sub(claims.LastActivityTime()) > s.IdleLimit(claims.RememberMe) {
		log.Debug().Int64("user_id", claims.UserID).Msg("session idle timeout")
		return models.Session{}, ErrSessionExpired
	}

	if now.Sub(claims.RoleSyncedTime()) > s.resyncInterval {
		user, err := s.users.FindUserByID(ctx, claims.UserID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			log.Info().Int64("user_id", claims.UserID).Msg("session user no longer exists")
			return models.Session{}, ErrSessionExpired
		case err != nil:
			log.Err(err).Int64("user_id", claims.UserID).Msg("error resyncing session")
			return models.Session{}, fmt.Errorf("error resyncing session: %w", err)
		}

		claims.Email = user.Email
		claims.Name = user.Name
		claims.Username = user.Username
		claims.Role = user.Role
		claims.RoleSyncedAt = now.UnixMilli()
	}

	claims.LastActivity = now.UnixMilli()
	return s.sign(claims, now)
}

// sign sets exp to lastActivity plus the idle limit and signs the claims.
func (s *sessionService) sign(claims models.SessionClaims, now time.Time) (models.Session, error) {
	expiresAt := now.Add(s.IdleLimit(claims.RememberMe))
	claims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	token, err := utils.SignSessionToken(claims, s.signKey)
	if err != nil {
		return models.Session{}, err
	}

	return models.Session{Token: token, Claims: claims, ExpiresAt: expiresAt.UTC()}, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-dashboard/internal/config"
	"github.com/MKhiriev/go-dashboard/internal/logger"
)

// Storages groups the repositories the services depend on together with
// the connection they share.
type Storages struct {
	DB                          *DB
	UserRepository              UserRepository
	PasswordResetRepository     PasswordResetRepository
	VerificationTokenRepository VerificationTokenRepository
}

// NewStorages connects to the configured database, applies migrations and
// builds the repositories.
func NewStorages(ctx context.Context, cfg config.DB, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(ctx); err != nil {
		log.Err(err).Str("func", "NewStorages").Msg("error applying migrations")
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return NewStoragesFromDB(db, log), nil
}

// NewStoragesFromDB builds the repositories over an already migrated
// connection.
func NewStoragesFromDB(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		DB:                          db,
		UserRepository:              NewUserRepository(db, log),
		PasswordResetRepository:     NewPasswordResetRepository(db, log),
		VerificationTokenRepository: NewVerificationTokenRepository(db, log),
	}
}

// Close releases the database connection.
func (s *Storages) Close() error {
	return s.DB.Close()
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost %d out of range", ErrInvalidAppConfigs, cfg.App.BcryptCost)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Auth.LockoutThreshold < 1 || cfg.Auth.LockoutDuration <= 0 {
		return fmt.Errorf("%w: lockout policy", ErrInvalidAuthConfigs)
	}
	if cfg.Auth.IdleTimeout <= 0 || cfg.Auth.RememberMeIdleTimeout < cfg.Auth.IdleTimeout {
		return fmt.Errorf("%w: idle timeouts", ErrInvalidAuthConfigs)
	}

	if cfg.RateLimit.LoginLimit < 1 || cfg.RateLimit.LoginWindow <= 0 {
		return fmt.Errorf("%w: login limit", ErrInvalidRateLimitConfigs)
	}

	return nil
}

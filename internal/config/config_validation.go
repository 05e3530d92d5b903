// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// validate checks that the merged [StructuredConfig] can start the server.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return ErrInvalidAppConfigs
	}

	if cfg.Auth.MaxLoginAttempts <= 0 || cfg.Auth.LoginAttemptWindow <= 0 {
		return ErrInvalidAuthConfigs
	}

	price, err := decimal.NewFromString(cfg.Premium.MonthlyPrice)
	if err != nil {
		return fmt.Errorf("%w: monthly price: %w", ErrInvalidPremiumConfigs, err)
	}
	if !price.IsPositive() || cfg.Premium.DaysPerMonth <= 0 || cfg.Premium.MaxMonths <= 0 {
		return ErrInvalidPremiumConfigs
	}

	if cfg.OAuth.Enabled() && (cfg.OAuth.GoogleClientSecret == "" || cfg.OAuth.GoogleRedirectURL == "" || cfg.OAuth.SessionSecret == "") {
		return ErrInvalidOAuthConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.Workers.PremiumSweepInterval <= 0 || cfg.Workers.PremiumSweepBackoff <= 0 || cfg.Workers.RatingSweepInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

// MonthlyPriceDecimal returns the parsed premium price. The value was checked by
// validate, so a parse failure yields zero.
func (p Premium) MonthlyPriceDecimal() decimal.Decimal {
	price, err := decimal.NewFromString(p.MonthlyPrice)
	if err != nil {
		return decimal.Zero
	}
	return price
}

package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidStorageConfigs indicates a missing database DSN.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates missing token settings.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidAuthConfigs indicates non-positive login throttling limits.
	ErrInvalidAuthConfigs = errors.New("invalid auth configuration")
	// ErrInvalidPremiumConfigs indicates an unusable premium price list.
	ErrInvalidPremiumConfigs = errors.New("invalid premium configuration")
	// ErrInvalidOAuthConfigs indicates a partially configured Google client.
	ErrInvalidOAuthConfigs = errors.New("invalid oauth configuration")
	// ErrInvalidServerConfigs indicates a missing listen address.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates non-positive sweep schedules.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)

package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrAccountDisabled    = errors.New("account is disabled")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrOAuthDisabled       = errors.New("oauth sign-in is not configured")
	ErrOAuthExchangeFailed = errors.New("oauth code exchange failed")
	ErrOAuthNoEmail        = errors.New("oauth identity carries no e-mail")

	ErrForbidden = errors.New("forbidden")

	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrInsufficientFundsForPremium also matches ErrInsufficientFunds.
	ErrInsufficientFundsForPremium = fmt.Errorf("%w for premium", ErrInsufficientFunds)
	ErrAlreadyOwned                = errors.New("episode is already available")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

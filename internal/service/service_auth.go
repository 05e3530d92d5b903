// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-cinema/internal/config"
	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/metrics"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/internal/utils"
	"github.com/MKhiriev/go-cinema/internal/validators"
	"github.com/MKhiriev/go-cinema/models"
)

// oauthPasswordBytes is the entropy of the random password given to
// accounts provisioned through OAuth. Nobody knows it, so password login
// never succeeds for them.
const oauthPasswordBytes = 32

// authService is the concrete implementation of AuthService.
// It registers accounts, authenticates them against the login-attempt
// ledger and bcrypt hashes, and issues and validates HS256 session tokens.
type authService struct {
	transactor store.Transactor
	users      store.UserRepository
	attempts   store.LoginAttemptRepository
	validator  validators.Validator

	// maxAttempts attempts (successful or not) are allowed per e-mail in
	// the trailing attemptWindow.
	maxAttempts   int
	attemptWindow time.Duration
	bcryptCost    int

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string
	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer   string
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService over the given repositories,
// populated with token parameters from app and throttling parameters from
// auth.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(
	transactor store.Transactor,
	users store.UserRepository,
	attempts store.LoginAttemptRepository,
	validator validators.Validator,
	app config.App,
	auth config.Auth,
	now func() time.Time,
	logger *logger.Logger,
) AuthService {
	return &authService{
		transactor:    transactor,
		users:         users,
		attempts:      attempts,
		validator:     validator,
		maxAttempts:   auth.MaxLoginAttempts,
		attemptWindow: auth.LoginAttemptWindow,
		bcryptCost:    auth.BcryptCost,
		tokenSignKey:  app.TokenSignKey,
		tokenIssuer:   app.TokenIssuer,
		tokenDuration: app.TokenDuration,
		now:           now,
		logger:        logger,
	}
}

// RegisterUser validates req, hashes the password and stores a new active
// USER account at level 1.
//
// Returns the persisted user or:
//   - a wrapped ErrInvalidDataProvided if req breaks a field rule.
//   - a wrapped store.ErrEmailAlreadyExists if the e-mail is taken.
func (a *authService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	hash, err := utils.HashPassword(req.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("error hashing password")
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	user := newAccount(req.Username, models.NormalizeEmail(req.Email), req.Name, req.Surname, hash)
	user.Age = req.Age
	user.About = req.About
	user.Location = req.Location

	registered, err := a.users.CreateUser(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registered, nil
}

// Authenticate checks credentials against the login-attempt ledger and the
// stored hash. The whole sequence runs in one transaction under a per-email
// lock:
//
//  1. ledger entries older than the window are purged;
//  2. if the window already holds maxAttempts entries the call fails with
//     ErrTooManyAttempts before the password is looked at;
//  3. the attempt is recorded, then an unknown e-mail or a wrong password
//     fails with ErrInvalidCredentials and a disabled account with
//     ErrAccountDisabled.
//
// Successful logins count towards the limit as well.
func (a *authService) Authenticate(ctx context.Context, credentials models.Credentials) (models.User, error) {
	log := logger.FromContext(ctx)

	// only the e-mail gates the ledger; an empty password is a recorded
	// failed attempt like any other wrong password
	credentials.Username = models.NormalizeEmail(credentials.Username)
	if err := a.validator.Validate(ctx, credentials, "Username"); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}
	email := credentials.Username

	var (
		user    models.User
		outcome error
	)
	err := a.transactor.WithinTx(ctx, func(ctx context.Context) error {
		user, outcome = models.User{}, nil
		now := a.now()
		windowStart := now.Add(-a.attemptWindow)

		if err := a.attempts.LockEmail(ctx, email); err != nil {
			return err
		}
		if _, err := a.attempts.PurgeBefore(ctx, email, windowStart); err != nil {
			return err
		}
		count, err := a.attempts.CountSince(ctx, email, windowStart)
		if err != nil {
			return err
		}
		if count >= a.maxAttempts {
			outcome = ErrTooManyAttempts
			return nil
		}

		found, err := a.users.GetUserByEmail(ctx, email)
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			outcome = ErrInvalidCredentials
		case err != nil:
			return err
		case !found.IsActive:
			outcome = ErrAccountDisabled
		case credentials.Password == "" || !utils.CheckPassword(credentials.Password, found.HashedPassword):
			outcome = ErrInvalidCredentials
		default:
			user = found
		}

		return a.attempts.RecordAttempt(ctx, models.LoginAttempt{
			Email:     email,
			Success:   outcome == nil,
			CreatedAt: now,
		})
	})
	if err != nil {
		metrics.LoginAttempts.WithLabelValues(metrics.ResultError).Inc()
		log.Err(err).Str("func", "*authService.Authenticate").Msg("login attempt ledger failed")
		return models.User{}, fmt.Errorf("error authenticating: %w", err)
	}

	metrics.LoginAttempts.WithLabelValues(loginResult(outcome)).Inc()
	if outcome != nil {
		log.Info().Str("email", email).Str("result", loginResult(outcome)).Msg("login rejected")
		return models.User{}, outcome
	}

	return user, nil
}

// LoginWithOAuth trusts identity and returns the account with its e-mail,
// provisioning a USER with a random unusable password on first sign-in.
func (a *authService) LoginWithOAuth(ctx context.Context, identity models.OAuthIdentity) (models.User, error) {
	log := logger.FromContext(ctx)

	email := models.NormalizeEmail(identity.Email)
	if email == "" {
		return models.User{}, ErrOAuthNoEmail
	}

	existing, err := a.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		if !existing.IsActive {
			return models.User{}, ErrAccountDisabled
		}
		return existing, nil
	case !errors.Is(err, store.ErrUserNotFound):
		log.Err(err).Str("func", "*authService.LoginWithOAuth").Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	secret, err := utils.RandomSecret(oauthPasswordBytes)
	if err != nil {
		return models.User{}, fmt.Errorf("error generating password: %w", err)
	}
	hash, err := utils.HashPassword(secret, a.bcryptCost)
	if err != nil {
		return models.User{}, fmt.Errorf("error hashing password: %w", err)
	}

	username, _, _ := strings.Cut(email, "@")
	user := newAccount(username, email, identity.GivenName, identity.FamilyName, hash)
	user.Photo = identity.Picture

	created, err := a.users.CreateUser(ctx, user)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		// a concurrent callback provisioned the same account
		return a.users.GetUserByEmail(ctx, email)
	}
	if err != nil {
		log.Err(err).Str("email", email).Msg("oauth user provisioning failed")
		return models.User{}, fmt.Errorf("oauth user provisioning failed: %w", err)
	}

	log.Info().Int64("user_id", created.UserID).Msg("oauth user provisioned")
	return created, nil
}

// CreateToken issues a signed JWT whose subject is the user's e-mail.
//
// Returns the token model on success or a wrapped ErrTokenCreationFailed.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Email, a.now(), a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates tokenString and re-resolves its subject.
//
// Any signature, format, issuer or expiry problem, a missing subject and an
// unknown account are all reported as ErrTokenIsExpiredOrInvalid; an
// inactive account as ErrAccountDisabled.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.User, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.User{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.users.GetUserByEmail(ctx, token.Email)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return models.User{}, ErrTokenIsExpiredOrInvalid
	case err != nil:
		return models.User{}, fmt.Errorf("error resolving token subject: %w", err)
	case !user.IsActive:
		return models.User{}, ErrAccountDisabled
	}

	return user, nil
}

func newAccount(username, email, name, surname, hash string) models.User {
	return models.User{
		Username:       username,
		Email:          email,
		Name:           name,
		Surname:        surname,
		Role:           models.RoleUser,
		IsActive:       true,
		Level:          models.MinLevel,
		Title:          models.TitleForLevel(models.MinLevel),
		HashedPassword: hash,
	}
}

func loginResult(outcome error) string {
	switch {
	case outcome == nil:
		return metrics.ResultSuccess
	case errors.Is(outcome, ErrTooManyAttempts):
		return metrics.ResultRateLimited
	case errors.Is(outcome, ErrAccountDisabled):
		return metrics.ResultDisabled
	default:
		return metrics.ResultInvalidCredentials
	}
}

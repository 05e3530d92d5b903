package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/models"
)

type loginAttemptRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewLoginAttemptRepository constructs the PostgreSQL login attempt ledger.
// Its methods are meant to run inside one [Transactor.WithinTx] scope per
// authentication attempt.
func NewLoginAttemptRepository(db *DB, logger *logger.Logger) LoginAttemptRepository {
	logger.Debug().Msg("creating login attempt repository")
	return &loginAttemptRepository{
		db:     db,
		logger: logger,
	}
}

// LockEmail takes a transaction-scoped advisory lock keyed by the e-mail,
// so concurrent attempts for the same address run one after another.
func (r *loginAttemptRepository) LockEmail(ctx context.Context, email string) error {
	if _, err := r.db.executor(ctx).ExecContext(ctx, lockLoginAttempts, email); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*loginAttemptRepository.LockEmail").Msg("failed to lock ledger")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// PurgeBefore deletes the attempts of email recorded before the cutoff.
func (r *loginAttemptRepository) PurgeBefore(ctx context.Context, email string, before time.Time) (int64, error) {
	res, err := r.db.executor(ctx).ExecContext(ctx, purgeLoginAttempts, email, before.UTC())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*loginAttemptRepository.PurgeBefore").Msg("failed to purge attempts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	purged, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return purged, nil
}

// CountSince returns how many attempts of email were recorded at or after
// since, successful ones included.
func (r *loginAttemptRepository) CountSince(ctx context.Context, email string, since time.Time) (int, error) {
	var count int
	if err := r.db.executor(ctx).QueryRowContext(ctx, countLoginAttempts, email, since.UTC()).Scan(&count); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*loginAttemptRepository.CountSince").Msg("failed to count attempts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func (r *loginAttemptRepository) RecordAttempt(ctx context.Context, attempt models.LoginAttempt) error {
	_, err := r.db.executor(ctx).ExecContext(ctx, recordLoginAttempt, attempt.Email, attempt.Success, attempt.CreatedAt.UTC())
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "*loginAttemptRepository.RecordAttempt").
			Bool("success", attempt.Success).
			Msg("failed to record attempt")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

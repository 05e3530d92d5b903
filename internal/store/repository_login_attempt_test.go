package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAttemptLedger_WithinTransaction(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLoginAttemptRepository(db, logger.Nop())

	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	window := 15 * time.Minute
	email := "ann@example.com"

	mock.ExpectBegin()
	mock.ExpectExec("pg_advisory_xact_lock\\(hashtext\\(\\$1\\)\\)").
		WithArgs(email).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM login_attempts").
		WithArgs(email, now.Add(-window)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WithArgs(email, now.Add(-window)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectExec("INSERT INTO login_attempts").
		WithArgs(email, true, now).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := db.WithinTx(context.Background(), func(ctx context.Context) error {
		require.NoError(t, repo.LockEmail(ctx, email))

		purged, err := repo.PurgeBefore(ctx, email, now.Add(-window))
		require.NoError(t, err)
		assert.Equal(t, int64(3), purged)

		count, err := repo.CountSince(ctx, email, now.Add(-window))
		require.NoError(t, err)
		assert.Equal(t, 4, count)

		return repo.RecordAttempt(ctx, models.LoginAttempt{Email: email, Success: true, CreatedAt: now})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginAttemptRepository_CountError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLoginAttemptRepository(db, logger.Nop())

	mock.ExpectQuery("SELECT COUNT").WillReturnError(errors.New("boom"))

	_, err := repo.CountSince(context.Background(), "a@b.c", time.Now())
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestLoginAttemptRepository_RecordError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewLoginAttemptRepository(db, logger.Nop())

	mock.ExpectExec("INSERT INTO login_attempts").WillReturnError(errors.New("boom"))

	err := repo.RecordAttempt(context.Background(), models.LoginAttempt{Email: "a@b.c", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, ErrExecutingStatement)
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/models"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/shopspring/decimal"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] and
// run on the transaction bound to ctx, if any.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID, &u.Username, &u.Email, &u.Name, &u.Surname,
		&u.Photo, &u.FramePhoto, &u.HeaderPhoto, &u.About, &u.Location,
		&u.Age, &u.Role, &u.IsActive, &u.IsPremium, &u.PremiumUntil,
		&u.Money, &u.Level, &u.Title, &u.HashedPassword, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// userError translates driver errors of a single-user statement.
//
//   - sql.ErrNoRows → [ErrUserNotFound]
//   - unique_violation (23505) → [ErrEmailAlreadyExists]
//   - anything else → wrapped [ErrExecutingQuery]
func userError(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrUserNotFound
	case postgresError(err) == pgerrcode.UniqueViolation:
		return ErrEmailAlreadyExists
	default:
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// CreateUser persists a new account and returns it with server-assigned
// fields populated.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.executor(ctx).QueryRowContext(ctx, createUser,
		user.Username, user.Email, user.Name, user.Surname, user.Photo, user.About,
		user.Location, user.Age, user.Role, user.IsActive, user.Money, user.Level,
		user.Title, user.HashedPassword,
	)

	created, err := scanUser(row)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")
		return models.User{}, userError(err)
	}

	return created, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.getOne(ctx, "*userRepository.GetUserByID", getUserByID, userID)
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getOne(ctx, "*userRepository.GetUserByEmail", getUserByEmail, email)
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getOne(ctx, "*userRepository.GetUserByUsername", getUserByUsername, username)
}

// GetUserForUpdate reads the user with SELECT ... FOR UPDATE. Outside a
// transaction the lock is released as soon as the statement ends.
func (r *userRepository) GetUserForUpdate(ctx context.Context, userID int64) (models.User, error) {
	return r.getOne(ctx, "*userRepository.GetUserForUpdate", getUserForUpdate, userID)
}

func (r *userRepository) getOne(ctx context.Context, fn, query string, args ...any) (models.User, error) {
	user, err := scanUser(r.db.executor(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error reading user")
		}
		return models.User{}, userError(err)
	}

	return user, nil
}

// ListActiveUsers returns one page of active accounts ordered by id.
func (r *userRepository) ListActiveUsers(ctx context.Context, page models.Page) ([]models.User, error) {
	query, args, err := buildListQuery("users", userColumns, "user_id", sq.Expr("is_active"), page)
	if err != nil {
		return nil, err
	}

	return r.list(ctx, "*userRepository.ListActiveUsers", query, args...)
}

// ListPremiumUsers returns every account whose subscription flag is set,
// regardless of its expiry.
func (r *userRepository) ListPremiumUsers(ctx context.Context) ([]models.User, error) {
	return r.list(ctx, "*userRepository.ListPremiumUsers", listPremiumUsers)
}

func (r *userRepository) list(ctx context.Context, fn, query string, args ...any) ([]models.User, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", fn).Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", fn).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUser applies the fields present in patch and returns the updated
// account.
func (r *userRepository) UpdateUser(ctx context.Context, userID int64, patch models.UserPatch) (models.User, error) {
	query, args, err := buildUserPatchQuery(userID, patch)
	if err != nil {
		return models.User{}, err
	}

	return r.getOne(ctx, "*userRepository.UpdateUser", query, args...)
}

// DeactivateUser soft-deletes an account. Deactivating an already inactive
// or missing account yields [ErrUserNotFound].
func (r *userRepository) DeactivateUser(ctx context.Context, userID int64) error {
	return r.execOne(ctx, "*userRepository.DeactivateUser", ErrUserNotFound, deactivateUser, userID)
}

func (r *userRepository) SetRole(ctx context.Context, userID int64, role models.Role) (models.User, error) {
	return r.getOne(ctx, "*userRepository.SetRole", setUserRole, userID, role)
}

func (r *userRepository) SetLevel(ctx context.Context, userID int64, level int, title string) (models.User, error) {
	return r.getOne(ctx, "*userRepository.SetLevel", setUserLevel, userID, level, title)
}

// AddMoney credits amount and returns the new balance.
func (r *userRepository) AddMoney(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	return r.balance(ctx, "*userRepository.AddMoney", ErrUserNotFound, addUserMoney, userID, amount)
}

// DebitMoney subtracts amount in a single conditional UPDATE, so the
// balance never goes negative even without a row lock.
func (r *userRepository) DebitMoney(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	return r.balance(ctx, "*userRepository.DebitMoney", ErrInsufficientFunds, debitUserMoney, userID, amount)
}

func (r *userRepository) balance(ctx context.Context, fn string, noRows error, query string, args ...any) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db.executor(ctx).QueryRowContext(ctx, query, args...).Scan(&balance)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return decimal.Zero, noRows
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error updating balance")
		return decimal.Zero, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return balance, nil
}

// SetPremiumUntil marks the subscription active until the given instant.
func (r *userRepository) SetPremiumUntil(ctx context.Context, userID int64, until time.Time) error {
	return r.execOne(ctx, "*userRepository.SetPremiumUntil", ErrUserNotFound, setUserPremiumUntil, userID, until.UTC())
}

// ClearExpiredPremium is a conditional UPDATE: a subscription that is still
// running at now, or one already cleared, is left alone and false is
// returned.
func (r *userRepository) ClearExpiredPremium(ctx context.Context, userID int64, now time.Time) (bool, error) {
	res, err := r.db.executor(ctx).ExecContext(ctx, clearExpiredPremium, userID, now.UTC())
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userRepository.ClearExpiredPremium").Int64("user_id", userID).Msg("error clearing premium")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected > 0, nil
}

// execOne runs a statement expected to change exactly one row and reports
// notFound when it changed none.
func (r *userRepository) execOne(ctx context.Context, fn string, notFound error, query string, args ...any) error {
	return execOne(ctx, r.db, fn, notFound, query, args...)
}

func execOne(ctx context.Context, db *DB, fn string, notFound error, query string, args ...any) error {
	log := logger.FromContext(ctx)

	res, err := db.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", fn).Msg("failed to read affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}

	return nil
}

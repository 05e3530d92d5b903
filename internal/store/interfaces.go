package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cinema/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Transactor runs a function inside one database transaction. Repository
// calls made with the context handed to fn join that transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// UserRepository persists accounts, balances and subscription state.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)
	// GetUserForUpdate locks the row until the surrounding transaction ends.
	GetUserForUpdate(ctx context.Context, userID int64) (models.User, error)
	ListActiveUsers(ctx context.Context, page models.Page) ([]models.User, error)
	ListPremiumUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, userID int64, patch models.UserPatch) (models.User, error)
	DeactivateUser(ctx context.Context, userID int64) error
	SetRole(ctx context.Context, userID int64, role models.Role) (models.User, error)
	SetLevel(ctx context.Context, userID int64, level int, title string) (models.User, error)
	AddMoney(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
	// DebitMoney subtracts amount only when the balance covers it and
	// returns the new balance, or ErrInsufficientFunds.
	DebitMoney(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
	SetPremiumUntil(ctx context.Context, userID int64, until time.Time) error
	// ClearExpiredPremium resets the subscription if it has elapsed at now
	// and reports whether a row changed.
	ClearExpiredPremium(ctx context.Context, userID int64, now time.Time) (bool, error)
}

// LoginAttemptRepository is the append-only login attempt ledger.
type LoginAttemptRepository interface {
	// LockEmail serializes ledger access for one e-mail until the
	// surrounding transaction ends.
	LockEmail(ctx context.Context, email string) error
	PurgeBefore(ctx context.Context, email string, before time.Time) (int64, error)
	CountSince(ctx context.Context, email string, since time.Time) (int, error)
	RecordAttempt(ctx context.Context, attempt models.LoginAttempt) error
}

// MovieRepository persists catalog movies. Soft-deleted movies are
// invisible to every read.
type MovieRepository interface {
	CreateMovie(ctx context.Context, movie models.Movie) (models.Movie, error)
	GetMovie(ctx context.Context, movieID int64) (models.Movie, error)
	ListActiveMovies(ctx context.Context, page models.Page) ([]models.Movie, error)
	UpdateMovie(ctx context.Context, movieID int64, patch models.MoviePatch) (models.Movie, error)
	SetAccessLevel(ctx context.Context, movieID int64, level models.AccessLevel) (models.Movie, error)
	DeactivateMovie(ctx context.Context, movieID int64) error
	SetRating(ctx context.Context, movieID int64, rating float64) error
}

// EpisodeRepository persists episodes. Deletion is physical.
type EpisodeRepository interface {
	CreateEpisode(ctx context.Context, episode models.Episode) (models.Episode, error)
	GetEpisode(ctx context.Context, episodeID int64) (models.Episode, error)
	ListEpisodesByMovie(ctx context.Context, movieID int64) ([]models.Episode, error)
	UpdateEpisode(ctx context.Context, episodeID int64, patch models.EpisodePatch) (models.Episode, error)
	DeleteEpisode(ctx context.Context, episodeID int64) error
}

// PurchaseRepository persists per-episode purchases.
type PurchaseRepository interface {
	CreatePurchase(ctx context.Context, purchase models.PurchasedEpisode) (models.PurchasedEpisode, error)
	HasPurchase(ctx context.Context, userID, episodeID int64) (bool, error)
	// PurchasedEpisodeIDs returns which of episodeIDs the user owns.
	PurchasedEpisodeIDs(ctx context.Context, userID int64, episodeIDs []int64) (map[int64]bool, error)
}

// CommentRepository persists comments and aggregates their ratings.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	GetComment(ctx context.Context, commentID int64) (models.Comment, error)
	ListByMovie(ctx context.Context, movieID int64, page models.Page) ([]models.Comment, error)
	ListByUser(ctx context.Context, userID int64, page models.Page) ([]models.Comment, error)
	UpdateComment(ctx context.Context, commentID int64, patch models.CommentPatch) (models.Comment, error)
	DeactivateComment(ctx context.Context, commentID int64) error
	// AverageRatings returns one aggregate per active movie that has at
	// least one active comment.
	AverageRatings(ctx context.Context) ([]models.RatingAggregate, error)
}

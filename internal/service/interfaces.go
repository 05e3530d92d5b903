package service

import (
	"context"

	"github.com/MKhiriev/go-cinema/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService registers accounts, authenticates them and manages session
// tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)
	// Authenticate checks credentials against the login-attempt ledger and
	// the stored password hash.
	Authenticate(ctx context.Context, credentials models.Credentials) (models.User, error)
	// LoginWithOAuth finds the account of an external identity, creating
	// one on first sign-in.
	LoginWithOAuth(ctx context.Context, identity models.OAuthIdentity) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	// ParseToken validates tokenString and resolves its subject to an
	// active user.
	ParseToken(ctx context.Context, tokenString string) (models.User, error)
}

// OAuthProvider is an external identity provider using the authorization
// code flow.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (models.OAuthIdentity, error)
}

type UserService interface {
	// GetProfile returns the actor's own profile with the subscription
	// reconciled.
	GetProfile(ctx context.Context, actor models.User) (models.User, error)
	GetUser(ctx context.Context, actor models.User, userID int64) (models.UserView, error)
	GetUserByUsername(ctx context.Context, actor models.User, username string) (models.UserView, error)
	ListUsers(ctx context.Context, actor models.User, page models.Page) ([]models.UserView, error)
	UpdateUser(ctx context.Context, actor models.User, userID int64, patch models.UserPatch) (models.User, error)
	DeactivateUser(ctx context.Context, actor models.User, userID int64) (int64, error)
	ChangeRole(ctx context.Context, actor models.User, userID int64, role models.Role) (models.User, error)
	SetLevel(ctx context.Context, actor models.User, userID int64, level int) (models.User, error)
	AddMoney(ctx context.Context, actor models.User, userID int64, amount decimal.Decimal) (models.BalanceResponse, error)
}

type MovieService interface {
	CreateMovie(ctx context.Context, actor models.User, movie models.NewMovie) (models.Movie, error)
	GetMovie(ctx context.Context, actor models.User, movieID int64) (models.Movie, error)
	ListMovies(ctx context.Context, actor models.User, page models.Page) ([]models.Movie, error)
	UpdateMovie(ctx context.Context, actor models.User, movieID int64, patch models.MoviePatch) (models.Movie, error)
	DeleteMovie(ctx context.Context, actor models.User, movieID int64) (int64, error)
	SetAccessLevel(ctx context.Context, actor models.User, movieID int64, level models.AccessLevel) (models.Movie, error)
}

type EpisodeService interface {
	CreateEpisode(ctx context.Context, actor models.User, episode models.NewEpisode) (models.EpisodeView, error)
	GetEpisode(ctx context.Context, actor models.User, episodeID int64) (models.EpisodeView, error)
	ListEpisodes(ctx context.Context, actor models.User, movieID int64) ([]models.EpisodeView, error)
	UpdateEpisode(ctx context.Context, actor models.User, episodeID int64, patch models.EpisodePatch) (models.Episode, error)
	DeleteEpisode(ctx context.Context, actor models.User, episodeID int64) (int64, error)
}

type CommentService interface {
	CreateComment(ctx context.Context, actor models.User, comment models.NewComment) (models.Comment, error)
	ListMovieComments(ctx context.Context, actor models.User, movieID int64, page models.Page) ([]models.Comment, error)
	ListUserComments(ctx context.Context, actor models.User, userID int64, page models.Page) ([]models.Comment, error)
	UpdateComment(ctx context.Context, actor models.User, commentID int64, patch models.CommentPatch) (models.Comment, error)
	DeleteComment(ctx context.Context, actor models.User, commentID int64) (int64, error)
}

// PurchaseService sells single episodes.
type PurchaseService interface {
	PurchaseEpisode(ctx context.Context, actor models.User, episodeID int64) (models.EpisodePurchase, error)
}

// PremiumService sells and reconciles premium subscriptions.
type PremiumService interface {
	PurchasePremium(ctx context.Context, actor models.User, req models.PremiumPurchaseRequest) (models.PremiumPurchase, error)
	GetStatus(ctx context.Context, actor models.User) (models.PremiumStatus, error)
}

// MaintenanceService runs the periodic sweeps. Every method processes all
// rows even when some of them fail and reports the joined error.
type MaintenanceService interface {
	// SweepPremium switches off elapsed subscriptions.
	SweepPremium(ctx context.Context) ([]models.PremiumTransition, error)
	// RecomputeRatings sets each commented movie's rating to the mean of
	// its active comments and returns how many movies were updated.
	RecomputeRatings(ctx context.Context) (int, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetAppInfo(ctx context.Context) models.AppInfo
}

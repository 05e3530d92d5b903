package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/MKhiriev/go-cinema/internal/config"
	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/service"
	"github.com/MKhiriev/go-cinema/internal/utils"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/gorilla/sessions"
	"github.com/shopspring/decimal"
)

// ─────────────────────────────────────────────
// Function-field fakes of the service layer
// ─────────────────────────────────────────────

type fakeAuthService struct {
	registerUserFn   func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	authenticateFn   func(ctx context.Context, credentials models.Credentials) (models.User, error)
	loginWithOAuthFn func(ctx context.Context, identity models.OAuthIdentity) (models.User, error)
	createTokenFn    func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn     func(ctx context.Context, tokenString string) (models.User, error)
}

func (f *fakeAuthService) RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return f.registerUserFn(ctx, req)
}

func (f *fakeAuthService) Authenticate(ctx context.Context, credentials models.Credentials) (models.User, error) {
	return f.authenticateFn(ctx, credentials)
}

func (f *fakeAuthService) LoginWithOAuth(ctx context.Context, identity models.OAuthIdentity) (models.User, error) {
	return f.loginWithOAuthFn(ctx, identity)
}

func (f *fakeAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if f.createTokenFn == nil {
		return models.Token{SignedString: "signed-for-" + user.Email}, nil
	}
	return f.createTokenFn(ctx, user)
}

func (f *fakeAuthService) ParseToken(ctx context.Context, tokenString string) (models.User, error) {
	return f.parseTokenFn(ctx, tokenString)
}

type fakeOAuthProvider struct {
	exchangeFn func(ctx context.Context, code string) (models.OAuthIdentity, error)
}

func (f *fakeOAuthProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.com/auth?state=" + state
}

func (f *fakeOAuthProvider) Exchange(ctx context.Context, code string) (models.OAuthIdentity, error) {
	return f.exchangeFn(ctx, code)
}

type fakeUserService struct {
	getProfileFn        func(ctx context.Context, actor models.User) (models.User, error)
	getUserFn           func(ctx context.Context, actor models.User, userID int64) (models.UserView, error)
	getUserByUsernameFn func(ctx context.Context, actor models.User, username string) (models.UserView, error)
	listUsersFn         func(ctx context.Context, actor models.User, page models.Page) ([]models.UserView, error)
	updateUserFn        func(ctx context.Context, actor models.User, userID int64, patch models.UserPatch) (models.User, error)
	deactivateUserFn    func(ctx context.Context, actor models.User, userID int64) (int64, error)
	changeRoleFn        func(ctx context.Context, actor models.User, userID int64, role models.Role) (models.User, error)
	setLevelFn          func(ctx context.Context, actor models.User, userID int64, level int) (models.User, error)
	addMoneyFn          func(ctx context.Context, actor models.User, userID int64, amount decimal.Decimal) (models.BalanceResponse, error)
}

func (f *fakeUserService) GetProfile(ctx context.Context, actor models.User) (models.User, error) {
	return f.getProfileFn(ctx, actor)
}

func (f *fakeUserService) GetUser(ctx context.Context, actor models.User, userID int64) (models.UserView, error) {
	return f.getUserFn(ctx, actor, userID)
}

func (f *fakeUserService) GetUserByUsername(ctx context.Context, actor models.User, username string) (models.UserView, error) {
	return f.getUserByUsernameFn(ctx, actor, username)
}

func (f *fakeUserService) ListUsers(ctx context.Context, actor models.User, page models.Page) ([]models.UserView, error) {
	return f.listUsersFn(ctx, actor, page)
}

func (f *fakeUserService) UpdateUser(ctx context.Context, actor models.User, userID int64, patch models.UserPatch) (models.User, error) {
	return f.updateUserFn(ctx, actor, userID, patch)
}

func (f *fakeUserService) DeactivateUser(ctx context.Context, actor models.User, userID int64) (int64, error) {
	return f.deactivateUserFn(ctx, actor, userID)
}

func (f *fakeUserService) ChangeRole(ctx context.Context, actor models.User, userID int64, role models.Role) (models.User, error) {
	return f.changeRoleFn(ctx, actor, userID, role)
}

func (f *fakeUserService) SetLevel(ctx context.Context, actor models.User, userID int64, level int) (models.User, error) {
	return f.setLevelFn(ctx, actor, userID, level)
}

func (f *fakeUserService) AddMoney(ctx context.Context, actor models.User, userID int64, amount decimal.Decimal) (models.BalanceResponse, error) {
	return f.addMoneyFn(ctx, actor, userID, amount)
}

type fakeMovieService struct {
	createMovieFn    func(ctx context.Context, actor models.User, movie models.NewMovie) (models.Movie, error)
	getMovieFn       func(ctx context.Context, actor models.User, movieID int64) (models.Movie, error)
	listMoviesFn     func(ctx context.Context, actor models.User, page models.Page) ([]models.Movie, error)
	updateMovieFn    func(ctx context.Context, actor models.User, movieID int64, patch models.MoviePatch) (models.Movie, error)
	deleteMovieFn    func(ctx context.Context, actor models.User, movieID int64) (int64, error)
	setAccessLevelFn func(ctx context.Context, actor models.User, movieID int64, level models.AccessLevel) (models.Movie, error)
}

func (f *fakeMovieService) CreateMovie(ctx context.Context, actor models.User, movie models.NewMovie) (models.Movie, error) {
	return f.createMovieFn(ctx, actor, movie)
}

func (f *fakeMovieService) GetMovie(ctx context.Context, actor models.User, movieID int64) (models.Movie, error) {
	return f.getMovieFn(ctx, actor, movieID)
}

func (f *fakeMovieService) ListMovies(ctx context.Context, actor models.User, page models.Page) ([]models.Movie, error) {
	return f.listMoviesFn(ctx, actor, page)
}

func (f *fakeMovieService) UpdateMovie(ctx context.Context, actor models.User, movieID int64, patch models.MoviePatch) (models.Movie, error) {
	return f.updateMovieFn(ctx, actor, movieID, patch)
}

func (f *fakeMovieService) DeleteMovie(ctx context.Context, actor models.User, movieID int64) (int64, error) {
	return f.deleteMovieFn(ctx, actor, movieID)
}

func (f *fakeMovieService) SetAccessLevel(ctx context.Context, actor models.User, movieID int64, level models.AccessLevel) (models.Movie, error) {
	return f.setAccessLevelFn(ctx, actor, movieID, level)
}

type fakeEpisodeService struct {
	createEpisodeFn func(ctx context.Context, actor models.User, episode models.NewEpisode) (models.EpisodeView, error)
	getEpisodeFn    func(ctx context.Context, actor models.User, episodeID int64) (models.EpisodeView, error)
	listEpisodesFn  func(ctx context.Context, actor models.User, movieID int64) ([]models.EpisodeView, error)
	updateEpisodeFn func(ctx context.Context, actor models.User, episodeID int64, patch models.EpisodePatch) (models.Episode, error)
	deleteEpisodeFn func(ctx context.Context, actor models.User, episodeID int64) (int64, error)
}

func (f *fakeEpisodeService) CreateEpisode(ctx context.Context, actor models.User, episode models.NewEpisode) (models.EpisodeView, error) {
	return f.createEpisodeFn(ctx, actor, episode)
}

func (f *fakeEpisodeService) GetEpisode(ctx context.Context, actor models.User, episodeID int64) (models.EpisodeView, error) {
	return f.getEpisodeFn(ctx, actor, episodeID)
}

func (f *fakeEpisodeService) ListEpisodes(ctx context.Context, actor models.User, movieID int64) ([]models.EpisodeView, error) {
	return f.listEpisodesFn(ctx, actor, movieID)
}

func (f *fakeEpisodeService) UpdateEpisode(ctx context.Context, actor models.User, episodeID int64, patch models.EpisodePatch) (models.Episode, error) {
	return f.updateEpisodeFn(ctx, actor, episodeID, patch)
}

func (f *fakeEpisodeService) DeleteEpisode(ctx context.Context, actor models.User, episodeID int64) (int64, error) {
	return f.deleteEpisodeFn(ctx, actor, episodeID)
}

type fakeCommentService struct {
	createCommentFn     func(ctx context.Context, actor models.User, comment models.NewComment) (models.Comment, error)
	listMovieCommentsFn func(ctx context.Context, actor models.User, movieID int64, page models.Page) ([]models.Comment, error)
	listUserCommentsFn  func(ctx context.Context, actor models.User, userID int64, page models.Page) ([]models.Comment, error)
	updateCommentFn     func(ctx context.Context, actor models.User, commentID int64, patch models.CommentPatch) (models.Comment, error)
	deleteCommentFn     func(ctx context.Context, actor models.User, commentID int64) (int64, error)
}

func (f *fakeCommentService) CreateComment(ctx context.Context, actor models.User, comment models.NewComment) (models.Comment, error) {
	return f.createCommentFn(ctx, actor, comment)
}

func (f *fakeCommentService) ListMovieComments(ctx context.Context, actor models.User, movieID int64, page models.Page) ([]models.Comment, error) {
	return f.listMovieCommentsFn(ctx, actor, movieID, page)
}

func (f *fakeCommentService) ListUserComments(ctx context.Context, actor models.User, userID int64, page models.Page) ([]models.Comment, error) {
	return f.listUserCommentsFn(ctx, actor, userID, page)
}

func (f *fakeCommentService) UpdateComment(ctx context.Context, actor models.User, commentID int64, patch models.CommentPatch) (models.Comment, error) {
	return f.updateCommentFn(ctx, actor, commentID, patch)
}

func (f *fakeCommentService) DeleteComment(ctx context.Context, actor models.User, commentID int64) (int64, error) {
	return f.deleteCommentFn(ctx, actor, commentID)
}

type fakePurchaseService struct {
	purchaseEpisodeFn func(ctx context.Context, actor models.User, episodeID int64) (models.EpisodePurchase, error)
}

func (f *fakePurchaseService) PurchaseEpisode(ctx context.Context, actor models.User, episodeID int64) (models.EpisodePurchase, error) {
	return f.purchaseEpisodeFn(ctx, actor, episodeID)
}

type fakePremiumService struct {
	purchasePremiumFn func(ctx context.Context, actor models.User, req models.PremiumPurchaseRequest) (models.PremiumPurchase, error)
	getStatusFn       func(ctx context.Context, actor models.User) (models.PremiumStatus, error)
}

func (f *fakePremiumService) PurchasePremium(ctx context.Context, actor models.User, req models.PremiumPurchaseRequest) (models.PremiumPurchase, error) {
	return f.purchasePremiumFn(ctx, actor, req)
}

func (f *fakePremiumService) GetStatus(ctx context.Context, actor models.User) (models.PremiumStatus, error) {
	return f.getStatusFn(ctx, actor)
}

type fakeAppInfoService struct {
	info models.AppInfo
}

func (f *fakeAppInfoService) GetAppVersion(_ context.Context) string {
	return f.info.Version
}

func (f *fakeAppInfoService) GetAppInfo(_ context.Context) models.AppInfo {
	return f.info
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func testConfig() *config.StructuredConfig {
	cfg := config.Defaults()
	cfg.Server.PublicRateLimit = 0
	cfg.OAuth.FrontendCallbackURL = "http://localhost:5173/auth/callback"
	return cfg
}

func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	if svcs.AppInfoService == nil {
		svcs.AppInfoService = &fakeAppInfoService{info: models.AppInfo{Version: "test"}}
	}
	store := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	return NewHandler(svcs, testConfig(), store, logger.Nop())
}

// withActor injects user and a nop logger the way the middleware chain
// does for authenticated routes.
func withActor(r *http.Request, user models.User) *http.Request {
	ctx := utils.WithUser(r.Context(), user)
	ctx = logger.Nop().WithContext(ctx)
	return r.WithContext(ctx)
}

func testUser(id int64, role models.Role) models.User {
	return models.User{
		UserID:   id,
		Username: "alice",
		Email:    "alice@example.com",
		Role:     role,
		IsActive: true,
		Money:    decimal.NewFromInt(100),
	}
}

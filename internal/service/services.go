package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-cinema/internal/config"
	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/internal/utils"
	"github.com/MKhiriev/go-cinema/internal/validators"
	"github.com/MKhiriev/go-cinema/models"
)

// Services aggregates the business services handed to the transport layer.
// OAuthProvider is nil while Google sign-in is not configured.
type Services struct {
	AuthService        AuthService
	OAuthProvider      OAuthProvider
	UserService        UserService
	MovieService       MovieService
	EpisodeService     EpisodeService
	CommentService     CommentService
	PurchaseService    PurchaseService
	PremiumService     PremiumService
	MaintenanceService MaintenanceService
	AppInfoService     AppInfoService
}

// NewServices wires every service over storages. The OAuth provider is
// constructed by the caller and injected as is.
func NewServices(
	storages *store.Storages,
	cfg *config.StructuredConfig,
	oauth OAuthProvider,
	build models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	validator := validators.NewRequestValidator(cfg.Premium.MaxMonths)
	now := time.Now

	return &Services{
		AuthService: NewAuthService(storages.Transactor, storages.UserRepository, storages.LoginAttemptRepository,
			validator, cfg.App, cfg.Auth, now, logger),
		OAuthProvider: oauth,
		UserService:   NewUserService(storages.UserRepository, validator, now, logger),
		MovieService:  NewMovieService(storages.MovieRepository, validator, now, logger),
		EpisodeService: NewEpisodeService(storages.MovieRepository, storages.EpisodeRepository,
			storages.PurchaseRepository, validator, now, logger),
		CommentService: NewCommentService(storages.MovieRepository, storages.CommentRepository, validator, now, logger),
		PurchaseService: NewPurchaseService(storages.Transactor, storages.UserRepository, storages.EpisodeRepository,
			storages.PurchaseRepository, storages.MovieRepository, now, logger),
		PremiumService: NewPremiumService(storages.Transactor, storages.UserRepository, validator,
			PremiumPricing{MonthlyPrice: cfg.Premium.MonthlyPriceDecimal(), DaysPerMonth: cfg.Premium.DaysPerMonth},
			utils.NewUUIDGenerator(), now, logger),
		MaintenanceService: NewMaintenanceService(storages.UserRepository, storages.MovieRepository,
			storages.CommentRepository, now, logger),
		AppInfoService: appInfoService,
	}, nil
}

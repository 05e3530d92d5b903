package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/MKhiriev/go-cinema/internal/config"
	"github.com/MKhiriev/go-cinema/internal/handler"
	"github.com/MKhiriev/go-cinema/internal/logger"
	"github.com/MKhiriev/go-cinema/internal/server"
	"github.com/MKhiriev/go-cinema/internal/service"
	"github.com/MKhiriev/go-cinema/internal/store"
	"github.com/MKhiriev/go-cinema/internal/utils"
	"github.com/MKhiriev/go-cinema/internal/workers"
	"github.com/MKhiriev/go-cinema/models"
	"github.com/gorilla/sessions"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// oauthStateMaxAge bounds the login round trip through the provider, seconds.
const oauthStateMaxAge = 600

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(build)

	log := logger.NewLogger("go-cinema-server")
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Str("http_address", cfg.Server.HTTPAddress).Str("grpc_address", cfg.Server.GRPCAddress).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	var oauth service.OAuthProvider
	if cfg.OAuth.Enabled() {
		provider, err := service.NewGoogleOAuthProvider(cfg.OAuth, utils.NewHTTPClient(cfg.OAuth.RequestTimeout))
		if err != nil {
			log.Fatal().Err(err).Msg("error creating oauth provider")
		}
		oauth = provider
	} else {
		log.Info().Msg("google sign-in is disabled")
	}

	services, err := service.NewServices(storages, cfg, oauth, build, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	sessionStore, err := newSessionStore(cfg.OAuth.SessionSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating session store")
	}

	handlers, err := handler.NewHandlers(services, cfg, sessionStore, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	background := workers.NewWorkers(services.MaintenanceService, cfg.Workers, log)

	srv, err := server.NewServer(handlers, background, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newSessionStore keys the OAuth state cookie with secret. Without one a
// random key is generated, so states do not survive a restart.
func newSessionStore(secret string) (sessions.Store, error) {
	if secret == "" {
		random, err := utils.RandomSecret(32)
		if err != nil {
			return nil, err
		}
		secret = random
	}

	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/api/auth",
		MaxAge:   oauthStateMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store, nil
}

func printBuildInfo(build models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", build.Version)
	fmt.Printf("Build date: %s\n", build.Date)
	fmt.Printf("Build commit: %s\n", build.Commit)
}

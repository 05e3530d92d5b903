package http

import (
	"net/http"

	"github.com/MKhiriev/go-cinema/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(metrics.Middleware)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.server.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", traceIDHeader},
		ExposedHeaders:   []string{traceIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.Compress(5))
	if h.server.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.server.RequestTimeout))
	}

	router.Get("/metrics", metrics.Handler().ServeHTTP)
	router.Get("/api/version", h.getServerVersion)

	// routes without authorization
	router.Route("/api/auth", func(r chi.Router) {
		r.Use(h.rateLimited)
		r.Post("/token", h.token)
		r.Get("/google/login", h.googleLogin)
		r.Get("/google/callback", h.googleCallback)
	})

	router.Route("/api/users", func(r chi.Router) {
		r.With(h.rateLimited).Post("/", h.register)

		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/", h.listUsers)
			r.Get("/me", h.getProfile)
			r.Get("/username/{username}", h.getUserByUsername)
			r.Get("/{id}", h.getUser)
			r.Patch("/{id}", h.updateUser)
			r.Delete("/{id}", h.deactivateUser)
			r.Patch("/{id}/role", h.changeRole)
			r.Patch("/{id}/level", h.setLevel)
			r.Post("/{id}/money/add", h.addMoney)
			r.Get("/{id}/comments", h.listUserComments)
		})
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/movies", func(r chi.Router) {
			r.Get("/", h.listMovies)
			r.Post("/", h.createMovie)
			r.Get("/{id}", h.getMovie)
			r.Patch("/{id}", h.updateMovie)
			r.Delete("/{id}", h.deleteMovie)
			r.Patch("/{id}/access-level", h.setAccessLevel)
		})

		r.Route("/api/episodes", func(r chi.Router) {
			r.Post("/", h.createEpisode)
			r.Get("/movie/{movie_id}", h.listEpisodes)
			r.Get("/{id}", h.getEpisode)
			r.Patch("/{id}", h.updateEpisode)
			r.Delete("/{id}", h.deleteEpisode)
			r.Post("/{id}/purchase", h.purchaseEpisode)
		})

		r.Route("/api/comments", func(r chi.Router) {
			r.Post("/", h.createComment)
			r.Get("/movie/{movie_id}", h.listMovieComments)
			r.Patch("/{id}", h.updateComment)
			r.Delete("/{id}", h.deleteComment)
		})

		r.Route("/api/premium", func(r chi.Router) {
			r.Post("/purchase", h.purchasePremium)
			r.Get("/status", h.premiumStatus)
		})
	})

	return router
}

package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Defaults returns the values used for every setting no source provided.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-cinema",
			TokenDuration: 30 * time.Minute,
			Version:       "dev",
		},
		Auth: Auth{
			MaxLoginAttempts:   5,
			LoginAttemptWindow: 15 * time.Minute,
			BcryptCost:         bcrypt.DefaultCost,
		},
		OAuth: OAuth{
			UserInfoURL:         "https://openidconnect.googleapis.com/v1/userinfo",
			FrontendCallbackURL: "http://localhost:5173/auth/callback",
			RequestTimeout:      10 * time.Second,
		},
		Premium: Premium{
			MonthlyPrice: "100",
			DaysPerMonth: 30,
			MaxMonths:    12,
		},
		Server: Server{
			HTTPAddress:        ":8080",
			RequestTimeout:     30 * time.Second,
			CORSAllowedOrigins: []string{"http://localhost:5173"},
			PublicRateLimit:    5,
			PublicRateBurst:    10,
		},
		Workers: Workers{
			PremiumSweepInterval: time.Hour,
			PremiumSweepBackoff:  time.Minute,
			RatingSweepInterval:  time.Minute,
		},
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Auth struct {
		MaxLoginAttempts   int      `json:"max_login_attempts"`
		LoginAttemptWindow Duration `json:"login_attempt_window"`
		BcryptCost         int      `json:"bcrypt_cost"`
	} `json:"auth,omitempty"`

	OAuth struct {
		GoogleClientID      string   `json:"google_client_id"`
		GoogleClientSecret  string   `json:"google_client_secret"`
		GoogleRedirectURL   string   `json:"google_redirect_url"`
		UserInfoURL         string   `json:"userinfo_url"`
		FrontendCallbackURL string   `json:"frontend_callback_url"`
		SessionSecret       string   `json:"session_secret"`
		RequestTimeout      Duration `json:"request_timeout"`
	} `json:"oauth,omitempty"`

	Premium struct {
		MonthlyPrice string `json:"monthly_price"`
		DaysPerMonth int    `json:"days_per_month"`
		MaxMonths    int    `json:"max_months"`
	} `json:"premium,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress        string   `json:"http_address"`
		GRPCAddress        string   `json:"grpc_address"`
		RequestTimeout     Duration `json:"request_timeout"`
		CORSAllowedOrigins []string `json:"cors_allowed_origins"`
		PublicRateLimit    float64  `json:"public_rate_limit"`
		PublicRateBurst    int      `json:"public_rate_burst"`
	} `json:"server,omitempty"`

	Workers struct {
		PremiumSweepInterval Duration `json:"premium_sweep_interval"`
		PremiumSweepBackoff  Duration `json:"premium_sweep_backoff"`
		RatingSweepInterval  Duration `json:"rating_sweep_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			Version:       jsonCfg.App.Version,
		},
		Auth: Auth{
			MaxLoginAttempts:   jsonCfg.Auth.MaxLoginAttempts,
			LoginAttemptWindow: time.Duration(jsonCfg.Auth.LoginAttemptWindow),
			BcryptCost:         jsonCfg.Auth.BcryptCost,
		},
		OAuth: OAuth{
			GoogleClientID:      jsonCfg.OAuth.GoogleClientID,
			GoogleClientSecret:  jsonCfg.OAuth.GoogleClientSecret,
			GoogleRedirectURL:   jsonCfg.OAuth.GoogleRedirectURL,
			UserInfoURL:         jsonCfg.OAuth.UserInfoURL,
			FrontendCallbackURL: jsonCfg.OAuth.FrontendCallbackURL,
			SessionSecret:       jsonCfg.OAuth.SessionSecret,
			RequestTimeout:      time.Duration(jsonCfg.OAuth.RequestTimeout),
		},
		Premium: Premium{
			MonthlyPrice: jsonCfg.Premium.MonthlyPrice,
			DaysPerMonth: jsonCfg.Premium.DaysPerMonth,
			MaxMonths:    jsonCfg.Premium.MaxMonths,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:        jsonCfg.Server.HTTPAddress,
			GRPCAddress:        jsonCfg.Server.GRPCAddress,
			RequestTimeout:     time.Duration(jsonCfg.Server.RequestTimeout),
			CORSAllowedOrigins: jsonCfg.Server.CORSAllowedOrigins,
			PublicRateLimit:    jsonCfg.Server.PublicRateLimit,
			PublicRateBurst:    jsonCfg.Server.PublicRateBurst,
		},
		Workers: Workers{
			PremiumSweepInterval: time.Duration(jsonCfg.Workers.PremiumSweepInterval),
			PremiumSweepBackoff:  time.Duration(jsonCfg.Workers.PremiumSweepBackoff),
			RatingSweepInterval:  time.Duration(jsonCfg.Workers.RatingSweepInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

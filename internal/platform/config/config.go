package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string

	// External OAuth Providers
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendBaseURL    string

	// External integration APIs
	ExternalAPIEnabled  bool
	CountryAPIURL       string
	CurrencyRatesAPIURL string

	// Analytics
	PosthogAPIKey string

	// Rate limit applied to public auth endpoints, limiter format (e.g. "10-M").
	AuthRateLimit string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "expense-management-app")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")
	viper.SetDefault("EXTERNAL_API_ENABLED", false)
	viper.SetDefault("COUNTRY_API_URL", "https://restcountries.com/v3.1")
	viper.SetDefault("CURRENCY_RATES_API_URL", "https://open.er-api.com/v6/latest")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("AUTH_RATE_LIMIT", "20-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY_DURATION: %w", err)
	}
	cfg.JWTExpiryDuration = jwtExpiry

	refreshExpiry, err := time.ParseDuration(viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_TOKEN_EXPIRY_DURATION: %w", err)
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiry
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")

	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	cfg.ExternalAPIEnabled = viper.GetBool("EXTERNAL_API_ENABLED")
	cfg.CountryAPIURL = viper.GetString("COUNTRY_API_URL")
	cfg.CurrencyRatesAPIURL = viper.GetString("CURRENCY_RATES_API_URL")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.AuthRateLimit = viper.GetString("AUTH_RATE_LIMIT")

	return cfg, nil
}

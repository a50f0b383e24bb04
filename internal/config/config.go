package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	// AppURL is the externally reachable base URL used to build the
	// confirmation links embedded in outbound emails.
	AppURL string

	BrandName    string
	BrandPrimary string

	// JWTSecret signs confirmation tokens. Required; Load fails without it.
	JWTSecret string
	TokenTTL  time.Duration

	OTPTTL         time.Duration
	OTPMaxAttempts int
	SweepInterval  time.Duration

	SendTimeout  time.Duration
	ProbeTimeout time.Duration

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPFromName string
	SMTPUsername string
	SMTPPassword string

	AllowedOrigins []string // CORS allowed origins
}

// ErrMissingJWTSecret is returned by Load when JWT_SECRET is unset.
// The process must not start without a signing secret.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, ErrMissingJWTSecret
	}

	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),
		AppURL:  getEnv("APP_URL", "http://localhost:3000"),

		BrandName:    getEnv("BRAND_NAME", "Your Brand"),
		BrandPrimary: getEnv("BRAND_PRIMARY", "#0F62FE"),

		JWTSecret: secret,
		TokenTTL:  time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,

		OTPTTL:         10 * time.Minute,
		OTPMaxAttempts: 5,
		SweepInterval:  60 * time.Second,

		SendTimeout:  45 * time.Second,
		ProbeTimeout: 15 * time.Second,

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@example.com"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "No-Reply"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}, nil
}

// IsProduction reports whether the service runs with production behavior
// (token previews stripped from responses).
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

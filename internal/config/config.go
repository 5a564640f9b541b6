package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Redis (optional session storage backend)
	RedisURL string

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLS      string // "tls", "starttls", or "none"

	// Email notification toggles
	EmailNotifyModeratorsOnSubmit bool
	EmailNotifyUserOnApproval     bool
	EmailNotifyUserOnRejection    bool

	// Jobs
	StatsReconcileInterval time.Duration // how often the ledger reconciler runs
	StatsMaxAge            time.Duration // ledger rows older than this get recomputed

	// Submission limits (per submission form)
	MaxMeaningsPerWord    int
	MaxExamplesPerMeaning int

	// Site Branding
	SiteTitle   string // env: SITE_TITLE, default: "Lexipedia"
	SiteTagline string // env: SITE_TAGLINE
	SiteFooter  string // env: SITE_FOOTER
	SiteLogoURL string // env: SITE_LOGO_URL, default: "" (no logo, text only)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/lexipedia?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),

		OIDCIssuer:       getEnv("OIDC_ISSUER", ""),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),

		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:   getEnv("CORS_ORIGINS", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", ""),
		SMTPTLS:      getEnv("SMTP_TLS", "starttls"),

		EmailNotifyModeratorsOnSubmit: getEnv("EMAIL_NOTIFY_MODERATORS_ON_SUBMIT", "true") == "true",
		EmailNotifyUserOnApproval:     getEnv("EMAIL_NOTIFY_USER_ON_APPROVAL", "true") == "true",
		EmailNotifyUserOnRejection:    getEnv("EMAIL_NOTIFY_USER_ON_REJECTION", "true") == "true",

		StatsReconcileInterval: getEnvDuration("STATS_RECONCILE_INTERVAL", time.Hour),
		StatsMaxAge:            getEnvDuration("STATS_MAX_AGE", 24*time.Hour),

		MaxMeaningsPerWord:    getEnvInt("MAX_MEANINGS_PER_WORD", 5),
		MaxExamplesPerMeaning: getEnvInt("MAX_EXAMPLES_PER_MEANING", 3),

		SiteTitle:   getEnv("SITE_TITLE", "Lexipedia"),
		SiteTagline: getEnv("SITE_TAGLINE", "A community dictionary built by its speakers"),
		SiteFooter:  getEnv("SITE_FOOTER", "Lexipedia - A community dictionary"),
		SiteLogoURL: getEnv("SITE_LOGO_URL", ""),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if SMTP is configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

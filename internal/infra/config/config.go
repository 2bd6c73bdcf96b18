package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application.
type AppConfig struct {
	DatabaseURL string
	DBMaxConns  int
	Store       string // "postgres" or "memory" (memory is for local dev only)
	HTTPAddr    string

	// Timezone is the single reference civil zone every schedule is evaluated
	// in. Per-user zones are a known non-goal.
	Timezone         string
	CronSpecReminder string
	NotifyTimeout    time.Duration

	SendGridAPIKey string
	MailFromEmail  string
	MailFromName   string
	TelegramToken  string // Telegram channel is disabled when empty

	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.Store = strings.ToLower(os.Getenv("STORE"))
	if cfg.Store == "" {
		cfg.Store = "postgres"
	}
	if cfg.Store != "postgres" && cfg.Store != "memory" {
		return nil, fmt.Errorf("invalid STORE %q: must be postgres or memory", cfg.Store)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.Store == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	cfg.DBMaxConns = 25
	if v := os.Getenv("DB_MAX_CONNS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid DB_MAX_CONNS %q", v)
		}
		cfg.DBMaxConns = n
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.Timezone = os.Getenv("TIMEZONE")
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Kolkata"
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	cfg.CronSpecReminder = os.Getenv("CRON_SPEC_REMINDER")
	if cfg.CronSpecReminder == "" {
		cfg.CronSpecReminder = "* * * * *" // Default: every minute
	}

	notifyTimeout := os.Getenv("NOTIFY_TIMEOUT")
	if notifyTimeout == "" {
		notifyTimeout = "10s"
	}
	d, err := time.ParseDuration(notifyTimeout)
	if err != nil || d <= 0 {
		return nil, fmt.Errorf("invalid NOTIFY_TIMEOUT %q", notifyTimeout)
	}
	cfg.NotifyTimeout = d

	cfg.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	if cfg.SendGridAPIKey == "" {
		return nil, fmt.Errorf("SENDGRID_API_KEY is not set")
	}
	cfg.MailFromEmail = os.Getenv("MAIL_FROM_EMAIL")
	if cfg.MailFromEmail == "" {
		return nil, fmt.Errorf("MAIL_FROM_EMAIL is not set")
	}
	cfg.MailFromName = os.Getenv("MAIL_FROM_NAME")
	if cfg.MailFromName == "" {
		cfg.MailFromName = "Medicine Reminder"
	}

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	return cfg, nil
}

// Location resolves the configured reference zone. Load has already validated
// it, so a failure here is programmer error.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		panic(fmt.Sprintf("timezone %q validated at load but failed to resolve: %v", c.Timezone, err))
	}
	return loc
}

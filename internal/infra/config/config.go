package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken   string
	DatabaseURL     string
	AdminTelegramID int64
	CronSecret      string // shared secret for the external trigger endpoint
	HTTPAddr        string
	HolidaysFile    string
	Timezone        string // IANA zone of the organization, e.g. Asia/Taipei
	VoteQuorum      int
	CronSpecDaily   string
	LogLevel        string
	Environment     string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
	if adminIDStr == "" {
		return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
	}
	cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
	}

	cfg.CronSecret = os.Getenv("CRON_SECRET")
	if cfg.CronSecret == "" {
		return nil, fmt.Errorf("CRON_SECRET is not set")
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	cfg.HolidaysFile = os.Getenv("HOLIDAYS_FILE")
	if cfg.HolidaysFile == "" {
		cfg.HolidaysFile = "holidays.json"
	}

	cfg.Timezone = os.Getenv("TIMEZONE")
	if cfg.Timezone == "" {
		cfg.Timezone = "Asia/Taipei"
	}

	quorumStr := os.Getenv("VOTE_QUORUM")
	if quorumStr == "" {
		cfg.VoteQuorum = 3 // Default quorum
	} else {
		cfg.VoteQuorum, err = strconv.Atoi(quorumStr)
		if err != nil || cfg.VoteQuorum < 1 {
			return nil, fmt.Errorf("invalid VOTE_QUORUM: %q", quorumStr)
		}
	}

	cfg.CronSpecDaily = os.Getenv("CRON_SPEC_DAILY")
	if cfg.CronSpecDaily == "" {
		cfg.CronSpecDaily = "0 10 * * *" // Default: 10:00 AM daily
	}

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

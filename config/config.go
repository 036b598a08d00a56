// Package config loads runtime settings from the environment and an optional
// .env file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"cinema-booking-cli/store"
)

type Config struct {
	// BookingsFile is the flat file used when DatabaseURL is empty.
	BookingsFile string
	// DatabaseURL switches booking storage to PostgreSQL.
	DatabaseURL string
	ReceiptDir  string

	Log LogConfig
}

type LogConfig struct {
	Level string
	File  string
}

// Load reads configuration. A missing .env file is not an error.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		BookingsFile: getEnv("CINEMA_BOOKINGS_FILE", ""),
		DatabaseURL:  getEnv("CINEMA_DATABASE_URL", ""),
		ReceiptDir:   getEnv("CINEMA_RECEIPT_DIR", "."),
		Log: LogConfig{
			Level: getEnv("CINEMA_LOG_LEVEL", "info"),
			File:  getEnv("CINEMA_LOG_FILE", ""),
		},
	}

	if cfg.BookingsFile == "" {
		path, err := store.DefaultBookingsPath()
		if err != nil {
			return Config{}, err
		}
		cfg.BookingsFile = path
	}
	cfg.BookingsFile = expandHome(cfg.BookingsFile)
	cfg.ReceiptDir = expandHome(cfg.ReceiptDir)

	if cfg.Log.File == "" {
		path, err := store.ConfigPath("cinema.log")
		if err != nil {
			return Config{}, err
		}
		cfg.Log.File = path
	}
	cfg.Log.File = expandHome(cfg.Log.File)
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setTestHome(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	t.Setenv("HOME", root)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, ".config"))
	for _, key := range []string{"CINEMA_BOOKINGS_FILE", "CINEMA_DATABASE_URL", "CINEMA_RECEIPT_DIR", "CINEMA_LOG_LEVEL", "CINEMA_LOG_FILE"} {
		t.Setenv(key, "")
	}
	t.Chdir(root)
	return root
}

func TestLoad_Defaults(t *testing.T) {
	root := setTestHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.BookingsFile != filepath.Join(root, "cinema_bookings.csv") {
		t.Fatalf("unexpected bookings file: %s", cfg.BookingsFile)
	}
	if cfg.DatabaseURL != "" {
		t.Fatalf("expected empty database url, got %q", cfg.DatabaseURL)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("expected info log level, got %q", cfg.Log.Level)
	}
	if cfg.Log.File != filepath.Join(root, ".config", "cinema-booking-cli", "cinema.log") {
		t.Fatalf("unexpected log file: %s", cfg.Log.File)
	}
	if cfg.ReceiptDir != "." {
		t.Fatalf("unexpected receipt dir: %s", cfg.ReceiptDir)
	}
}

func TestLoad_Environment(t *testing.T) {
	root := setTestHome(t)
	t.Setenv("CINEMA_BOOKINGS_FILE", "~/data/bookings.txt")
	t.Setenv("CINEMA_LOG_LEVEL", "debug")
	t.Setenv("CINEMA_DATABASE_URL", "postgres://localhost/cinema")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.BookingsFile != filepath.Join(root, "data", "bookings.txt") {
		t.Fatalf("unexpected bookings file: %s", cfg.BookingsFile)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("expected debug log level, got %q", cfg.Log.Level)
	}
	if cfg.DatabaseURL != "postgres://localhost/cinema" {
		t.Fatalf("unexpected database url: %q", cfg.DatabaseURL)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	root := setTestHome(t)
	os.Unsetenv("CINEMA_RECEIPT_DIR")
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte("CINEMA_RECEIPT_DIR=/tmp/receipts\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.ReceiptDir != "/tmp/receipts" {
		t.Fatalf("unexpected receipt dir: %s", cfg.ReceiptDir)
	}
}

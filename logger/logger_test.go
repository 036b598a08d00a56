package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("expected %v for %q, got %v", want, in, got)
		}
	}
}

func TestNew_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelWarn)
	log.Info("hidden")
	log.Warn("shown", slog.String("seat", "A1"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("expected info record to be dropped, got %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "seat=A1") {
		t.Fatalf("expected warn record, got %q", out)
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cinema.log")
	log, closeFn, err := OpenFile(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	log.Info("booking saved")
	if err := closeFn(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !strings.Contains(string(data), "booking saved") {
		t.Fatalf("unexpected log content: %q", data)
	}
}

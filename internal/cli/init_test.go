package cli

import (
	"context"
	"log/slog"
	"testing"

	"fintrack/internal/config"
)

func TestSetupLoggerUsesConfiguredLevel(t *testing.T) {
	logger := SetupLogger(&config.Config{LogLevel: "debug", LogFormat: "json"})
	if logger == nil {
		t.Fatal("SetupLogger() returned nil")
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug level to be enabled")
	}
}

func TestSetupLoggerDefaults(t *testing.T) {
	logger := SetupLogger(nil)
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled by default")
	}
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be enabled by default")
	}
}

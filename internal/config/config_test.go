package config

import (
	"testing"
	"time"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/exercisetracker")
}

func TestLoad_AllRequiredVarsSet_ReturnsConfig(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.MongoURI != "mongodb://localhost:27017/exercisetracker" {
		t.Errorf("MongoURI = %q, want %q", cfg.MongoURI, "mongodb://localhost:27017/exercisetracker")
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("MONGO_DATABASE", "")
	t.Setenv("PORT", "")
	t.Setenv("SHUTDOWN_TIMEOUT", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.MongoDatabase != "" {
		t.Errorf("MongoDatabase = %q, want empty", cfg.MongoDatabase)
	}
	if cfg.ServerPort != "3000" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "3000")
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, 30*time.Second)
	}
	if cfg.CORSAllowedOrigin != "*" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "*")
	}
	if cfg.RateLimitPerMinute != 0 {
		t.Errorf("RateLimitPerMinute = %d, want 0", cfg.RateLimitPerMinute)
	}
	if cfg.RateLimitEnabled() {
		t.Error("rate limit should be disabled by default")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setRequiredEnvVars(t)

	t.Setenv("MONGO_DATABASE", "tracker")
	t.Setenv("PORT", "8080")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://example.com")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "120")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.MongoDatabase != "tracker" {
		t.Errorf("MongoDatabase = %q, want %q", cfg.MongoDatabase, "tracker")
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, 5*time.Second)
	}
	if cfg.CORSAllowedOrigin != "https://example.com" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "https://example.com")
	}
	if cfg.RateLimitPerMinute != 120 {
		t.Errorf("RateLimitPerMinute = %d, want %d", cfg.RateLimitPerMinute, 120)
	}
	if !cfg.RateLimitEnabled() {
		t.Error("rate limit should be enabled")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
}

func TestLoad_InvalidValues_FallBackToDefaults(t *testing.T) {
	setRequiredEnvVars(t)

	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "lots")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("ShutdownTimeout = %v, want %v", cfg.ShutdownTimeout, 30*time.Second)
	}
	if cfg.RateLimitPerMinute != 0 {
		t.Errorf("RateLimitPerMinute = %d, want 0", cfg.RateLimitPerMinute)
	}
}

func TestLoad_NegativeRateLimit_ReturnsError(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("RATE_LIMIT_PER_MINUTE", "-1")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for negative RATE_LIMIT_PER_MINUTE, got nil")
	}
}

func TestLoad_MissingMongoURI_ReturnsError(t *testing.T) {
	t.Setenv("MONGO_URI", "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing MONGO_URI, got nil")
	}
}

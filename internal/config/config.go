package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// MongoDB
	MongoURI      string
	MongoDatabase string // 空の場合は接続文字列のパス、それもなければ "test"

	// Server
	ServerPort      string
	ShutdownTimeout time.Duration

	// CORS
	CORSAllowedOrigin string

	// Rate Limit（0で無効）
	RateLimitPerMinute int

	// Logging
	LogLevel string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.MongoURI = os.Getenv("MONGO_URI")
	if cfg.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.MongoDatabase = getEnvString("MONGO_DATABASE", "")
	cfg.ServerPort = getEnvString("PORT", "3000")
	cfg.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "*")
	cfg.RateLimitPerMinute = getEnvInt("RATE_LIMIT_PER_MINUTE", 0)
	cfg.LogLevel = getEnvString("LOG_LEVEL", "info")

	if cfg.RateLimitPerMinute < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must not be negative: %d", cfg.RateLimitPerMinute)
	}

	return cfg, nil
}

// RateLimitEnabled はレート制限が有効かどうかを返す。
func (c *Config) RateLimitEnabled() bool {
	return c.RateLimitPerMinute > 0
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Strategy defaults (CLI flags and API requests can override per call)
	Strategy StrategyConfig

	// Market data
	Market MarketConfig

	// Storage
	DataDir  string
	Database DatabaseConfig

	// Reminder
	Reminder ReminderConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// StrategyConfig holds the VR strategy defaults
type StrategyConfig struct {
	Ticker  string
	D       float64 // 공격성 분모
	Band    float64 // 밴드폭
	Contrib float64 // 2주 적립금
}

// MarketConfig holds price-source configuration
type MarketConfig struct {
	YahooBaseURL string
	StooqBaseURL string
	Timeout      time.Duration
	RatePerSec   float64 // outbound request rate limit
	Burst        int
}

// DatabaseConfig holds optional PostgreSQL configuration.
// When URL is empty the CSV file store is used instead.
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// ReminderConfig holds calendar-reminder configuration
type ReminderConfig struct {
	Hour     int    // 알림 시각 (0-23)
	Timezone string // IANA name, 기본 Asia/Seoul
	Title    string
}

// Load reads configuration from environment variables
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8090"),
		Env:  getEnv("ENV", "development"),

		Strategy: StrategyConfig{
			Ticker:  getEnv("TICKER", "TQQQ"),
			D:       getEnvAsFloat("VR_D", 11),
			Band:    getEnvAsFloat("VR_BAND", 0.15),
			Contrib: getEnvAsFloat("VR_CONTRIB", 0),
		},

		Market: MarketConfig{
			YahooBaseURL: getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
			StooqBaseURL: getEnv("STOOQ_BASE_URL", "https://stooq.com"),
			Timeout:      getEnvAsDuration("MARKET_TIMEOUT", "15s"),
			RatePerSec:   getEnvAsFloat("MARKET_RATE_PER_SEC", 2),
			Burst:        getEnvAsInt("MARKET_RATE_BURST", 4),
		},

		DataDir: getEnv("DATA_DIR", "data"),
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 4),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		Reminder: ReminderConfig{
			Hour:     getEnvAsInt("REMINDER_HOUR", 9),
			Timezone: getEnv("REMINDER_TZ", "Asia/Seoul"),
			Title:    getEnv("REMINDER_TITLE", "VR 5.0 리밸런싱 점검"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are usable
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Strategy.D <= 0 {
		return fmt.Errorf("VR_D must be > 0")
	}

	// UI 입력 범위는 (0, 0.5], 엔진 한계는 (0, 1)
	if c.Strategy.Band <= 0 || c.Strategy.Band >= 1 {
		return fmt.Errorf("VR_BAND must be in (0, 1)")
	}

	if c.Reminder.Hour < 0 || c.Reminder.Hour > 23 {
		return fmt.Errorf("REMINDER_HOUR must be in [0, 23]")
	}

	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR must not be empty")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to default
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

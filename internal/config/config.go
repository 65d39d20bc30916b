package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port         string
	DBConn       string
	LogLevel     string
	JWTSecret    string
	JWTTTL       time.Duration
	RedisAddr    string
	CacheTTL     time.Duration
	BenchmarkURL string
	CronSpec     string
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string

	// Platform defaults assigned to every new user.
	DefaultRate          int
	DefaultCreditBalance float64
	DefaultTermCap       int
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBConn:       getEnv("DB_CONN", "host=localhost port=5432 user=test password=test dbname=cashkick sslmode=disable"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
		JWTTTL:       getDuration("JWT_TTL", time.Hour),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTTL:     getDuration("CACHE_TTL", time.Hour),
		BenchmarkURL: getEnv("BENCHMARK_URL", "https://www.cbr.ru/DailyInfoWebServ/DailyInfo.asmx"),
		CronSpec:     getEnv("MATURITY_CRON", "@every 1h"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "noreply@finbridge.io"),

		DefaultRate:          getInt("DEFAULT_RATE", 12),
		DefaultCreditBalance: getFloat("DEFAULT_CREDIT_BALANCE", 10000),
		DefaultTermCap:       getInt("DEFAULT_TERM_CAP", 12),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.DefaultRate < 0 || cfg.DefaultRate > 100 {
		return nil, fmt.Errorf("DEFAULT_RATE must be between 0 and 100")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

func getFloat(key string, defaultVal float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getDuration(key string, defaultVal time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

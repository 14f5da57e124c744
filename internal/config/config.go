package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"
)

type Config struct {
	GinMode  string
	HTTPAddr string
	LogLevel string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	RedisHost     string
	RedisPort     string
	SessionSecret string

	FootballAPIBaseURL string
	FootballAPIHost    string
	FootballAPIKey     string
	FootballSeason     int
	FootballAPITimeout time.Duration

	StorageDriver     string
	MediaRoot         string
	MediaURL          string
	S3Endpoint        string
	S3Region          string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Bucket          string
	S3PublicBaseURL   string
}

// DefaultSessionSecret signs development sessions only. Load rejects it in
// release mode.
const DefaultSessionSecret = "default-secret-key-change-me"

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GinMode:  getEnv("GIN_MODE", "debug"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		LogLevel: strings.ToLower(getEnv("LOG_LEVEL", "info")),

		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "homebase"),
		DBPassword: getEnv("DB_PASSWORD", "homebase"),
		DBName:     getEnv("DB_NAME", "homebase"),
		DBPath:     getEnv("DB_PATH", "homebase.db"),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", DefaultSessionSecret),

		FootballAPIBaseURL: getEnv("FOOTBALL_API_BASE_URL", "https://v3.football.api-sports.io"),
		FootballAPIHost:    getEnv("FOOTBALL_API_HOST", "v3.football.api-sports.io"),
		FootballAPIKey:     getEnv("FOOTBALL_API_KEY", ""),

		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", StorageLocal)),
		MediaRoot:         getEnv("MEDIA_ROOT", "media"),
		MediaURL:          getEnv("MEDIA_URL", "/media/"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3Region:          getEnv("S3_REGION", "auto"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
	}

	if cfg.IsProduction() && cfg.SessionSecret == DefaultSessionSecret {
		return nil, fmt.Errorf("SESSION_SECRET must be set when GIN_MODE=release")
	}

	switch cfg.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("unsupported LOG_LEVEL %q", cfg.LogLevel)
	}

	season, err := getEnvAsInt("FOOTBALL_SEASON", 2025)
	if err != nil {
		return nil, fmt.Errorf("parse FOOTBALL_SEASON: %w", err)
	}
	if season <= 0 {
		return nil, fmt.Errorf("FOOTBALL_SEASON must be positive, got %d", season)
	}
	cfg.FootballSeason = season

	timeout, err := getEnvAsDuration("FOOTBALL_API_TIMEOUT", 20*time.Second)
	if err != nil {
		return nil, fmt.Errorf("parse FOOTBALL_API_TIMEOUT: %w", err)
	}
	cfg.FootballAPITimeout = timeout

	switch cfg.StorageDriver {
	case StorageLocal:
	case StorageS3:
		if cfg.S3Bucket == "" || cfg.S3AccessKeyID == "" || cfg.S3SecretAccessKey == "" {
			return nil, fmt.Errorf("S3_BUCKET, S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY are required when STORAGE_DRIVER=s3")
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	return strconv.Atoi(value)
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue, nil
	}
	return time.ParseDuration(value)
}

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingJWTSecret is returned by Load when JWT_SECRET is unset.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is not set")

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort        string
	AppEnv         string
	LogLevel       string
	LogFormat      string
	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	JWTSecret      string
	JWTExpiry      time.Duration
	Quran          QuranAPI
	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users     string
	Bookmarks string
}

// QuranAPI configures the upstream content API client.
type QuranAPI struct {
	BaseURL      string
	AudioBaseURL string
	RecitationID int
	Timeout      time.Duration
	RPS          float64
	Concurrency  int
}

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		AppPort:        getEnv("APP_PORT", "5000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:     getEnv("DYNAMO_TABLE_USERS", "users"),
			Bookmarks: getEnv("DYNAMO_TABLE_BOOKMARKS", "bookmarks"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTExpiry: getEnvDuration("JWT_EXPIRY", 24*time.Hour),
		Quran: QuranAPI{
			BaseURL:      strings.TrimRight(getEnv("QURAN_API_BASE_URL", "https://api.quran.com/api/v4"), "/"),
			AudioBaseURL: getEnv("QURAN_AUDIO_BASE_URL", "https://verses.quran.com/"),
			RecitationID: getEnvInt("QURAN_RECITATION_ID", 2),
			Timeout:      getEnvDuration("QURAN_API_TIMEOUT", 10*time.Second),
			RPS:          getEnvFloat("QURAN_API_RPS", 10),
			Concurrency:  getEnvInt("QURAN_API_CONCURRENCY", 8),
		},
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings ("90m", "24h").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

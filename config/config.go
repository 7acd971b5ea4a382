package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime parameters of the application.
type Config struct {
	DatabasePath string
	JWTSecretKey string
	TokenTTL     time.Duration
	ServerPort   int

	// Cloudflare R2 credentials. All five must be set for media uploads to
	// be enabled; otherwise the upload endpoints answer 503.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
}

// Load reads configuration from environment variables, optionally seeded
// from a .env file. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	databasePath := os.Getenv("DATABASE_PATH")
	if databasePath == "" {
		databasePath = "matchpoint.db"
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	tokenTTL := 30 * time.Minute
	if ttlStr := os.Getenv("TOKEN_TTL_MINUTES"); ttlStr != "" {
		minutes, err := strconv.Atoi(ttlStr)
		if err != nil || minutes <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL_MINUTES environment variable: %q", ttlStr)
		}
		tokenTTL = time.Duration(minutes) * time.Minute
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	return &Config{
		DatabasePath:      databasePath,
		JWTSecretKey:      jwtKey,
		TokenTTL:          tokenTTL,
		ServerPort:        port,
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}, nil
}

// R2Enabled reports whether the full set of R2 credentials is present.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != "" &&
		c.R2AccessKeyID != "" &&
		c.R2SecretAccessKey != "" &&
		c.R2BucketName != "" &&
		c.R2PublicBaseURL != ""
}

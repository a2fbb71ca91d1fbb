package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/sadopc/studydesk/internal/cache"
)

type Config struct {
	APIURL      string
	CachePath   string
	LogFile     string
	LogLevel    string
	HTTPTimeout time.Duration
}

// Load reads .env from the working directory if present, then the process
// environment. Real environment variables win over .env entries.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cachePath, err := cache.DefaultPath()
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(cachePath)

	timeout, err := time.ParseDuration(getEnv("STUDYDESK_HTTP_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("parse STUDYDESK_HTTP_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("STUDYDESK_HTTP_TIMEOUT must be positive, got %s", timeout)
	}

	return &Config{
		APIURL:      strings.TrimRight(getEnv("STUDYDESK_API_URL", "http://localhost:3000"), "/"),
		CachePath:   getEnv("STUDYDESK_CACHE_PATH", cachePath),
		LogFile:     getEnv("STUDYDESK_LOG_FILE", filepath.Join(dir, "studydesk.log")),
		LogLevel:    strings.ToLower(getEnv("STUDYDESK_LOG_LEVEL", "info")),
		HTTPTimeout: timeout,
	}, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

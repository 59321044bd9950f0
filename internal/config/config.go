// internal/config/config.go

package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend names accepted by SCRAPER_BACKEND
const (
	BackendYtDlp   = "yt-dlp"
	BackendSkraper = "skraper"
	BackendFixture = "fixture"
)

// DefaultCorsOrigins are the frontends allowed to call the API
var DefaultCorsOrigins = []string{
	"https://skrapper.netlify.app",
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5000",
	"https://skraper-api.onrender.com",
}

// Config holds all application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	NATS        NATSConfig
	Scraper     ScraperConfig
	Analytics   AnalyticsConfig
	Log         LogConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CorsOrigins     []string
}

// NATSConfig holds NATS configuration. An empty URL selects the in-process bus.
type NATSConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectTimeout time.Duration
}

// ScraperConfig holds scraping backend configuration
type ScraperConfig struct {
	Backend         string
	Path            string
	Timeout         time.Duration
	MaxConcurrent   int
	AvailabilityTTL time.Duration
	FallbackFixture bool
	EventsTopic     string
}

// AnalyticsConfig holds analytics configuration
type AnalyticsConfig struct {
	FollowerBaseline float64
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
	File  string
}

// Load loads configuration from environment variables, after reading a .env
// file when one exists.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment
func FromEnv() (Config, error) {
	scraperTimeout := getEnvAsDuration("SCRAPER_TIMEOUT", 300*time.Second)

	config := Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			// PORT is what hosting platforms inject
			Port:            getEnvAsInt("PORT", getEnvAsInt("SERVER_PORT", 5000)),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", scraperTimeout+30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CorsOrigins:     getEnvAsSlice("SERVER_CORS_ORIGINS", DefaultCorsOrigins),
		},
		NATS: NATSConfig{
			URL:            getEnv("NATS_URL", ""),
			MaxReconnects:  getEnvAsInt("NATS_MAX_RECONNECTS", 10),
			ReconnectWait:  getEnvAsDuration("NATS_RECONNECT_WAIT", 1*time.Second),
			ConnectTimeout: getEnvAsDuration("NATS_CONNECT_TIMEOUT", 2*time.Second),
		},
		Scraper: ScraperConfig{
			Backend:         strings.ToLower(getEnv("SCRAPER_BACKEND", BackendYtDlp)),
			Path:            getEnv("SCRAPER_PATH", ""),
			Timeout:         scraperTimeout,
			MaxConcurrent:   getEnvAsInt("SCRAPER_MAX_CONCURRENT", 4),
			AvailabilityTTL: getEnvAsDuration("SCRAPER_AVAILABILITY_TTL", time.Minute),
			FallbackFixture: getEnvAsBool("SCRAPER_FALLBACK_FIXTURE", false),
			EventsTopic:     getEnv("SCRAPE_EVENTS_TOPIC", "scrape"),
		},
		Analytics: AnalyticsConfig{
			FollowerBaseline: getEnvAsFloat("ANALYTICS_FOLLOWER_BASELINE", 10000),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	return config, Validate(config)
}

// Validate checks if config is valid
func Validate(config Config) error {
	switch config.Scraper.Backend {
	case BackendYtDlp, BackendSkraper, BackendFixture:
	default:
		return fmt.Errorf("unknown scraper backend %q", config.Scraper.Backend)
	}

	if config.Scraper.Timeout <= 0 {
		return fmt.Errorf("scraper timeout must be positive")
	}
	if config.Scraper.MaxConcurrent < 1 {
		return fmt.Errorf("scraper max concurrency must be at least 1")
	}
	if baseline := config.Analytics.FollowerBaseline; math.IsNaN(baseline) || math.IsInf(baseline, 0) {
		return fmt.Errorf("follower baseline must be a finite number")
	}
	if config.Analytics.FollowerBaseline <= 0 {
		return fmt.Errorf("follower baseline must be greater than zero")
	}
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", config.Server.Port)
	}
	if config.Server.WriteTimeout <= config.Scraper.Timeout {
		return fmt.Errorf("server write timeout (%s) must exceed the scraper timeout (%s)",
			config.Server.WriteTimeout, config.Scraper.Timeout)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			values = append(values, p)
		}
	}
	return values
}

package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string

	// Routing provider (geocoding + driving durations). Best effort: the
	// booking flow keeps working when it is down.
	GeocodeBaseURL     string
	RoutingBaseURL     string
	RoutingTimeout     time.Duration
	RoutingMinInterval time.Duration

	// SMTP for appointment notifications. Leave SMTP_HOST empty to disable
	// outgoing mail (useful in dev).
	SMTPHost string
	SMTPPort string
	SMTPFrom string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.GeocodeBaseURL = getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org")
	cfg.RoutingBaseURL = getEnv("ROUTING_BASE_URL", "https://router.project-osrm.org")

	// Bounded timeout per routing call, parse as time.Duration (e.g. "5s").
	cfg.RoutingTimeout, err = getEnvAsDuration("ROUTING_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	// The public routing providers allow roughly one lookup per second.
	cfg.RoutingMinInterval, err = getEnvAsDuration("ROUTING_MIN_INTERVAL", time.Second)
	if err != nil {
		return nil, err
	}

	cfg.SMTPHost = getEnv("SMTP_HOST", "")
	cfg.SMTPPort = getEnv("SMTP_PORT", "25")
	cfg.SMTPFrom = getEnv("SMTP_FROM", "no-reply@ouestimmo.local")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsDuration retrieves an environment variable as a time.Duration.
// It returns the default value if the variable is not set.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}

	return val, nil
}

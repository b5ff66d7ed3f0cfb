package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds process settings read from the environment
type Config struct {
	Addr           string
	Environment    string
	DatabaseURL    string
	DatabaseDriver string
	CORSOrigin     string
	// Logging
	LogLevel  string
	LogFormat string
	// Redis - cache disabled when empty
	RedisURL string
	CacheTTL time.Duration
	// Session derivation
	ReferenceOffsetMinutes int
	PhoneDefaultRegion     string
	ExcludedSessionTypes   []string
}

// Load reads configuration from the environment, after applying an optional .env file.
func Load() Config {
	_ = godotenv.Load()

	databaseURL := getenv("DATABASE_URL", "./sessiondesk.db")
	return Config{
		Addr:                   ":" + getenv("PORT", "8080"),
		Environment:            getenv("ENVIRONMENT", "development"),
		DatabaseURL:            databaseURL,
		DatabaseDriver:         getenv("DATABASE_DRIVER", DriverFor(databaseURL)),
		CORSOrigin:             getenv("CORS_ORIGIN", "*"),
		LogLevel:               getenv("LOG_LEVEL", "info"),
		LogFormat:              getenv("LOG_FORMAT", "json"),
		RedisURL:               getenv("REDIS_URL", ""),
		CacheTTL:               time.Duration(getenvInt("CACHE_TTL_SECONDS", 60)) * time.Second,
		ReferenceOffsetMinutes: getenvInt("REFERENCE_OFFSET_MINUTES", 330),
		PhoneDefaultRegion:     getenv("PHONE_DEFAULT_REGION", "IN"),
		ExcludedSessionTypes:   getenvList("EXCLUDED_SESSION_TYPES", []string{"free"}),
	}
}

// DriverFor picks a database/sql driver name from the shape of a connection string.
func DriverFor(databaseURL string) string {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return "pgx"
	}
	return "sqlite3"
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Package config provides centralized default values for SocialPulse
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	AppEnv             string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// CORS
	AllowedOrigins []string

	// CSRF Configuration
	CSRFTokenTTL     time.Duration
	CSRFSessionName  string
	CSRFSweepEnabled bool

	// Authentication
	JWTSecret      string
	AdminPassword  string
	EditorPassword string
	ViewerPassword string
	AuthTokenTTL   time.Duration

	// Storage
	DatabaseType string
	DBPath       string
	TursoURL     string
	TursoToken   string

	// Database Pool (SQL backend only)
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int

	// Platform integrations
	YouTubeAPIKey      string
	GitHubToken        string
	IntegrationTimeout time.Duration

	// Cleanup Intervals
	CleanupInterval time.Duration

	// Observability
	SlowRequestThreshold time.Duration
)

// IsProduction reports whether the server runs with production cookie policy.
func IsProduction() bool {
	return AppEnv == "production"
}

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	AppEnv = getEnvString("APP_ENV", "development")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// CORS: comma-separated allowlist on top of the built-in dev origins
	if raw := getEnvString("ALLOWED_ORIGINS", ""); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				AllowedOrigins = append(AllowedOrigins, trimmed)
			}
		}
	}

	// CSRF
	CSRFTokenTTL = time.Duration(getEnvInt("CSRF_TOKEN_TTL_MINUTES", 60)) * time.Minute
	CSRFSessionName = getEnvString("CSRF_SESSION_COOKIE", "_csrf_session")
	CSRFSweepEnabled = getEnvString("CSRF_SWEEP_ENABLED", "true") == "true"

	// Authentication
	JWTSecret = getEnvString("JWT_SECRET", "")
	AdminPassword = getEnvString("ADMIN_PASSWORD", "")
	EditorPassword = getEnvString("EDITOR_PASSWORD", "")
	ViewerPassword = getEnvString("VIEWER_PASSWORD", "")
	AuthTokenTTL = time.Duration(getEnvInt("AUTH_TOKEN_TTL_HOURS", 24)) * time.Hour

	// Storage
	DatabaseType = getEnvString("DATABASE_TYPE", "json")
	DBPath = getEnvString("DB_PATH", "db.json")
	TursoURL = getEnvString("TURSO_DATABASE_URL", "")
	TursoToken = getEnvString("TURSO_AUTH_TOKEN", "")

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)

	// Platform integrations
	YouTubeAPIKey = getEnvString("YOUTUBE_API_KEY", "")
	GitHubToken = getEnvString("GITHUB_TOKEN", "")
	IntegrationTimeout = getEnvDuration("INTEGRATION_TIMEOUT", 10*time.Second)

	// Cleanup Intervals
	CleanupInterval = time.Duration(getEnvInt("CSRF_SWEEP_INTERVAL_MINUTES", 15)) * time.Minute

	// Observability
	SlowRequestThreshold = getEnvDuration("SLOW_REQUEST_THRESHOLD", 500*time.Millisecond)
}

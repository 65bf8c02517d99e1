package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// Config is loaded once at startup and handed to the handlers that need it.
// Nothing below reads the environment after LoadConfig returns.
type Config struct {
	Port   string
	DBPath string

	// Payment gateway credentials. Requests fail closed when either is empty.
	GatewayBaseURL   string
	GatewayTokenKey  string
	GatewaySecretKey string

	// External order log (spreadsheet webhook). Empty disables recording.
	OrderLogURL string

	CSRFKey      []byte
	SessionKey   []byte
	CookieDomain string
	CookieSecure bool
}

const defaultGatewayBaseURL = "https://api.zapupi.com"

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8585"),
		DBPath:           getEnv("DB_PATH", "./store.db"),
		GatewayBaseURL:   getEnv("ZAPUPI_BASE_URL", defaultGatewayBaseURL),
		GatewayTokenKey:  os.Getenv("ZAPUPI_API_KEY"),
		GatewaySecretKey: os.Getenv("ZAPUPI_SECRET_KEY"),
		OrderLogURL:      os.Getenv("ORDER_LOG_URL"),
		CookieDomain:     getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:     getEnv("COOKIE_SECURE", "false") == "true",
	}

	if cfg.GatewayTokenKey == "" || cfg.GatewaySecretKey == "" {
		slog.Warn("ZAPUPI_API_KEY or ZAPUPI_SECRET_KEY not set. Payment order creation and status checks will fail closed until both are configured.")
	}
	if cfg.OrderLogURL == "" {
		slog.Warn("ORDER_LOG_URL not set. Orders will not be forwarded to the external order log.")
	}

	cfg.CSRFKey = loadKey("CSRF_KEY")
	cfg.SessionKey = loadKey("SESSION_KEY")

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

// loadKey reads a base64 32-byte key from the environment, generating a
// throwaway development key when the variable is missing or malformed.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn(name + " environment variable not set. Generating a random key for development. This key will change on each restart. PLEASE SET " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name + " is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// generateRandomBytes generates a random byte slice of specified length
// Uses crypto/rand for secure random numbers.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		// Fallback only prevents a panic; never acceptable in production.
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			paddedKey := make([]byte, n)
			copy(paddedKey, fallbackKey)
			return paddedKey
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}

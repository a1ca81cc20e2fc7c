package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AnshRaj112/secure-profile-hub/pkg/utils"
)

const (
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
	StoreMemory   = "memory"

	// defaultJWTSecret is only acceptable outside production.
	defaultJWTSecret = "your-secret-key-change-in-production"
)

type Config struct {
	Environment string // ENV: production, development, etc.
	Port        string
	LogLevel    string

	StoreDriver   string // mongo | postgres | memory
	MongoURI      string
	MongoDatabase string // optional; falls back to the database in MongoURI
	PostgresURI   string

	JWTSecret     string
	JWTExpiresIn  time.Duration
	EncryptionKey string // base64, 32 bytes

	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
	TrustProxy     bool     // honour X-Forwarded-For when logging client IPs
}

func Load() (*Config, error) {
	expiresIn, err := time.ParseDuration(getEnv("JWT_EXPIRES_IN", "24h"))
	if err != nil {
		return nil, fmt.Errorf("JWT_EXPIRES_IN: %w", err)
	}

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{getEnv("FRONTEND_URL", "http://localhost:8080")}
	}

	return &Config{
		Environment:    strings.ToLower(strings.TrimSpace(getEnv("ENV", "development"))),
		Port:           getEnv("PORT", "8000"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		MongoURI:       getEnv("MONGODB_URI", getEnv("MONGO_URI", "mongodb://localhost:27017/secure_profile_hub")),
		MongoDatabase:  getEnv("MONGO_DB", ""),
		PostgresURI:    getEnv("POSTGRES_URI", "postgres://localhost:5432/secure_profile_hub?sslmode=disable"),
		JWTSecret:      getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiresIn:   expiresIn,
		EncryptionKey:  getEnv("ENCRYPTION_KEY", ""),
		AllowedOrigins: allowedOrigins,
		TrustProxy:     parseBool(getEnv("TRUST_PROXY", "false")),
	}, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if c.IsProduction() && c.JWTSecret == defaultJWTSecret {
		errs = append(errs, errors.New("JWT_SECRET must be changed in production"))
	}

	if c.JWTExpiresIn <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRES_IN must be positive"))
	}

	if _, err := c.EncryptionKeyBytes(); err != nil {
		errs = append(errs, err)
	}

	switch c.StoreDriver {
	case StoreMongo, StorePostgres:
	case StoreMemory:
		if c.IsProduction() {
			errs = append(errs, errors.New("STORE_DRIVER=memory is not allowed in production"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	return errors.Join(errs...)
}

// EncryptionKeyBytes decodes ENCRYPTION_KEY.
// Generate one with: openssl rand -base64 32
func (c *Config) EncryptionKeyBytes() ([]byte, error) {
	return utils.DecodeEncryptionKey(c.EncryptionKey)
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

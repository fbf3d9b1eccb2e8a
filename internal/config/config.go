package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig holds hosted auth provider configuration. The provider issues the
// session tokens; this service only verifies them.
type AuthConfig struct {
	BaseURL    string
	ServiceKey string
	JWTSecret  string
	JWKSURL    string
}

// MinioConfig holds object storage configuration for product images
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// StorefrontConfig holds the defaults used when host resolution finds no shop
type StorefrontConfig struct {
	DefaultWhatsAppNumber string
	CatalogTTL            time.Duration
	VerificationTTL       time.Duration
}

// Config holds all configuration
type Config struct {
	DatabaseURL    string
	MigrationsPath string
	Server         ServerConfig
	Redis          RedisConfig
	Auth           AuthConfig
	Minio          MinioConfig
	Storefront     StorefrontConfig
	LogLevel       string
}

// Load reads configuration from the environment, loading .env first when
// present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// .env is optional; environment variables alone are fine.
		fmt.Fprintln(os.Stderr, "no .env file found, using environment variables")
	}

	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			BaseURL:    getEnv("AUTH_BASE_URL", ""),
			ServiceKey: getEnv("AUTH_SERVICE_KEY", ""),
			JWTSecret:  getEnv("AUTH_JWT_SECRET", ""),
			JWKSURL:    getEnv("AUTH_JWKS_URL", ""),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
			Bucket:    getEnv("MINIO_BUCKET", "product-images"),
		},
		Storefront: StorefrontConfig{
			DefaultWhatsAppNumber: getEnv("DEFAULT_WHATSAPP_NUMBER", "917988237504"),
			CatalogTTL:            getEnvAsDuration("CATALOG_CACHE_TTL", 2*time.Minute),
			VerificationTTL:       getEnvAsDuration("VERIFICATION_TTL", 15*time.Minute),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.BaseURL == "" {
		return nil, fmt.Errorf("AUTH_BASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" && cfg.Auth.JWKSURL == "" {
		return nil, fmt.Errorf("one of AUTH_JWT_SECRET or AUTH_JWKS_URL is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const EnvDevelopment = "development"

// Config holds all runtime configuration. JWTSecret has no fallback outside
// development mode: startup fails instead of signing tokens with a known
// default.
type Config struct {
	Env         string
	Port        int
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from the process environment. In development a
// .env file is honored if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:           getEnv("APP_ENV", EnvDevelopment),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	if cfg.JWTSecret == "" {
		if cfg.Env != EnvDevelopment {
			return nil, fmt.Errorf("JWT_SECRET environment variable is required in %s mode", cfg.Env)
		}
		secret, err := randomSecret()
		if err != nil {
			return nil, fmt.Errorf("failed to generate development JWT secret: %w", err)
		}
		cfg.JWTSecret = secret
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}
	cfg.Port = port

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// randomSecret generates a per-process secret for development runs. Tokens do
// not survive a restart, which is acceptable there.
func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

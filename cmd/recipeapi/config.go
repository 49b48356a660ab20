package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    []byte
	TokenTTL     time.Duration
	LogLevel     string
	Environment  string
}

// LoadConfig reads the API configuration from the environment and an
// optional .env file.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Port:         getEnvWithDefault("API_PORT", "8080"),
		DatabasePath: getEnvWithDefault("DATABASE_PATH", "./recipes.db"),
		LogLevel:     getEnvWithDefault("LOG_LEVEL", "INFO"),
		Environment:  getEnvWithDefault("ENVIRONMENT", "development"),
	}

	var errs []error

	secret := os.Getenv("JWT_SECRET")
	switch {
	case secret == "":
		errs = append(errs, errors.New("JWT_SECRET environment variable is required"))
	case len(secret) < 16:
		errs = append(errs, errors.New("JWT_SECRET must be at least 16 characters long"))
	}
	config.JWTSecret = []byte(secret)

	ttl, err := time.ParseDuration(getEnvWithDefault("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		errs = append(errs, fmt.Errorf("invalid TOKEN_TTL %q", os.Getenv("TOKEN_TTL")))
	}
	config.TokenTTL = ttl

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return config, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

package main

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"foodRecipesWebsite/internal/api"
	"foodRecipesWebsite/internal/guard"
	"foodRecipesWebsite/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	APIEnv             string
	APIBaseURL         string
	APITimeout         time.Duration
	APIWithCredentials bool

	SessionTTL    int
	SessionSecret []byte
	CookieSecure  bool
	GuardMatch    guard.MatchMode

	RedisAddr          string
	CountriesCacheTTL  time.Duration
	LoginRatePerMinute int
	TrustProxyHeaders  bool
}

// LoadConfig reads the configuration from the environment and an optional
// .env file. Every invalid value is reported in the returned error.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug("No .env file found, using system environment variables")
	}

	config := &Config{
		Port:        getEnvWithDefault("PORT", "3000"),
		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:    getEnvWithDefault("LOG_LEVEL", "INFO"),
		APIEnv:      getEnvWithDefault("API_ENV", api.DefaultEnvironment),
		RedisAddr:   os.Getenv("REDIS_ADDR"),
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	baseURL, ok := api.BaseURLFor(config.APIEnv, os.Getenv("API_BASE_URL"))
	if !ok {
		collect(fmt.Errorf("unknown API_ENV %q (want local or dev)", config.APIEnv))
	}
	config.APIBaseURL = baseURL

	var err error
	config.APITimeout, err = getDuration("API_TIMEOUT", 0)
	collect(err)
	config.APIWithCredentials, err = getBool("API_WITH_CREDENTIALS", true)
	collect(err)
	config.CookieSecure, err = getBool("COOKIE_SECURE", config.Environment == "production")
	collect(err)
	config.CountriesCacheTTL, err = getDuration("COUNTRIES_CACHE_TTL", time.Hour)
	collect(err)
	config.TrustProxyHeaders, err = getBool("TRUST_PROXY_HEADERS", false)
	collect(err)

	config.SessionTTL, err = getInt("SESSION_TTL", 86400)
	collect(err)
	if err == nil && config.SessionTTL <= 0 {
		collect(fmt.Errorf("SESSION_TTL must be positive"))
	}

	config.LoginRatePerMinute, err = getInt("LOGIN_RATE_PER_MINUTE", 10)
	collect(err)
	if err == nil && config.LoginRatePerMinute <= 0 {
		collect(fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive"))
	}

	match := getEnvWithDefault("GUARD_MATCH", "prefix")
	if config.GuardMatch, ok = guard.ParseMatchMode(match); !ok {
		collect(fmt.Errorf("unknown GUARD_MATCH %q (want prefix or substring)", match))
	}

	switch secret := os.Getenv("SESSION_SECRET"); {
	case secret == "":
		generated, genErr := GenerateSecureToken(32)
		collect(genErr)
		config.SessionSecret = []byte(generated)
		logger.Log.Warn("SESSION_SECRET not set, flash messages will not survive a restart")
	case len(secret) < 32:
		collect(fmt.Errorf("SESSION_SECRET must be at least 32 characters long"))
	default:
		config.SessionSecret = []byte(secret)
	}

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

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		return defaultValue, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}

func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "0123456789abcdef")
		t.Setenv("TOKEN_TTL", "")
		t.Setenv("API_PORT", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
		assert.Equal(t, []byte("0123456789abcdef"), cfg.JWTSecret)
	})

	t.Run("collects every problem", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "short")
		t.Setenv("TOKEN_TTL", "forever")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET must be at least 16 characters long")
		assert.Contains(t, err.Error(), "invalid TOKEN_TTL")
	})
}

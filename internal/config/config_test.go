package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		v := viper.New()
		v.Set("DB_DSN", "postgres://localhost/rumbos")
		v.Set("JWT_ACCESS_SECRET", "secret")

		cfg, err := fromViper(v)
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
		assert.Equal(t, 9002, cfg.HTTP.Port)
		assert.Equal(t, []string{"*"}, cfg.HTTP.AllowedOrigins)
		assert.Equal(t, "gemini-2.5-flash", cfg.AI.Model)
		assert.InDelta(t, 0.2, cfg.AI.Temperature, 0.0001)
		assert.Equal(t, 10, cfg.List.DefaultPageSize)
		assert.Equal(t, 100, cfg.List.MaxPageSize)
		assert.Equal(t, "RUM", cfg.Shipments.TrackingPrefix)
	})

	t.Run("reads explicit values", func(t *testing.T) {
		v := viper.New()
		v.Set("DB_DSN", "dsn")
		v.Set("JWT_ACCESS_SECRET", "secret")
		v.Set("APP_ENV", "production")
		v.Set("HTTP_PORT", 8080)
		v.Set("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
		v.Set("DB_CONN_MAX_LIFETIME", "5m")
		v.Set("GEMINI_TEMPERATURE", 0)

		cfg, err := fromViper(v)
		require.NoError(t, err)

		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, 8080, cfg.HTTP.Port)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.HTTP.AllowedOrigins)
		assert.Equal(t, 5*time.Minute, cfg.DB.ConnMaxLifetime)
		assert.Zero(t, cfg.AI.Temperature)
	})

	t.Run("requires dsn and secret", func(t *testing.T) {
		_, err := fromViper(viper.New())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_DSN")

		v := viper.New()
		v.Set("DB_DSN", "dsn")
		_, err = fromViper(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_ACCESS_SECRET")
	})

	t.Run("rejects bad lifetime", func(t *testing.T) {
		v := viper.New()
		v.Set("DB_DSN", "dsn")
		v.Set("JWT_ACCESS_SECRET", "secret")
		v.Set("DB_CONN_MAX_LIFETIME", "forever")

		_, err := fromViper(v)
		require.Error(t, err)
	})
}

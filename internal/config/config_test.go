// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Storefront API", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "cart:session:", cfg.Cart.KeyPrefix)
	assert.Equal(t, 7*24*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, "$", cfg.Cart.CurrencySymbol)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CART_TTL", "48h")
	t.Setenv("CART_CURRENCY_SYMBOL", "€")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 48*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, "€", cfg.Cart.CurrencySymbol)
}

func TestValidate_ShortJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "too-short")

	_, err := Load()

	assert.Error(t, err)
}

func TestValidate_CartFields(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Cart.KeyPrefix = ""
	assert.Error(t, cfg.Validate())

	cfg.Cart.KeyPrefix = "cart:session:"
	cfg.Cart.TTL = 0
	assert.Error(t, cfg.Validate())
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db.internal",
			Port:     "5433",
			User:     "app",
			Password: "secret",
			Name:     "storefront",
			SSLMode:  "require",
		},
	}

	dsn := cfg.GetDatabaseDSN()

	assert.Equal(t, "host=db.internal port=5433 user=app password=secret dbname=storefront sslmode=require", dsn)
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{
		Redis: RedisConfig{Host: "cache.internal", Port: "6380"},
	}

	assert.Equal(t, "cache.internal:6380", cfg.GetRedisAddr())
}

func TestEnvironmentChecks(t *testing.T) {
	dev := &Config{App: AppConfig{Environment: "development"}}
	prod := &Config{App: AppConfig{Environment: "production"}}

	assert.True(t, dev.IsDevelopment())
	assert.False(t, dev.IsProduction())
	assert.True(t, prod.IsProduction())
	assert.False(t, prod.IsDevelopment())
}

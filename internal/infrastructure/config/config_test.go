package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProductionConfig() *Config {
	return &Config{
		App: AppConfig{Environment: "production"},
		Server: ServerConfig{
			Port: 9093,
		},
		Database: DatabaseConfig{Database: "greenplate"},
		Auth: AuthConfig{
			JWTSecret:       "a-real-signing-secret",
			TokenExpiration: 24 * time.Hour,
			NameCipherKey:   "0123456789abcdef",
		},
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 9093, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenExpiration)
	assert.Equal(t, int64(10<<20), cfg.Storage.MaxFileSize)
	assert.False(t, cfg.Auth.EnableTestLogin)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestValidateProduction(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, validProductionConfig().Validate())
	})

	t.Run("RequiresJWTSecret", func(t *testing.T) {
		cfg := validProductionConfig()
		cfg.Auth.JWTSecret = ""
		assert.ErrorContains(t, cfg.Validate(), "jwt_secret")
	})

	t.Run("RequiresNameCipherKey", func(t *testing.T) {
		cfg := validProductionConfig()
		cfg.Auth.NameCipherKey = ""
		assert.ErrorContains(t, cfg.Validate(), "name_cipher_key")
	})

	t.Run("RefusesTestLogin", func(t *testing.T) {
		cfg := validProductionConfig()
		cfg.Auth.EnableTestLogin = true
		assert.ErrorContains(t, cfg.Validate(), "enable_test_login")
	})
}

func TestValidateCipherKeyLength(t *testing.T) {
	cfg := validProductionConfig()
	cfg.App.Environment = "development"
	cfg.Auth.NameCipherKey = "too-short"
	assert.ErrorContains(t, cfg.Validate(), "16 bytes")

	cfg.Auth.NameCipherKey = ""
	assert.NoError(t, cfg.Validate(), "empty key is tolerated outside production")
}

func TestValidatePortRange(t *testing.T) {
	cfg := validProductionConfig()
	cfg.Server.Port = 0
	assert.ErrorContains(t, cfg.Validate(), "server.port")
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:     "db.internal",
		Port:     5432,
		Username: "svc",
		Password: "pw",
		Database: "greenplate",
		SSLMode:  "require",
	}}

	assert.Equal(t,
		"host=db.internal port=5432 user=svc password=pw dbname=greenplate sslmode=require",
		cfg.GetDSN(),
	)
}

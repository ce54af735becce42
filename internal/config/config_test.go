package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValidInDev(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTPAddr())
	assert.Equal(t, 168, cfg.Auth.JWTTTLHours)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestProdRefusesDefaultSecret(t *testing.T) {
	cfg := defaultConfig()
	cfg.App.Env = "prod"
	assert.Error(t, cfg.Validate())

	cfg.Auth.JWTSecret = "a-real-secret-set-by-ops"
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_TTL_HOURS", "24")

	cfg := defaultConfig()
	overrideByEnv(cfg)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, 24, cfg.Auth.JWTTTLHours)
}

func TestMySQLDSN(t *testing.T) {
	cfg := defaultConfig()
	cfg.MySQL.User = "app"
	cfg.MySQL.Password = "pw"
	cfg.MySQL.Host = "db"
	cfg.MySQL.Port = 3307
	cfg.MySQL.DB = "splitmate"
	cfg.MySQL.Params = "parseTime=true"

	assert.Equal(t, "app:pw@tcp(db:3307)/splitmate?parseTime=true", cfg.MySQLDSN())
}

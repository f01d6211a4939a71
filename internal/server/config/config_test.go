package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnv = []string{
	EnvJWTSecret, EnvDBHost, EnvDBPort, EnvDBUser, EnvDBPassword, EnvDBName,
	EnvDBSSLMode, EnvDBMaxOpenConns, EnvHTTPAddr, EnvTokenTTL, EnvBcryptCost, EnvLogLevel,
}

// clearEnv unsets every variable the loader reads; t.Setenv restores them.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allEnv {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"testbin"}, args...)
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":3000", c.HTTPAddr)
	assert.Equal(t, "", c.JWTSecret)
	assert.Equal(t, time.Hour, c.TokenTTL)
	assert.Equal(t, 10, c.BcryptCost)
	assert.Equal(t, "localhost", c.DBHost)
	assert.Equal(t, "5432", c.DBPort)
	assert.Equal(t, "userauth", c.DBName)
	assert.Equal(t, 25, c.DBMaxOpenConns)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	clearEnv(t)
	setArgs(t, "-env", "does-not-exist.env")

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, &want, c)
}

func TestLoadConfig_Precedence(t *testing.T) {
	clearEnv(t)
	path := writeTempJSON(t, "", "", map[string]any{
		"jwt_secret": "from-json",
		"db_host":    "json-host",
		"http_addr":  ":1111",
	})
	t.Setenv(EnvJWTSecret, "from-env")
	t.Setenv(EnvDBUser, "env-user")
	setArgs(t, "-c", path, "-env", "missing.env", "-s", "from-flag")

	c := LoadConfig()

	assert.Equal(t, "from-flag", c.JWTSecret)
	assert.Equal(t, "json-host", c.DBHost)
	assert.Equal(t, "env-user", c.DBUser)
	assert.Equal(t, ":1111", c.HTTPAddr)
}

func TestDatabaseDSN(t *testing.T) {
	c := &Config{
		DBHost:     "db",
		DBPort:     "5433",
		DBUser:     "auth",
		DBPassword: "p@ss word",
		DBName:     "users",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "postgres://auth:p%40ss%20word@db:5433/users?sslmode=disable", c.DatabaseDSN())
}

func TestValidate(t *testing.T) {
	var c Config
	c.LoadDefaults()
	require.Error(t, c.Validate(), "empty secret must be rejected")

	c.JWTSecret = "s"
	require.NoError(t, c.Validate())

	c.TokenTTL = 0
	require.Error(t, c.Validate())
}

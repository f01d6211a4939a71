package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"http_addr":         "www.example:9000",
		"jwt_secret":        "my_secret_key",
		"token_ttl":         "30m",
		"bcrypt_cost":       12,
		"db_host":           "pg",
		"db_port":           "6543",
		"db_user":           "user",
		"db_password":       "password",
		"db_name":           "auth",
		"db_sslmode":        "require",
		"db_max_open_conns": 5,
		"log_level":         "debug",
	})

	t.Run("loads from json", func(t *testing.T) {
		setArgs(t, "-config", pathFlag)

		cfg := &Config{}
		parseJson(cfg)

		assert.Equal(t, "www.example:9000", cfg.HTTPAddr)
		assert.Equal(t, "my_secret_key", cfg.JWTSecret)
		assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Equal(t, "pg", cfg.DBHost)
		assert.Equal(t, "6543", cfg.DBPort)
		assert.Equal(t, "user", cfg.DBUser)
		assert.Equal(t, "password", cfg.DBPassword)
		assert.Equal(t, "auth", cfg.DBName)
		assert.Equal(t, "require", cfg.DBSSLMode)
		assert.Equal(t, 5, cfg.DBMaxOpenConns)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		setArgs(t)

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		var want Config
		want.LoadDefaults()
		assert.Equal(t, want, *cfg)
	})

	t.Run("partial file keeps other fields", func(t *testing.T) {
		partial := writeTempJSON(t, dir, "partial.json", map[string]any{"jwt_secret": "only"})
		setArgs(t, "-c", partial)

		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)

		assert.Equal(t, "only", cfg.JWTSecret)
		assert.Equal(t, ":3000", cfg.HTTPAddr)
		assert.Equal(t, time.Hour, cfg.TokenTTL)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		setArgs(t, "-config", bad)

		cfg := &Config{}
		require.Panics(t, func() { parseJson(cfg) })
	})
}

package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{
			"-a", "127.0.0.1:9090", "-s", "secret", "-t", "5", "-k", "4", "-l", "warn",
			"-dbhost", "h", "-dbport", "1", "-dbuser", "u", "-dbpassword", "p", "-dbname", "n", "-dbsslmode", "require",
		},
			expected: &Config{
				HTTPAddr:   "127.0.0.1:9090",
				JWTSecret:  "secret",
				TokenTTL:   5 * time.Minute,
				BcryptCost: 4,
				LogLevel:   "warn",
				DBHost:     "h",
				DBPort:     "1",
				DBUser:     "u",
				DBPassword: "p",
				DBName:     "n",
				DBSSLMode:  "require",
			}},
		{name: "ttl untouched without -t", args: []string{"-s", "x"},
			expected: &Config{JWTSecret: "x", TokenTTL: 90 * time.Second}},
		{name: "bad int panics", args: []string{"-k", "many"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			config := &Config{TokenTTL: 90 * time.Second}
			if tt.expected != nil && tt.expected.TokenTTL != 90*time.Second {
				config.TokenTTL = 0
			}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

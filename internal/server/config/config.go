// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment and command-line flags.
package config

import (
	"errors"
	"net"
	"net/url"
	"time"
)

// Config holds runtime settings for the auth server. It is built once at
// startup and must not be mutated afterwards; request handlers only read it.
//
// Fields:
//   - HTTPAddr: bind address for the public HTTP endpoint.
//   - JWTSecret: HMAC secret for signing tokens (HS256). Required.
//   - TokenTTL: lifetime of issued tokens.
//   - BcryptCost: bcrypt work factor used for new password hashes.
//   - DB*: PostgreSQL connection settings, see DatabaseDSN.
//   - DBMaxOpenConns: upper bound of the connection pool.
//   - LogLevel: one of debug, info, warn, error.
type Config struct {
	HTTPAddr       string
	JWTSecret      string
	TokenTTL       time.Duration
	BcryptCost     int
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	DBMaxOpenConns int
	LogLevel       string
}

// LoadDefaults populates Config with development defaults. JWTSecret is left
// empty on purpose so a deployment cannot start without one.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":3000"
	c.TokenTTL = time.Hour
	c.BcryptCost = 10
	c.DBHost = "localhost"
	c.DBPort = "5432"
	c.DBUser = "postgres"
	c.DBPassword = "postgres"
	c.DBName = "userauth"
	c.DBSSLMode = "disable"
	c.DBMaxOpenConns = 25
	c.LogLevel = "info"
}

// DatabaseDSN assembles a pgx connection URL from the DB_* settings.
func (c *Config) DatabaseDSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   net.JoinHostPort(c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	if c.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.DBSSLMode}}.Encode()
	}
	return u.String()
}

// Validate reports settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("token ttl must be positive"))
	}
	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http address is required"))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, the environment (including a .env file) and
// finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

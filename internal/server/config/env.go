package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/dmitrijs2005/userauth/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvJWTSecret      = "JWT_SECRET"
	EnvDBHost         = "DB_HOST"
	EnvDBPort         = "DB_PORT"
	EnvDBUser         = "DB_USER"
	EnvDBPassword     = "DB_PASSWORD"
	EnvDBName         = "DB_NAME"
	EnvDBSSLMode      = "DB_SSLMODE"
	EnvDBMaxOpenConns = "DB_MAX_OPEN_CONNS"
	EnvHTTPAddr       = "HTTP_ADDR"
	EnvTokenTTL       = "TOKEN_TTL"
	EnvBcryptCost     = "BCRYPT_COST"
	EnvLogLevel       = "LOG_LEVEL"
)

// parseEnv loads the dotenv file (default ".env", overridable with -env)
// into the process environment and then overlays every variable that is set.
// Variables already present in the environment win over the file. A missing
// dotenv file is not an error; a malformed one panics.
func parseEnv(config *Config) {
	envFile := flagx.LookupString(os.Args[1:], ".env", "-env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	lookupString(EnvJWTSecret, &config.JWTSecret)
	lookupString(EnvDBHost, &config.DBHost)
	lookupString(EnvDBPort, &config.DBPort)
	lookupString(EnvDBUser, &config.DBUser)
	lookupString(EnvDBPassword, &config.DBPassword)
	lookupString(EnvDBName, &config.DBName)
	lookupString(EnvDBSSLMode, &config.DBSSLMode)
	lookupString(EnvHTTPAddr, &config.HTTPAddr)
	lookupString(EnvLogLevel, &config.LogLevel)
	lookupInt(EnvBcryptCost, &config.BcryptCost)
	lookupInt(EnvDBMaxOpenConns, &config.DBMaxOpenConns)
	lookupDuration(EnvTokenTTL, &config.TokenTTL)
}

func lookupString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func lookupInt(key string, dst *int) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		panic(key + ": " + err.Error())
	}
	*dst = n
}

func lookupDuration(key string, dst *time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(key + ": " + err.Error())
	}
	*dst = d
}

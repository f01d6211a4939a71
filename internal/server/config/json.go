package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/userauth/internal/flagx"
	"github.com/dmitrijs2005/userauth/internal/timex"
)

// JsonConfig is the on-disk shape of the optional configuration file.
// Durations accept both "1h" strings and integer nanoseconds.
type JsonConfig struct {
	HTTPAddr       string         `json:"http_addr"`
	JWTSecret      string         `json:"jwt_secret"`
	TokenTTL       timex.Duration `json:"token_ttl"`
	BcryptCost     int            `json:"bcrypt_cost"`
	DBHost         string         `json:"db_host"`
	DBPort         string         `json:"db_port"`
	DBUser         string         `json:"db_user"`
	DBPassword     string         `json:"db_password"`
	DBName         string         `json:"db_name"`
	DBSSLMode      string         `json:"db_sslmode"`
	DBMaxOpenConns int            `json:"db_max_open_conns"`
	LogLevel       string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c or -config. Fields
// missing from the file keep their current value. An unreadable file or
// invalid JSON panics, since the operator asked for that file explicitly.
func parseJson(config *Config) {
	path := flagx.LookupString(os.Args[1:], "", "-c", "-config")
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.JWTSecret, c.JWTSecret)
	setString(&config.DBHost, c.DBHost)
	setString(&config.DBPort, c.DBPort)
	setString(&config.DBUser, c.DBUser)
	setString(&config.DBPassword, c.DBPassword)
	setString(&config.DBName, c.DBName)
	setString(&config.DBSSLMode, c.DBSSLMode)
	setString(&config.LogLevel, c.LogLevel)

	if c.TokenTTL.Duration != 0 {
		config.TokenTTL = c.TokenTTL.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.DBMaxOpenConns != 0 {
		config.DBMaxOpenConns = c.DBMaxOpenConns
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

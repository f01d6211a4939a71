package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/userauth/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-s string   JWT HMAC secret key
//	-t int      token validity, minutes
//	-k int      bcrypt cost
//	-l string   log level
//	-dbhost, -dbport, -dbuser, -dbpassword, -dbname, -dbsslmode string
//
// Unknown arguments are filtered out first, so flags owned by other
// components (the JSON/env loaders, go test) do not cause parse errors.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-s", "-t", "-k", "-l",
		"-dbhost", "-dbport", "-dbuser", "-dbpassword", "-dbname", "-dbsslmode",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "secret key")
	tokenTTL := fs.Int("t", int(config.TokenTTL.Minutes()), "token validity (in minutes)")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	fs.StringVar(&config.DBHost, "dbhost", config.DBHost, "database host")
	fs.StringVar(&config.DBPort, "dbport", config.DBPort, "database port")
	fs.StringVar(&config.DBUser, "dbuser", config.DBUser, "database user")
	fs.StringVar(&config.DBPassword, "dbpassword", config.DBPassword, "database password")
	fs.StringVar(&config.DBName, "dbname", config.DBName, "database name")
	fs.StringVar(&config.DBSSLMode, "dbsslmode", config.DBSSLMode, "database sslmode")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t is in whole minutes; only apply it when given so sub-minute values
	// from other sources survive.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenTTL = time.Duration(*tokenTTL) * time.Minute
		}
	})
}

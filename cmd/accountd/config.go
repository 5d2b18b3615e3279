package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/mkravchenko/accountd/internal/logger"
)

const (
	defaultListenAddr   = "127.0.0.1:5000"
	defaultDatabasePath = "users.db"
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvProduction

	// Registration is limited stricter than login and listing
	defaultRegisterLimit = 5
	defaultLoginLimit    = 10
	defaultListLimit     = 10
)

type Config struct {
	// Default logging level
	LogLevel string

	// Address on which the account service will be run
	ListenAddr string

	// Path to the sqlite database file
	DatabasePath string

	// Environment
	Environment string

	// Per route rate limits, requests per minute per client address
	// Zero disables the limiter for the route
	RegisterLimit int
	LoginLimit    int
	ListLimit     int
}

func NewConfig() *Config {
	return &Config{
		LogLevel:      defaultLoggingLevel,
		ListenAddr:    defaultListenAddr,
		DatabasePath:  defaultDatabasePath,
		Environment:   defaultEnvironment,
		RegisterLimit: defaultRegisterLimit,
		LoginLimit:    defaultLoginLimit,
		ListLimit:     defaultListLimit,
	}
}

// Load variables from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}

	envMap := map[string]func(string){
		"RUN_ADDRESS":   setString(&c.ListenAddr),
		"DATABASE_PATH": setString(&c.DatabasePath),
		"LOG_LEVEL":     setString(&c.LogLevel),
		"ENVIRONMENT":   setString(&c.Environment),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

func (c *Config) ParseFlags(args []string) error {
	fs := pflag.NewFlagSet("accountd", pflag.ContinueOnError)

	fs.StringVarP(&c.ListenAddr, "address", "a", c.ListenAddr, "Server listen address")
	fs.StringVarP(&c.DatabasePath, "database", "d", c.DatabasePath, "Path to sqlite database file")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.IntVar(&c.RegisterLimit, "register-limit", c.RegisterLimit, "Registrations per minute per client, 0 disables")
	fs.IntVar(&c.LoginLimit, "login-limit", c.LoginLimit, "Logins per minute per client, 0 disables")
	fs.IntVar(&c.ListLimit, "list-limit", c.ListLimit, "User listings per minute per client, 0 disables")

	return fs.Parse(args)
}

// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables and
// an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Addr defines the server's listening address (ip:port).
	Addr string

	// DatabaseDSN holds the PostgreSQL connection string.
	DatabaseDSN string

	// RedisAddr holds the address of the Redis instance backing the session cache.
	RedisAddr string

	// Config is the path to the JSON config file.
	Config string

	// Pepper is the process-wide password pepper, assembled from three
	// separately configured secret parts. Never logged or persisted.
	Pepper string

	// AccessSecret signs access tokens.
	AccessSecret string
	// RefreshSecret signs refresh tokens. Must differ from AccessSecret.
	RefreshSecret string

	// AccessTTL is the access token lifetime.
	AccessTTL time.Duration
	// RefreshTTL is the refresh token lifetime.
	RefreshTTL time.Duration
	// SessionTTL is the lifetime of a session marker in the cache,
	// independent of either token lifetime.
	SessionTTL time.Duration

	// RateLimit is the number of requests allowed per RateWindow per client IP.
	RateLimit int
	// RateWindow is the rate limiting window.
	RateWindow time.Duration
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Addr, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.RedisAddr, "r", "localhost:6379", "redis address")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
	flag.DurationVar(&options.AccessTTL, "access-ttl", 15*time.Minute, "access token lifetime")
	flag.DurationVar(&options.RefreshTTL, "refresh-ttl", 7*24*time.Hour, "refresh token lifetime")
	flag.DurationVar(&options.SessionTTL, "session-ttl", 24*time.Hour, "session marker lifetime")
	flag.IntVar(&options.RateLimit, "rate-limit", 15, "requests allowed per window per IP")
	flag.DurationVar(&options.RateWindow, "rate-window", time.Minute, "rate limiting window")
}

// Parse parses the command-line flags, config file and environment variables
// to set configuration values. Secrets are read from the environment only.
// It terminates the process if any of the three pepper parts or either token
// secret is missing, or if both token secrets are the same value.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Addr = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		options.RedisAddr = redisAddr
	}

	// The pepper is split across three independently configured secrets so
	// that no single leaked variable reveals it.
	p1 := os.Getenv("PEPPER_PART1")
	p2 := os.Getenv("PEPPER_PART2")
	p3 := os.Getenv("PEPPER_PART3")
	if p1 == "" || p2 == "" || p3 == "" {
		log.Fatal("PEPPER_PART1, PEPPER_PART2 and PEPPER_PART3 must all be set")
	}
	options.Pepper = p1 + p2 + p3

	options.AccessSecret = os.Getenv("ACCESS_TOKEN_SECRET")
	options.RefreshSecret = os.Getenv("REFRESH_TOKEN_SECRET")
	if options.AccessSecret == "" || options.RefreshSecret == "" {
		log.Fatal("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must be set")
	}
	if options.AccessSecret == options.RefreshSecret {
		log.Fatal("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET must differ")
	}

	return options
}

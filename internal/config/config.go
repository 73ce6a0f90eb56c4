// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Data     DataConfig
	Session  SessionConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// DataConfig holds the dataset file locations and sampling settings.
// The path defaults match the directory layout the dataset import
// produces.
type DataConfig struct {
	// UsersPath is the cleaned users CSV (default: data/processed/users_cleaned.csv)
	UsersPath string `env:"DATA_USERS_PATH" default:"data/processed/users_cleaned.csv"`

	// RatingsPath is the cleaned ratings CSV (default: data/processed/ratings_cleaned.csv)
	RatingsPath string `env:"DATA_RATINGS_PATH" default:"data/processed/ratings_cleaned.csv"`

	// BooksPath is the cleaned books CSV (default: data/processed/books_cleaned.csv)
	BooksPath string `env:"DATA_BOOKS_PATH" default:"data/processed/books_cleaned.csv"`

	// SampleSize is how many books a page draw shows (default: 5)
	SampleSize int `env:"DATA_SAMPLE_SIZE" default:"5"`
}

// SessionConfig holds the sign-in session settings.
type SessionConfig struct {
	// CookieName carries the session ID (default: bookrate_session)
	CookieName string `env:"SESSION_COOKIE_NAME" default:"bookrate_session"`

	// TTL is how long a session stays valid without signing in again (default: 12h)
	TTL time.Duration `env:"SESSION_TTL" default:"12h"`

	// Secure marks the session cookie Secure; enable behind TLS (default: false)
	Secure bool `env:"SESSION_SECURE" default:"false"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}

// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, extraction, browser and logging

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Extraction contains link extraction limits
	Extraction ExtractionConfig

	// Browser contains headless browser configuration
	Browser BrowserConfig

	// Logging contains log output configuration
	Logging LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimitRPS is the sustained per-client request rate
	RateLimitRPS int

	// RateLimitBurst is the per-client burst allowance
	RateLimitBurst int

	// ReadTimeout is the request read timeout in seconds
	ReadTimeout int

	// WriteTimeout is the response write timeout in seconds. It must
	// cover the longest allowed extraction, including browser settle.
	WriteTimeout int

	// IdleTimeout is the keep-alive idle timeout in seconds
	IdleTimeout int
}

// ExtractionConfig holds link extraction limits
type ExtractionConfig struct {
	// DefaultTimeout is the fetch budget in seconds when a request
	// does not specify one
	DefaultTimeout int

	// MaxTimeout caps the per-request fetch budget in seconds
	MaxTimeout int

	// DefaultWait is the browser settle budget in seconds when a
	// request does not specify one
	DefaultWait int

	// MaxWait caps the browser settle budget in seconds
	MaxWait int

	// MaxBodyBytes caps how much of a page body is read
	MaxBodyBytes int64

	// UserAgent overrides the built-in browser-like user agent
	UserAgent string
}

// BrowserConfig holds headless browser configuration
type BrowserConfig struct {
	// MaxSessions caps concurrent Chrome instances
	MaxSessions int

	// WindowWidth is the viewport width in pixels
	WindowWidth int

	// WindowHeight is the viewport height in pixels
	WindowHeight int

	// ChromePath points at the Chrome binary when it is not on PATH
	ChromePath string
}

// LoggingConfig holds log output configuration
type LoggingConfig struct {
	// Level is the minimum log level (debug/info/warn/error)
	Level string

	// Format selects json or text output
	Format string

	// File, when set, mirrors logs into a rotated file
	File string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			RateLimitRPS:   getEnvAsIntOrDefault("RATE_LIMIT_RPS", 5),
			RateLimitBurst: getEnvAsIntOrDefault("RATE_LIMIT_BURST", 10),
			ReadTimeout:    getEnvAsIntOrDefault("SERVER_READ_TIMEOUT", 15),
			WriteTimeout:   getEnvAsIntOrDefault("SERVER_WRITE_TIMEOUT", 210),
			IdleTimeout:    getEnvAsIntOrDefault("SERVER_IDLE_TIMEOUT", 120),
		},
		Extraction: ExtractionConfig{
			DefaultTimeout: getEnvAsIntOrDefault("EXTRACT_DEFAULT_TIMEOUT", 10),
			MaxTimeout:     getEnvAsIntOrDefault("EXTRACT_MAX_TIMEOUT", 120),
			DefaultWait:    getEnvAsIntOrDefault("EXTRACT_DEFAULT_WAIT", 10),
			MaxWait:        getEnvAsIntOrDefault("EXTRACT_MAX_WAIT", 60),
			MaxBodyBytes:   getEnvAsInt64OrDefault("EXTRACT_MAX_BODY_BYTES", 10<<20),
			UserAgent:      getEnvOrDefault("EXTRACT_USER_AGENT", ""),
		},
		Browser: BrowserConfig{
			MaxSessions:  getEnvAsIntOrDefault("BROWSER_MAX_SESSIONS", 2),
			WindowWidth:  getEnvAsIntOrDefault("BROWSER_WINDOW_WIDTH", 1920),
			WindowHeight: getEnvAsIntOrDefault("BROWSER_WINDOW_HEIGHT", 1080),
			ChromePath:   getEnvOrDefault("BROWSER_CHROME_PATH", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
			File:   getEnvOrDefault("LOG_FILE", ""),
		},
	}

	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsInt64OrDefault returns the environment variable as int64 or a default
func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return errors.New("port must be a number between 1 and 65535")
	}

	if c.Server.RateLimitRPS < 1 {
		return errors.New("rate limit rps must be at least 1")
	}

	if c.Server.RateLimitBurst < c.Server.RateLimitRPS {
		return errors.New("rate limit burst must be at least the rps")
	}

	if c.Extraction.DefaultTimeout < 1 {
		return errors.New("default timeout must be at least 1 second")
	}

	if c.Extraction.MaxTimeout < c.Extraction.DefaultTimeout {
		return errors.New("max timeout cannot be below the default timeout")
	}

	if c.Extraction.DefaultWait < 1 {
		return errors.New("default wait must be at least 1 second")
	}

	if c.Extraction.MaxWait < c.Extraction.DefaultWait {
		return errors.New("max wait cannot be below the default wait")
	}

	if c.Extraction.MaxBodyBytes < 1 {
		return errors.New("max body bytes must be positive")
	}

	if c.Browser.MaxSessions < 1 {
		return errors.New("browser max sessions must be at least 1")
	}

	if c.Browser.WindowWidth < 1 || c.Browser.WindowHeight < 1 {
		return errors.New("browser window dimensions must be positive")
	}

	if c.Server.WriteTimeout > 0 &&
		c.Server.WriteTimeout < c.Extraction.MaxTimeout+c.Extraction.MaxWait {
		return errors.New("server write timeout must cover the longest extraction")
	}

	return nil
}

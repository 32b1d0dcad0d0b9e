// pkg/config/config.go

// Package config holds the plain values a smoke run or the stub server needs.
// Values come from the environment first and can be overridden by CLI flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

const (
	DefaultBaseURL           = "http://localhost:5000"
	DefaultLowStockThreshold = 20
	DefaultStubAddr          = ":5000"
)

// Config holds the harness configuration.
type Config struct {
	// Inventory API
	BaseURL           string
	LowStockThreshold int

	// Zero means no client timeout, which is the net/http default.
	Timeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Stub server
	StubAddr string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		BaseURL:           getEnv("INVENTORY_API_URL", DefaultBaseURL),
		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", DefaultLowStockThreshold),
		Timeout:           time.Duration(getEnvInt("HTTP_TIMEOUT_MS", 0)) * time.Millisecond,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		StubAddr:          getEnv("STUB_ADDR", DefaultStubAddr),
	}
}

// BindClientFlags registers the flags that override the values used by a smoke run.
// The current field values become the flag defaults, so call it after Load.
func (c *Config) BindClientFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.BaseURL, "base-url", "u", c.BaseURL, "Base URL of the inventory API")
	fs.IntVarP(&c.LowStockThreshold, "threshold", "t", c.LowStockThreshold, "Quantity below which an item counts as low stock")
	fs.DurationVar(&c.Timeout, "timeout", c.Timeout, "Per-request timeout (0 disables it)")
	c.bindLogFlags(fs)
}

// BindStubFlags registers the flags used by the stub server.
func (c *Config) BindStubFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.StubAddr, "addr", "a", c.StubAddr, "Address the stub inventory API listens on")
	c.bindLogFlags(fs)
}

func (c *Config) bindLogFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "Log format: text or json")
}

// Validate checks the values a smoke run depends on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("base URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base URL %q: missing host", c.BaseURL)
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("low stock threshold must not be negative, got %d", c.LowStockThreshold)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := parseFormat(c.LogFormat); err != nil {
		return err
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

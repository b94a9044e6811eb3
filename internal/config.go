package internal

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

type StorageConfig struct {
	// Path is the sqlite file holding persisted slice snapshots
	// and the sealed credential record.
	Path      string `mapstructure:"path"`
	DeviceKey string `mapstructure:"device_key"`
	// DocumentsDir receives generated salary documents.
	DocumentsDir string `mapstructure:"documents_dir"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds a Config purely from environment variables,
// used when no config file is present.
func LoadConfigFromEnv() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           getEnv("PORTAL_API_BASE_URL", ""),
			Timeout:           getEnvDuration("PORTAL_API_TIMEOUT", 15*time.Second),
			RequestsPerSecond: getEnvFloat("PORTAL_API_REQUESTS_PER_SECOND", 5),
			Burst:             getEnvInt("PORTAL_API_BURST", 5),
		},
		Storage: StorageConfig{
			Path:         getEnv("PORTAL_STORAGE_PATH", "portal.db"),
			DeviceKey:    getEnv("PORTAL_DEVICE_KEY", ""),
			DocumentsDir: getEnv("PORTAL_DOCUMENTS_DIR", "documents"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("PORTAL_LOG_LEVEL", "info"),
			Format: getEnv("PORTAL_LOG_FORMAT", "text"),
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.API.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("api config: %v", err))
	}

	if err := c.Storage.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("storage config: %v", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("logging config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *APIConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("base_url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %s: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must be http or https, got %q", u.Scheme)
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	return nil
}

// NormalizedBaseURL returns the base URL without a trailing slash so
// relative paths can be joined with a plain concatenation.
func (c *APIConfig) NormalizedBaseURL() string {
	return strings.TrimRight(c.BaseURL, "/")
}

func (c *StorageConfig) Validate() error {
	if c.Path == "" {
		return errors.New("path is required")
	}
	if c.DeviceKey != "" {
		if _, err := c.GetDeviceKey(); err != nil {
			return err
		}
	}
	return nil
}

// GetDeviceKey decodes the base64 device key used to seal the auth
// token at rest. The key must be exactly 32 bytes.
func (c *StorageConfig) GetDeviceKey() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(c.DeviceKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode device key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("device key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Level)
	}
	switch c.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Format)
	}
	return nil
}

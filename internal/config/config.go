package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL     = "https://projectassociate-1.onrender.com/api"
	DefaultTimeout     = 60 * time.Second
	DefaultMaxUploadMB = 50
	DefaultLogLevel    = "info"
)

type Config struct {
	// BaseURL is the API origin including the /api prefix.
	BaseURL        string        `validate:"required,url"`
	Timeout        time.Duration `validate:"gt=0"`
	MaxUploadBytes int64         `validate:"gt=0"`
	LogFile        string        `validate:"required"`
	LogLevel       string        `validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Dir returns the per-user config directory (~/.interior).
func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.interior).
	if v := strings.TrimSpace(os.Getenv("INTERIOR_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".interior"), nil
}

// Load reads .env (if present) and the environment, then validates.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}

	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	timeout, err := envDuration("INTERIOR_HTTP_TIMEOUT", DefaultTimeout)
	if err != nil {
		return nil, err
	}
	maxMB, err := envInt("INTERIOR_MAX_UPLOAD_MB", DefaultMaxUploadMB)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BaseURL:        strings.TrimRight(envOr("INTERIOR_API_BASE", DefaultBaseURL), "/"),
		Timeout:        timeout,
		MaxUploadBytes: int64(maxMB) * 1024 * 1024,
		LogFile:        envOr("INTERIOR_LOG_FILE", filepath.Join(dir, "interior.log")),
		LogLevel:       strings.ToLower(envOr("INTERIOR_LOG_LEVEL", DefaultLogLevel)),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: invalid %s (%s=%v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func envOr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) (int, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return n, nil
}

func envDuration(k string, d time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d, nil
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", k, err)
	}
	return dur, nil
}

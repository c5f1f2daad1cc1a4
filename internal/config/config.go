package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Provider is the read-only view of the configuration handed to services.
type Provider interface {
	GetAppAddr() string
	GetDataDir() string
	GetProfileFile() string
	GetBuildDir() string
	GetAdminToken() string
	GetPrerenderOnChange() bool
	GetShutdownTimeout() time.Duration
	GetLogFormat() string
	GetLogLevel() string
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr           string        `validate:"required"`
	DataDir           string        `validate:"required"`
	ProfileFile       string        `validate:"required"`
	BuildDir          string        `validate:"required"`
	AdminToken        string        `validate:"omitempty,min=16"`
	PrerenderOnChange bool
	ShutdownTimeout   time.Duration `validate:"gt=0"`
	LogFormat         string        `validate:"oneof=text json"`
	LogLevel          string        `validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// New loads configuration from the .env file (if any) and the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// slog is not configured yet at this point.
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env files.
func FromEnv() (*Config, error) {
	cfg := &Config{
		AppAddr:     getEnv("APP_ADDR", ":8080"),
		DataDir:     getEnv("DATA_DIR", "data"),
		ProfileFile: getEnv("PROFILE_FILE", "profile.json"),
		BuildDir:    getEnv("BUILD_DIR", "build"),
		AdminToken:  os.Getenv("ADMIN_TOKEN"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.PrerenderOnChange, err = parseBool("PRERENDER_ON_CHANGE", false); err != nil {
		return nil, err
	}

	timeout := getEnv("SHUTDOWN_TIMEOUT", "10s")
	cfg.ShutdownTimeout, err = time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", timeout, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags on Config.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func (c *Config) GetAppAddr() string { return c.AppAddr }
func (c *Config) GetDataDir() string { return c.DataDir }
func (c *Config) GetProfileFile() string { return c.ProfileFile }
func (c *Config) GetBuildDir() string { return c.BuildDir }
func (c *Config) GetAdminToken() string { return c.AdminToken }
func (c *Config) GetPrerenderOnChange() bool { return c.PrerenderOnChange }
func (c *Config) GetShutdownTimeout() time.Duration { return c.ShutdownTimeout }
func (c *Config) GetLogFormat() string { return c.LogFormat }
func (c *Config) GetLogLevel() string { return c.LogLevel }

// ProfilePath is the on-disk location of the stored profile document.
func ProfilePath(p Provider) string {
	return filepath.Join(p.GetDataDir(), p.GetProfileFile())
}

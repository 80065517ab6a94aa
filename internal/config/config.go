// Package config loads the service configuration from an optional YAML file, a .env file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting of the service
type Config struct {
	Port            string        `yaml:"port"`
	LogLevel        string        `yaml:"log_level"`
	GinMode         string        `yaml:"gin_mode"`
	RedisAddr       string        `yaml:"redis_addr"`
	StorePrefix     string        `yaml:"store_prefix"`
	RestAPIURL      string        `yaml:"rest_api_url"`
	GrowLoopAPIURL  string        `yaml:"growloop_api_url"`
	HTTPTimeout     time.Duration `yaml:"http_timeout"`
	DemoTokenSecret string        `yaml:"demo_token_secret"`
	ListingsDSN     string        `yaml:"listings_dsn"`
}

// Default returns the settings used when nothing overrides them
func Default() Config {
	return Config{
		Port:           "8080",
		LogLevel:       "info",
		GinMode:        "release",
		StorePrefix:    "refashion",
		RestAPIURL:     "http://localhost:8000/api",
		GrowLoopAPIURL: "http://localhost:8080/api",
		HTTPTimeout:    30 * time.Second,
	}
}

// UsesRedis reports whether store and bus should be Redis backed
func (c Config) UsesRedis() bool {
	return c.RedisAddr != ""
}

// UsesPostgres reports whether listings should be stored in postgres
func (c Config) UsesPostgres() bool {
	return c.ListingsDSN != ""
}

// Load builds the configuration. Defaults are overlaid by the YAML file at path (when path is non-empty),
// then by variables from .env (missing file tolerated) and the process environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("loading .env: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	overrides := map[string]*string{
		"PORT":              &cfg.Port,
		"LOG_LEVEL":         &cfg.LogLevel,
		"GIN_MODE":          &cfg.GinMode,
		"REDIS_ADDR":        &cfg.RedisAddr,
		"STORE_PREFIX":      &cfg.StorePrefix,
		"REST_API_URL":      &cfg.RestAPIURL,
		"GROWLOOP_API_URL":  &cfg.GrowLoopAPIURL,
		"DEMO_TOKEN_SECRET": &cfg.DemoTokenSecret,
		"LISTINGS_DSN":      &cfg.ListingsDSN,
	}
	for name, dst := range overrides {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	if v, ok := os.LookupEnv("HTTP_TIMEOUT"); ok && v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("parsing HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	return nil
}

// parseTimeout accepts a Go duration ("15s") or a bare number of seconds ("15")
func parseTimeout(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

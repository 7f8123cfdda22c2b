// Package config loads regula settings from a YAML or JSON file, then
// applies REGULA_* environment overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration.
type Config struct {
	LogLevel   string           `yaml:"log_level" json:"log_level"`
	Simplifier SimplifierConfig `yaml:"simplifier" json:"simplifier"`
	HTTP       HTTPConfig       `yaml:"http" json:"http"`
	Redis      RedisConfig      `yaml:"redis" json:"redis"`
	// Catalog is a directory of catalog documents, read through Loam.
	Catalog string `yaml:"catalog" json:"catalog"`
}

type SimplifierConfig struct {
	// MaxPasses caps simplification passes; 0 runs until no rule applies.
	MaxPasses int `yaml:"max_passes" json:"max_passes"`
}

type HTTPConfig struct {
	Port        int             `yaml:"port" json:"port"`
	MaxBodySize int64           `yaml:"max_body_size" json:"max_body_size"`
	RateLimit   RateLimitConfig `yaml:"rate_limit" json:"rate_limit"`
}

type RateLimitConfig struct {
	// Requests per window; 0 disables limiting.
	Requests int    `yaml:"requests" json:"requests"`
	Window   string `yaml:"window" json:"window"`
}

// WindowDuration parses Window, defaulting to one minute.
func (r RateLimitConfig) WindowDuration() (time.Duration, error) {
	if r.Window == "" {
		return time.Minute, nil
	}
	d, err := time.ParseDuration(r.Window)
	if err != nil {
		return 0, fmt.Errorf("invalid rate limit window %q: %w", r.Window, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("rate limit window must be positive, got %s", d)
	}
	return d, nil
}

type RedisConfig struct {
	// Addr enables the shared Redis limiter when set; otherwise limits are per process.
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		HTTP: HTTPConfig{
			Port:        8080,
			MaxBodySize: 1 << 20,
			RateLimit:   RateLimitConfig{Window: "1m"},
		},
		Redis: RedisConfig{Prefix: "regula:ratelimit:"},
	}
}

// Load reads path over the defaults and applies the environment. An empty
// path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
		return nil
	}
	// Default to YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// ApplyEnv overrides fields from REGULA_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, set func(int64)) {
		v, ok := lookup(key)
		if !ok || v == "" {
			return
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		set(n)
	}

	str("REGULA_LOG_LEVEL", &c.LogLevel)
	str("REGULA_REDIS_ADDR", &c.Redis.Addr)
	str("REGULA_REDIS_PASSWORD", &c.Redis.Password)
	str("REGULA_RATE_WINDOW", &c.HTTP.RateLimit.Window)
	str("REGULA_CATALOG", &c.Catalog)
	num("REGULA_HTTP_PORT", func(n int64) { c.HTTP.Port = int(n) })
	num("REGULA_REDIS_DB", func(n int64) { c.Redis.DB = int(n) })
	num("REGULA_RATE_LIMIT", func(n int64) { c.HTTP.RateLimit.Requests = int(n) })
	num("REGULA_MAX_INPUT_SIZE", func(n int64) { c.HTTP.MaxBodySize = n })
	num("REGULA_MAX_PASSES", func(n int64) { c.Simplifier.MaxPasses = int(n) })

	return errors.Join(errs...)
}

// Package config loads service configuration from an optional YAML file with
// environment variable overrides. Env always wins so deployments can keep the
// file static.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"
)

// Provider configures the upstream generative waste-data service.
type Provider struct {
	Endpoint    string `yaml:"endpoint"`
	Model       string `yaml:"model"`
	APIKey      string `yaml:"api_key"`
	TimeoutSec  int    `yaml:"timeout_sec"`
	CacheTTLSec int    `yaml:"cache_ttl_sec"`
}

// Config is the full service configuration.
type Config struct {
	Port         string   `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
	RateRPS      float64  `yaml:"rate_rps"`
	RateBurst    int      `yaml:"rate_burst"`
	RedisURL     string   `yaml:"redis_url"`
	Provider     Provider `yaml:"provider"`
}

// Default mirrors the original service: Gemini via the Generative Language
// API, CORS restricted to the dashboard origins, a conservative rate limit.
func Default() Config {
	return Config{
		Port: "8080",
		AllowOrigins: []string{
			"https://get-data.vercel.app",
			"http://localhost:3000",
		},
		RateRPS:   10,
		RateBurst: 20,
		Provider: Provider{
			Endpoint:    "https://generativelanguage.googleapis.com",
			Model:       "gemini-pro",
			TimeoutSec:  30,
			CacheTTLSec: 600,
		},
	}
}

// Load reads path (when non-empty) over the defaults, then applies env
// overrides. A missing file at an explicitly configured path is an error; an
// empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("ALLOW_ORIGINS"); v != "" {
		c.AllowOrigins = splitCSV(v)
	}
	if v := os.Getenv("RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.RateRPS = f
		}
	}
	if v := os.Getenv("RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.Provider.APIKey = v
	}
	if v := os.Getenv("PROVIDER_ENDPOINT"); v != "" {
		c.Provider.Endpoint = v
	}
	if v := os.Getenv("PROVIDER_MODEL"); v != "" {
		c.Provider.Model = v
	}
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

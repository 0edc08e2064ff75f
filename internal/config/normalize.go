package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables read by Load. Each overrides the file value.
const (
	EnvTransitionMode = "CREMA_TRANSITION_MODE"
	EnvOutputDir      = "CREMA_OUTPUT_DIR"
	EnvMaxPressure    = "CREMA_MAX_PRESSURE"
	EnvRedisAddr      = "CREMA_REDIS_ADDR"
)

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv(EnvTransitionMode); ok && strings.TrimSpace(value) != "" {
		c.Mode = value
	}
	if value, ok := os.LookupEnv(EnvOutputDir); ok && strings.TrimSpace(value) != "" {
		c.OutputDir = value
	}
	if value, ok := os.LookupEnv(EnvMaxPressure); ok && strings.TrimSpace(value) != "" {
		if bar, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			c.MaxPressure = bar
		} else {
			c.MaxPressure = -1 // rejected by Validate
		}
	}
	if value, ok := os.LookupEnv(EnvRedisAddr); ok && strings.TrimSpace(value) != "" {
		c.Cache.RedisAddr = value
		if c.Cache.Backend == "" || c.Cache.Backend == CacheNone {
			c.Cache.Backend = CacheRedis
		}
	}
}

func (c *Config) normalize() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.OutputDir = strings.TrimSpace(c.OutputDir)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	c.Cache.Backend = strings.ToLower(strings.TrimSpace(c.Cache.Backend))
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheNone
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/crema/pkg/domain"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if _, err := domain.ParseTransitionMode(c.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must be set")
	}
	if c.MaxPressure <= 0 || c.MaxPressure > domain.DefaultMaxPressure {
		return fmt.Errorf("max_pressure must be in (0, %s]", domain.FormatValue(domain.DefaultMaxPressure))
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if err := c.validateLog(); err != nil {
		return err
	}
	return c.validateCache()
}

func (c *Config) validateLog() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case CacheNone, CacheMemory:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend %q must be none, memory or redis", c.Cache.Backend)
	}
	if c.Cache.TTL != "" {
		d, err := time.ParseDuration(c.Cache.TTL)
		if err != nil {
			return fmt.Errorf("cache.ttl: %w", err)
		}
		if d < 0 {
			return errors.New("cache.ttl must not be negative")
		}
	}
	return nil
}

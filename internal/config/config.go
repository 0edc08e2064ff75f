// Package config loads crema settings from a YAML or TOML file and the
// environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/crema/internal/adapters/file"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds every user-tunable setting.
type Config struct {
	Mode        string  `yaml:"mode" toml:"mode" json:"mode"`
	OutputDir   string  `yaml:"output_dir" toml:"output_dir" json:"output_dir"`
	MaxPressure float64 `yaml:"max_pressure" toml:"max_pressure" json:"max_pressure"`
	Workers     int     `yaml:"workers" toml:"workers" json:"workers"`
	Log         Log     `yaml:"log" toml:"log" json:"log"`
	Server      Server  `yaml:"server" toml:"server" json:"server"`
	Cache       Cache   `yaml:"cache" toml:"cache" json:"cache"`
}

// Log configures the application logger.
type Log struct {
	Level  string `yaml:"level" toml:"level" json:"level"`
	Format string `yaml:"format" toml:"format" json:"format"`
}

// Server configures the HTTP service.
type Server struct {
	Addr string `yaml:"addr" toml:"addr" json:"addr"`
}

// Cache configures the translation result cache.
type Cache struct {
	// Backend is "none", "memory" or "redis".
	Backend       string `yaml:"backend" toml:"backend" json:"backend"`
	RedisAddr     string `yaml:"redis_addr" toml:"redis_addr" json:"redis_addr"`
	RedisPassword string `yaml:"redis_password" toml:"redis_password" json:"redis_password"`
	RedisDB       int    `yaml:"redis_db" toml:"redis_db" json:"redis_db"`
	// TTL is a Go duration string such as "10m". Empty means no expiry.
	TTL string `yaml:"ttl" toml:"ttl" json:"ttl"`
}

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mode:        string(domain.DefaultTransitionMode),
		OutputDir:   file.DefaultOutputDir,
		MaxPressure: domain.DefaultMaxPressure,
		Workers:     4,
		Log:         Log{Level: "info", Format: "text"},
		Server:      Server{Addr: ":8080"},
		Cache:       Cache{Backend: CacheNone},
	}
}

// Load reads path (when non-empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := decode(path, data, &cfg); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q (use .yaml, .toml or .json)", ext)
	}
	return nil
}

// TransitionMode returns the parsed mode.
func (c *Config) TransitionMode() domain.TransitionMode {
	mode, err := domain.ParseTransitionMode(c.Mode)
	if err != nil {
		return domain.DefaultTransitionMode
	}
	return mode
}

// CacheTTL returns the parsed cache TTL (0 when unset).
func (c *Config) CacheTTL() time.Duration {
	if c.Cache.TTL == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0
	}
	return d
}

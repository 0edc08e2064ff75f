package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/crema"
	"github.com/aretw0/crema/internal/adapters/file"
	"github.com/aretw0/crema/internal/config"
	"github.com/aretw0/crema/pkg/adapters/memory"
	"github.com/aretw0/crema/pkg/adapters/redis"
	"github.com/aretw0/crema/pkg/observability"
	"github.com/aretw0/crema/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// App bundles the collaborators every command needs.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Translator *crema.Translator
	Store      *file.Store
	Locker     ports.Locker
	Registry   *prometheus.Registry
	Metrics    *observability.Metrics

	closers []func() error
}

// AppOptions tune NewApp.
type AppOptions struct {
	// Debug forces debug logging on Stderr.
	Debug bool
	// Service selects the configured logger; CLI commands stay silent unless Debug is set.
	Service bool
}

// NewApp wires a translator, cache, locker and metrics from cfg.
func NewApp(cfg *config.Config, opts AppOptions) (*App, error) {
	app := &App{
		Config:   cfg,
		Logger:   createLogger(cfg, opts),
		Store:    file.New(cfg.OutputDir),
		Locker:   file.NewLocker(),
		Registry: prometheus.NewRegistry(),
	}
	app.Metrics = observability.NewMetrics(app.Registry)

	cache, err := app.createCache()
	if err != nil {
		return nil, err
	}

	trOpts := []crema.Option{
		crema.WithMode(cfg.TransitionMode()),
		crema.WithMaxPressure(cfg.MaxPressure),
		crema.WithLogger(app.Logger),
		crema.WithLifecycleHooks(observability.Chain(
			app.Metrics.Hooks(),
			observability.LoggingHooks(app.Logger),
		)),
	}
	if cache != nil {
		trOpts = append(trOpts, crema.WithCache(cache))
	}
	app.Translator = crema.New(trOpts...)
	return app, nil
}

func (a *App) createCache() (ports.ResultCache, error) {
	ttl := a.Config.CacheTTL()
	switch a.Config.Cache.Backend {
	case config.CacheMemory:
		return memory.NewCache(memory.WithTTL(ttl)), nil
	case config.CacheRedis:
		c := redis.New(a.Config.Cache.RedisAddr, a.Config.Cache.RedisPassword, a.Config.Cache.RedisDB, redis.WithTTL(ttl))
		// Runs on different hosts sharing an output directory coordinate through Redis.
		a.Locker = redis.NewLocker(c.Client(), "crema:")
		a.closers = append(a.closers, c.Close)
		a.Logger.Debug("redis cache enabled", "addr", a.Config.Cache.RedisAddr)
		return c, nil
	case config.CacheNone, "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", a.Config.Cache.Backend)
}

// Close releases external connections.
func (a *App) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

package crema

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/crema/internal/compiler"
	"github.com/aretw0/crema/internal/runtime"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/aretw0/crema/pkg/ports"
)

// Result is the outcome of one translation.
type Result = domain.Translation

// Translator is the high-level entry point for the crema library.
// It wraps the parser and the internal runtime and provides a simplified API
// for consumers. A Translator is safe for concurrent use.
type Translator struct {
	runtime     *runtime.Engine
	parser      *compiler.Parser
	cache       ports.ResultCache
	mode        domain.TransitionMode
	maxPressure float64
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// Option defines a functional option for configuring the Translator.
type Option func(*Translator)

// WithMode sets the transition mode (default smart).
func WithMode(mode domain.TransitionMode) Option {
	return func(t *Translator) {
		t.mode = mode
	}
}

// WithMaxPressure sets the pump pressure ceiling in bar (default 15).
func WithMaxPressure(bar float64) Option {
	return func(t *Translator) {
		t.maxPressure = bar
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Translator) {
		t.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		t.logger = logger
	}
}

// WithCache memoizes TranslateBytes results.
func WithCache(cache ports.ResultCache) Option {
	return func(t *Translator) {
		t.cache = cache
	}
}

// New initializes a new Translator.
func New(opts ...Option) *Translator {
	t := &Translator{
		mode:        domain.DefaultTransitionMode,
		maxPressure: domain.DefaultMaxPressure,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.mode == "" {
		t.mode = domain.DefaultTransitionMode
	}
	if t.maxPressure <= 0 {
		t.maxPressure = domain.DefaultMaxPressure
	}
	// Ensure logger is initialized (so we don't pass nil to runtime)
	if t.logger == nil {
		t.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	t.parser = compiler.NewParser()
	t.runtime = runtime.NewEngine(
		runtime.WithMode(t.mode),
		runtime.WithMaxPressure(t.maxPressure),
		runtime.WithLifecycleHooks(t.hooks),
		runtime.WithLogger(t.logger),
	)
	return t
}

// Mode returns the configured transition mode.
func (t *Translator) Mode() domain.TransitionMode { return t.mode }

// MaxPressure returns the configured pressure ceiling.
func (t *Translator) MaxPressure() float64 { return t.maxPressure }

// WithMode returns a copy of t that translates under mode. The copy shares
// the cache, hooks and logger.
func (t *Translator) WithMode(mode domain.TransitionMode) *Translator {
	if mode == "" || mode == t.mode {
		return t
	}
	return New(
		WithMode(mode),
		WithMaxPressure(t.maxPressure),
		WithLifecycleHooks(t.hooks),
		WithLogger(t.logger),
		WithCache(t.cache),
	)
}

// TranslateProfile translates an already parsed and resolved profile.
func (t *Translator) TranslateProfile(profile *domain.Profile) (*Result, error) {
	doc, warnings, err := t.runtime.Translate(profile)
	if err != nil {
		return nil, err
	}
	return &Result{Profile: doc, Warnings: warnings}, nil
}

// TranslateBytes parses raw source JSON, resolves its variables and
// translates it. Parse warnings come before translation warnings.
func (t *Translator) TranslateBytes(ctx context.Context, data []byte) (*Result, error) {
	var key string
	if t.cache != nil {
		key = ports.CacheKey(t.mode, t.maxPressure, data)
		cached, err := t.cache.Get(ctx, key)
		if err == nil {
			t.logger.Debug("cache hit", "key", key)
			return cached, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			t.logger.Warn("cache lookup failed", "error", err)
		}
	}

	profile, parseWarnings, err := t.parser.Parse(data)
	if err != nil {
		return nil, err
	}
	if t.hooks.OnWarning != nil {
		for _, w := range parseWarnings {
			t.hooks.OnWarning(w)
		}
	}
	res, err := t.TranslateProfile(profile)
	if err != nil {
		return nil, err
	}
	res.Warnings = append(parseWarnings, res.Warnings...)
	if res.Warnings == nil {
		res.Warnings = []string{}
	}

	if t.cache != nil {
		if err := t.cache.Put(ctx, key, res); err != nil {
			t.logger.Warn("cache store failed", "error", err)
		}
	}
	return res, nil
}

// Translate implements ports.Translator.
func (t *Translator) Translate(ctx context.Context, req ports.TranslateRequest) (*domain.Translation, error) {
	tr := t
	if req.Mode != "" {
		mode, err := domain.ParseTransitionMode(string(req.Mode))
		if err != nil {
			return nil, err
		}
		tr = t.WithMode(mode)
	}
	return tr.TranslateBytes(ctx, req.Source)
}

// ErrorKind classifies a translation error for reporting:
// "input", "relative_trigger", "range" or "internal".
func ErrorKind(err error) string {
	return domain.ErrorKind(err)
}

var _ ports.Translator = (*Translator)(nil)

// String describes the translator configuration.
func (t *Translator) String() string {
	return fmt.Sprintf("crema(mode=%s, max_pressure=%s)", t.mode, domain.FormatValue(t.maxPressure))
}

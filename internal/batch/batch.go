// Package batch translates every profile in a directory with bounded
// parallelism.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/aretw0/crema/internal/adapters/file"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/aretw0/crema/pkg/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// LockTTL bounds how long a crashed run can hold a shared output lock.
const LockTTL = 10 * time.Minute

// Outcome is the result of translating one file.
type Outcome struct {
	File     string
	Output   string
	Warnings []string
	Err      error
}

// OK reports whether the file was translated and written.
func (o Outcome) OK() bool { return o.Err == nil }

// Report summarizes a batch run. Outcomes follow the input order.
type Report struct {
	RunID     string
	InputDir  string
	OutputDir string
	Outcomes  []Outcome
	Duration  time.Duration
}

// Succeeded counts files translated without error.
func (r *Report) Succeeded() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK() {
			n++
		}
	}
	return n
}

// Failed counts files that could not be translated.
func (r *Report) Failed() int { return len(r.Outcomes) - r.Succeeded() }

// Processor runs batch translations.
type Processor struct {
	translator ports.Translator
	store      *file.Store
	locker     ports.Locker
	workers    int
	logger     *slog.Logger
	onFile     func(Outcome)
}

// Option configures a Processor.
type Option func(*Processor)

// WithWorkers bounds the number of files translated at once.
func WithWorkers(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithLocker replaces the advisory lock guarding the output directory.
func WithLocker(l ports.Locker) Option {
	return func(p *Processor) {
		p.locker = l
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithProgress registers a callback invoked once per finished file.
// Calls are serialized.
func WithProgress(fn func(Outcome)) Option {
	return func(p *Processor) {
		p.onFile = fn
	}
}

// New creates a Processor writing through store.
func New(translator ports.Translator, store *file.Store, opts ...Option) *Processor {
	p := &Processor{
		translator: translator,
		store:      store,
		locker:     file.NewLocker(),
		workers:    runtime.NumCPU(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run translates every *.json file directly inside inputDir into outputDir
// (the store's output directory when empty) under mode. A failing file is
// recorded in its Outcome and never aborts the others. Run itself fails only
// when no input can be found or the output directory cannot be locked.
func (p *Processor) Run(ctx context.Context, inputDir, outputDir string, mode domain.TransitionMode) (*Report, error) {
	start := time.Now()
	files, err := file.Discover(inputDir)
	if err != nil {
		return nil, err
	}
	if outputDir == "" {
		outputDir = p.store.OutputDir
	}

	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	unlock, err := p.locker.Lock(ctx, outputDir, LockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock output directory: %w", err)
	}
	defer func() {
		if err := unlock(context.Background()); err != nil {
			logger.Warn("failed to release output lock", "error", err)
		}
	}()

	logger.Info("batch started", "input", inputDir, "output", outputDir, "files", len(files), "workers", p.workers)

	outcomes := make([]Outcome, len(files))
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, f := range files {
		g.Go(func() error {
			out := p.translateOne(ctx, f, filepath.Join(outputDir, filepath.Base(f)), mode)
			outcomes[i] = out
			if out.Err != nil {
				logger.Warn("file failed", "file", f, "error", out.Err)
			} else {
				logger.Debug("file translated", "file", f, "output", out.Output, "warnings", len(out.Warnings))
			}
			if p.onFile != nil {
				mu.Lock()
				p.onFile(out)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{
		RunID:     runID,
		InputDir:  inputDir,
		OutputDir: outputDir,
		Outcomes:  outcomes,
		Duration:  time.Since(start),
	}
	logger.Info("batch finished", "succeeded", report.Succeeded(), "failed", report.Failed(), "duration", report.Duration)
	return report, nil
}

func (p *Processor) translateOne(ctx context.Context, input, output string, mode domain.TransitionMode) Outcome {
	out := Outcome{File: input}
	if err := ctx.Err(); err != nil {
		out.Err = err
		return out
	}

	data, err := p.store.Read(input)
	if err != nil {
		out.Err = err
		return out
	}
	res, err := p.translator.Translate(ctx, ports.TranslateRequest{Source: data, Mode: mode})
	if err != nil {
		out.Err = err
		return out
	}
	if err := p.store.Save(output, res.Profile); err != nil {
		out.Err = err
		return out
	}
	out.Output = output
	out.Warnings = res.Warnings
	return out
}

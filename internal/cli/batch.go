package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/crema/internal/adapters/file"
	"github.com/aretw0/crema/internal/batch"
	"github.com/aretw0/crema/internal/presentation/tui"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/schollz/progressbar/v3"
)

// ErrBatchFailures is returned when at least one file in a batch failed.
var ErrBatchFailures = errors.New("some profiles failed to translate")

// BatchOptions contains the configuration for the translate-batch command.
type BatchOptions struct {
	InputDir  string
	OutputDir string
	Mode      domain.TransitionMode
	Workers   int
	Quiet     bool
}

// RunBatch translates a directory and prints a summary table to w.
func RunBatch(ctx context.Context, app *App, opts BatchOptions, w io.Writer) error {
	workers := opts.Workers
	if workers <= 0 {
		workers = app.Config.Workers
	}

	procOpts := []batch.Option{
		batch.WithWorkers(workers),
		batch.WithLocker(app.Locker),
		batch.WithLogger(app.Logger),
	}

	var bar *progressbar.ProgressBar
	if !opts.Quiet && isTerminal(os.Stderr) {
		total := -1
		if files, err := file.Discover(opts.InputDir); err == nil {
			total = len(files)
		}
		bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("translating"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		procOpts = append(procOpts, batch.WithProgress(func(batch.Outcome) {
			_ = bar.Add(1)
		}))
	}

	report, err := batch.New(app.Translator, app.Store, procOpts...).Run(ctx, opts.InputDir, opts.OutputDir, opts.Mode)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return err
	}

	if !opts.Quiet {
		fmt.Fprintln(w, tui.BatchTable(report))
		if ctx.Err() != nil {
			printSystemMessage(w, "%s during run %s.", stopReason(signalOf(ctx)), report.RunID)
		}
		printSystemMessage(w, "Run %s: %d translated, %d failed -> %s", report.RunID, report.Succeeded(), report.Failed(), report.OutputDir)
	}
	if report.Failed() > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailures, report.Failed(), len(report.Outcomes))
	}
	return nil
}

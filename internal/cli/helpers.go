package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/crema/internal/config"
	"github.com/aretw0/crema/internal/logging"
	"github.com/aretw0/crema/internal/presentation/tui"
	"golang.org/x/term"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// signalOf returns the signal that cancelled ctx when ctx records one.
func signalOf(ctx context.Context) os.Signal {
	if sc, ok := ctx.(interface{ Signal() os.Signal }); ok {
		return sc.Signal()
	}
	return nil
}

// stopReason describes why a cancelled run stopped.
func stopReason(sig os.Signal) string {
	switch {
	case sig == os.Interrupt:
		return "Interrupted"
	case sig != nil:
		return "Terminated"
	}
	return "Cancelled"
}

// createLogger configures the application logger.
// CLI commands log nothing unless debugging; services log at the configured level.
func createLogger(cfg *config.Config, opts AppOptions) *slog.Logger {
	switch {
	case opts.Debug:
		return logging.NewWithFormat(cfg.Log.Format, slog.LevelDebug)
	case opts.Service:
		return logging.NewWithFormat(cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))
	}
	return logging.NewNop()
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderMarkdown styles markdown with glamour on a terminal and passes it
// through unchanged otherwise.
func renderMarkdown(w io.Writer, markdown string) {
	if !isTerminal(w) {
		fmt.Fprint(w, markdown)
		return
	}
	out, err := tui.NewRenderer()(markdown)
	if err != nil {
		out = markdown
	}
	fmt.Fprint(w, out)
}

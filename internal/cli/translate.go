package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aretw0/crema/internal/presentation/tui"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/aretw0/crema/pkg/ports"
)

// StdoutOutput selects writing the translated JSON to standard output.
const StdoutOutput = "-"

// TranslateOptions contains the configuration for the translate command.
type TranslateOptions struct {
	Input  string
	Output string
	Mode   domain.TransitionMode
	Quiet  bool
}

// RunTranslate translates one file. With Output "-" the profile JSON goes to
// w; otherwise it is written to disk and a report is printed to w.
func RunTranslate(ctx context.Context, app *App, opts TranslateOptions, w io.Writer) error {
	data, err := app.Store.Read(opts.Input)
	if err != nil {
		return err
	}

	res, err := app.Translator.Translate(ctx, ports.TranslateRequest{Source: data, Mode: opts.Mode})
	if err != nil {
		return fmt.Errorf("%s: %w", opts.Input, err)
	}

	if opts.Output == StdoutOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Profile)
	}

	dest := app.Store.OutputPath(opts.Input, opts.Output)
	if err := app.Store.Save(dest, res.Profile); err != nil {
		return err
	}
	app.Logger.Info("profile translated", "input", opts.Input, "output", dest, "warnings", len(res.Warnings))

	if !opts.Quiet {
		renderMarkdown(w, tui.TranslationMarkdown(res, dest))
	}
	return nil
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/crema/internal/presentation/tui"
	"github.com/aretw0/crema/internal/validator"
)

// ErrAuditFailed is returned when a translated profile deviates from its source.
var ErrAuditFailed = errors.New("translation audit failed")

// Report formats accepted by RunReport.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidateOptions contains the configuration for the validate command.
type ValidateOptions struct {
	Source     string
	Translated string
	Verbose    bool
}

// RunValidate audits a translated profile against its source and prints the report.
func RunValidate(app *App, opts ValidateOptions, w io.Writer) error {
	report, err := validator.AuditFiles(app.Store, opts.Source, opts.Translated)
	if err != nil {
		return err
	}

	renderMarkdown(w, tui.AuditMarkdown(report, opts.Verbose))
	if !report.Passed() {
		return fmt.Errorf("%w: %s", ErrAuditFailed, report.Summary())
	}
	return nil
}

// ReportOptions contains the configuration for the validate-batch and report commands.
type ReportOptions struct {
	SourceDir     string
	TranslatedDir string
	// Format is FormatText (default) or FormatJSON.
	Format string
	// SummaryOnly prints the table without per-profile details.
	SummaryOnly bool
	// AllDetails prints the audit of every pair, not only the failed ones.
	AllDetails bool
	// Verbose lists every compared value in the details.
	Verbose bool
}

// RunReport audits every profile pair of two directories and prints the
// results as text or JSON. It fails when any pair failed.
func RunReport(app *App, opts ReportOptions, w io.Writer) error {
	format := strings.ToLower(opts.Format)
	if format == "" {
		format = FormatText
	}
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format %q: choose from %s, %s", opts.Format, FormatText, FormatJSON)
	}

	report, err := validator.AuditDir(app.Store, opts.SourceDir, opts.TranslatedDir)
	if err != nil {
		return err
	}
	for _, skip := range report.Skipped {
		app.Logger.Warn(skip, "source_dir", report.SourceDir, "translated_dir", report.TranslatedDir)
	}

	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(newReportJSON(report)); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
	} else {
		writeTextReport(w, report, opts)
	}

	if report.Failed() > 0 {
		return fmt.Errorf("%w: %d of %d profiles", ErrAuditFailed, report.Failed(), len(report.Results))
	}
	return nil
}

func writeTextReport(w io.Writer, report *validator.DirReport, opts ReportOptions) {
	for _, skip := range report.Skipped {
		printSystemMessage(w, "%s", skip)
	}
	fmt.Fprintln(w, tui.AuditTable(report))

	if !opts.SummaryOnly {
		for _, p := range report.Results {
			if p.Passed() && !opts.AllDetails {
				continue
			}
			if p.Err != nil {
				printSystemMessage(w, "%s: %v", p.Name, p.Err)
				continue
			}
			renderMarkdown(w, tui.AuditMarkdown(p.Report, opts.Verbose))
		}
	}

	if report.Failed() == 0 {
		printSystemMessage(w, "All %d profiles passed validation.", report.Passed())
		return
	}
	printSystemMessage(w, "%d of %d profiles failed validation.", report.Failed(), len(report.Results))
}

type reportJSON struct {
	SourceDir     string        `json:"source_dir"`
	TranslatedDir string        `json:"translated_dir"`
	Total         int           `json:"total"`
	Passed        int           `json:"passed"`
	Failed        int           `json:"failed"`
	Skipped       []string      `json:"skipped"`
	Profiles      []profileJSON `json:"profiles"`
}

type profileJSON struct {
	Name            string   `json:"name"`
	Source          string   `json:"source"`
	Translated      string   `json:"translated"`
	Passed          bool     `json:"passed"`
	ObjectivePassed bool     `json:"objective_passed"`
	TypesPassed     bool     `json:"types_passed"`
	Summary         string   `json:"summary,omitempty"`
	Error           string   `json:"error,omitempty"`
	Failures        []string `json:"failures"`
}

func newReportJSON(r *validator.DirReport) reportJSON {
	out := reportJSON{
		SourceDir:     r.SourceDir,
		TranslatedDir: r.TranslatedDir,
		Total:         len(r.Results),
		Passed:        r.Passed(),
		Failed:        r.Failed(),
		Skipped:       append([]string{}, r.Skipped...),
		Profiles:      make([]profileJSON, 0, len(r.Results)),
	}
	for _, p := range r.Results {
		pj := profileJSON{
			Name:       p.Name,
			Source:     p.Source,
			Translated: p.Translated,
			Passed:     p.Passed(),
			Failures:   []string{},
		}
		if p.Err != nil {
			pj.Error = p.Err.Error()
			pj.Failures = append(pj.Failures, "Validation error: "+p.Err.Error())
		} else {
			pj.ObjectivePassed = p.Report.ObjectivePassed()
			pj.TypesPassed = p.Report.TypesPassed()
			pj.Summary = p.Report.Summary()
			pj.Failures = failureLines(p.Report)
		}
		out.Profiles = append(out.Profiles, pj)
	}
	return out
}

// failureLines lists the reasons a report failed, one per line.
func failureLines(r *validator.Report) []string {
	lines := []string{}
	for _, c := range r.Failed() {
		if !c.TypeMatches() {
			lines = append(lines, fmt.Sprintf("Phase '%s': %s -> %s", c.Phase, c.StageType, c.PhaseType))
		}
		for _, d := range c.Deviations {
			if !d.Within {
				lines = append(lines, fmt.Sprintf("Phase '%s' %s: expected %.2f, got %.2f (allowed %.2f)",
					c.Phase, d.Variable, d.Expected, d.Actual, d.Allowed))
			}
		}
	}
	for _, name := range r.Unmatched {
		lines = append(lines, fmt.Sprintf("Phase '%s' has no source stage", name))
	}
	if !r.OrderingOK {
		lines = append(lines, "Phase ordering incorrect: preinfusion phases must come before brew phases")
	}
	return lines
}

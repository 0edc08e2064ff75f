package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/crema/internal/validator"
	"github.com/aretw0/crema/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Rendering falls back to the raw markdown if the renderer cannot be built.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// TranslationMarkdown describes a translated profile.
func TranslationMarkdown(res *domain.Translation, output string) string {
	var b strings.Builder
	p := res.Profile

	fmt.Fprintf(&b, "# %s\n\n", p.Label)
	fmt.Fprintf(&b, "Temperature **%s °C**, %d phases", domain.FormatValue(p.Temperature), len(p.Phases))
	if output != "" {
		fmt.Fprintf(&b, ", written to `%s`", output)
	}
	b.WriteString("\n\n")

	b.WriteString("| Phase | Kind | Duration (s) | Pump | Transition | Exits |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, ph := range p.Phases {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			ph.Name, ph.Phase, domain.FormatValue(ph.Duration), pumpText(ph.Pump),
			ph.Transition.Type, targetsText(ph.Targets))
	}

	if len(res.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}

// AuditMarkdown describes an audit report. Verbose lists every compared value.
func AuditMarkdown(r *validator.Report, verbose bool) string {
	var b strings.Builder

	status := "PASSED"
	if !r.Passed() {
		status = "FAILED"
	}
	fmt.Fprintf(&b, "# Audit: %s\n\n**%s** (%s)\n\n", r.Profile, status, r.Summary())

	b.WriteString("| Phase | Stage | Role | Result |\n|---|---|---|---|\n")
	for _, c := range r.Checks {
		result := "ok"
		if !c.Passed() {
			result = "**fail**"
		}
		role := string(c.StageType)
		if !c.TypeMatches() {
			role = fmt.Sprintf("%s != %s", c.StageType, c.PhaseType)
		}
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.Phase, c.Stage, role, result)
	}

	for _, c := range r.Checks {
		for _, d := range c.Deviations {
			if d.Within && !verbose {
				continue
			}
			fmt.Fprintf(&b, "\n- `%s` %s: expected %s, got %s (diff %.3f, %.1f%%, allowed %.3f)",
				c.Phase, d.Variable, domain.FormatValue(d.Expected), domain.FormatValue(d.Actual),
				d.Diff, d.Percent(), d.Allowed)
		}
	}
	if len(r.Unmatched) > 0 {
		fmt.Fprintf(&b, "\n\nUnmatched phases: %s", strings.Join(r.Unmatched, ", "))
	}
	if !r.OrderingOK {
		b.WriteString("\n\nPreinfusion phases must come before brew phases.")
	}
	b.WriteString("\n")
	return b.String()
}

func pumpText(p domain.Pump) string {
	if p.Target == domain.PumpFlow {
		return fmt.Sprintf("flow %s ml/s (max %s bar)", domain.FormatValue(p.Flow), domain.FormatValue(p.Pressure))
	}
	return fmt.Sprintf("pressure %s bar (max %s ml/s)", domain.FormatValue(p.Pressure), domain.FormatValue(p.Flow))
}

func targetsText(targets []domain.Target) string {
	if len(targets) == 0 {
		return "-"
	}
	parts := make([]string, len(targets))
	for i, t := range targets {
		parts[i] = fmt.Sprintf("%s %s %s", t.Type, t.Operator, domain.FormatValue(t.Value))
	}
	return strings.Join(parts, ", ")
}

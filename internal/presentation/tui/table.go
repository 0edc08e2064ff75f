package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aretw0/crema/internal/batch"
	"github.com/aretw0/crema/internal/validator"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// BatchTable renders one row per batch outcome plus a totals footer.
func BatchTable(r *batch.Report) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Status", "Warnings", "Detail"})

	for _, o := range r.Outcomes {
		status, detail := "ok", o.Output
		if !o.OK() {
			status, detail = "failed", o.Err.Error()
		}
		tw.AppendRow(table.Row{filepath.Base(o.File), status, strconv.Itoa(len(o.Warnings)), detail})
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d files", len(r.Outcomes)),
		fmt.Sprintf("%d ok / %d failed", r.Succeeded(), r.Failed()),
		"",
		r.Duration.Round(time.Millisecond).String(),
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, WidthMax: 60},
	})
	return tw.Render()
}

// AuditTable renders one row per audited profile pair plus a totals footer.
func AuditTable(r *validator.DirReport) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Profile", "Objective", "Types", "Result", "Detail"})

	for _, p := range r.Results {
		if p.Err != nil {
			tw.AppendRow(table.Row{p.Name, "-", "-", "error", p.Err.Error()})
			continue
		}
		result := "passed"
		if !p.Passed() {
			result = "failed"
		}
		tw.AppendRow(table.Row{p.Name, passMark(p.Report.ObjectivePassed()), passMark(p.Report.TypesPassed()), result, p.Report.Summary()})
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d profiles", len(r.Results)),
		"",
		"",
		fmt.Sprintf("%d passed / %d failed", r.Passed(), r.Failed()),
		fmt.Sprintf("%d skipped", len(r.Skipped)),
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, WidthMax: 60},
	})
	return tw.Render()
}

func passMark(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"autosig/internal/batch"
)

type SummaryRow struct {
	Label string
	Value string
	Good  bool // render the value in the success color
}

// SummaryRows flattens a batch report into renderable rows.
func SummaryRows(r *batch.Report) []SummaryRow {
	rows := []SummaryRow{
		{Label: "Files discovered", Value: fmt.Sprintf("%d", r.Total)},
		{Label: "Processed", Value: fmt.Sprintf("%d", r.Processed), Good: true},
		{Label: "Skipped (exists)", Value: fmt.Sprintf("%d", r.SkippedExisting)},
		{Label: "Errors", Value: fmt.Sprintf("%d", r.Errors)},
	}
	if r.Warnings > 0 {
		rows = append(rows, SummaryRow{Label: "Warnings", Value: fmt.Sprintf("%d", r.Warnings)})
	}
	if r.Cancelled > 0 {
		rows = append(rows, SummaryRow{Label: "Cancelled", Value: fmt.Sprintf("%d", r.Cancelled)})
	}
	return rows
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}
	for _, row := range rows {
		style := valueStyle
		if row.Good {
			style = okStyle
		}
		lines = append(lines, fmt.Sprintf("%s | %s",
			labelStyle.Render(padRight(row.Label, labelWidth)),
			style.Render(padRight(row.Value, valueWidth))))
	}
	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// RenderSkipList enumerates every non-processed file with its reason.
func RenderSkipList(entries []batch.SkipEntry) string {
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, warnStyle.Render("Not processed:"))
	for _, e := range entries {
		reason := e.Reason
		if reason == "" {
			reason = e.Outcome.String()
		}
		lines = append(lines, fmt.Sprintf("  %s %s (%s)",
			noteStyle.Render("-"), e.Path, reason))
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var valueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)

// Package reports provides daily and weekly report generation for flowstate.
package reports

import (
	"fmt"
	"strings"
)

// FormatDailyMarkdown formats a daily report as Markdown.
func FormatDailyMarkdown(report *DailyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Daily Report - %s\n\n", report.Date.Format("Monday, January 2, 2006"))

	fmt.Fprintf(&b, "## Focus\n\n")
	fmt.Fprintf(&b, "- Total: %s across %d sessions\n", formatMinutes(report.Focus.TotalMinutes), report.Focus.Sessions)
	for _, cat := range report.Focus.ByCategory {
		fmt.Fprintf(&b, "- %s: %s (%.0f%%)\n", cat.Category, formatMinutes(cat.Minutes), cat.Percentage)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Habits (%d/%d due, %.0f%%)\n\n", report.Habits.CompletedCount, report.Habits.DueCount, report.Habits.CompletionRate)
	for _, h := range report.Habits.Habits {
		mark := " "
		if h.Done {
			mark = "x"
		}
		suffix := ""
		if !h.Due {
			suffix = " (not due)"
		}
		if h.Streak > 1 {
			suffix += fmt.Sprintf(" (%d day streak)", h.Streak)
		}
		fmt.Fprintf(&b, "- [%s] %s%s\n", mark, h.Name, suffix)
	}

	return b.String()
}

// FormatWeeklyMarkdown formats a weekly report as Markdown.
func FormatWeeklyMarkdown(report *WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Report - %s to %s\n\n",
		report.StartDate.Format("Jan 2"), report.EndDate.Format("Jan 2, 2006"))

	fmt.Fprintf(&b, "## Focus\n\n")
	fmt.Fprintf(&b, "- Total: %s across %d sessions (avg %s/day)\n",
		formatMinutes(report.Focus.TotalMinutes), report.Focus.TotalSessions, formatMinutes(report.Focus.DailyAverage))
	for _, cat := range report.Focus.ByCategory {
		fmt.Fprintf(&b, "- %s: %s (%.0f%%)\n", cat.Category, formatMinutes(cat.Minutes), cat.Percentage)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "| Day | Focus | Sessions |\n|-----|-------|----------|\n")
	for _, day := range report.Focus.ByDay {
		fmt.Fprintf(&b, "| %s | %s | %d |\n", day.DayOfWeek, formatMinutes(day.Minutes), day.Sessions)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "## Habits (%d/%d, %.0f%%)\n\n", report.Habits.TotalCompleted, report.Habits.TotalExpected, report.Habits.OverallRate)
	for _, h := range report.Habits.Habits {
		var days strings.Builder
		for _, done := range h.DaysCompleted {
			if done {
				days.WriteString("#")
			} else {
				days.WriteString(".")
			}
		}
		fmt.Fprintf(&b, "- %s: %s %d/%d (%.0f%%)\n", h.Name, days.String(), h.CompletedCount, h.ExpectedCount, h.CompletionRate)
	}

	return b.String()
}

// formatMinutes renders minutes as "1h 30m" or "45m".
func formatMinutes(minutes int) string {
	if minutes >= 60 {
		if minutes%60 == 0 {
			return fmt.Sprintf("%dh", minutes/60)
		}
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

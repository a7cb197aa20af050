package ui

import (
	"fmt"
	"strings"
	"time"

	"flowstate/internal/app"
	"flowstate/internal/config"
	"flowstate/internal/metrics"
	"flowstate/internal/store"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AnalyticsPane renders derived focus and habit statistics.
type AnalyticsPane struct {
	store   *store.Store
	styles  *Styles
	focused bool
	width   int
	height  int
	offset  int // vertical scroll offset in lines

	keys AnalyticsKeyMap
}

// NewAnalyticsPane creates an analytics pane with default key bindings.
func NewAnalyticsPane(st *store.Store, styles *Styles) *AnalyticsPane {
	return NewAnalyticsPaneWithKeys(st, styles, &config.KeysConfig{})
}

// NewAnalyticsPaneWithKeys creates an analytics pane with custom key bindings.
func NewAnalyticsPaneWithKeys(st *store.Store, styles *Styles, keyCfg *config.KeysConfig) *AnalyticsPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &AnalyticsPane{
		store:  st,
		styles: styles,
		keys:   NewAnalyticsKeyMap(keyCfg),
	}
}

// SetSize sets the pane dimensions.
func (p *AnalyticsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *AnalyticsPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *AnalyticsPane) IsFocused() bool {
	return p.focused
}

// Update handles messages for the analytics pane.
func (p *AnalyticsPane) Update(msg tea.Msg) tea.Cmd {
	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.offset = max(p.offset-1, 0)
		case tea.MouseButtonWheelDown:
			p.offset++
		}

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Up):
			p.offset = max(p.offset-1, 0)
		case key.Matches(msg, p.keys.Down):
			p.offset++
		case key.Matches(msg, p.keys.Top):
			p.offset = 0
		case key.Matches(msg, p.keys.Bottom):
			p.offset = 1 << 10 // View clamps to content height
		}
	}

	return nil
}

// View renders the analytics pane.
func (p *AnalyticsPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("📊 ANALYTICS")
	b.WriteString(title)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styleMutedText(strings.Repeat("─", sepWidth)))
	b.WriteString("\n\n")

	b.WriteString(p.renderContent())

	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// renderContent builds the stats body, applying the scroll offset.
func (p *AnalyticsPane) renderContent() string {
	sessions := p.store.Sessions()
	var b strings.Builder

	today := p.store.FocusDataForDate(p.store.Today())
	b.WriteString(p.statLine("Today", fmt.Sprintf("%s in %d sessions",
		formatMinutesShort(today.Minutes), today.Sessions)))

	weekStart := p.store.Now().AddDate(0, 0, -6)
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, weekStart.Location())
	b.WriteString(p.statLine("Last 7 days", formatMinutesShort(metrics.TotalFocusMinutes(sessions, weekStart))))

	b.WriteString(p.statLine("All time", fmt.Sprintf("%s in %d sessions",
		formatMinutesShort(metrics.TotalFocusMinutes(sessions, time.Time{})),
		metrics.CountFocusSessions(sessions, time.Time{}))))

	monthStart := p.store.Now().AddDate(0, 0, -29)
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), monthStart.Day(), 0, 0, 0, 0, monthStart.Location())
	b.WriteString(p.statLine("Daily avg (30d)", formatMinutesShort(metrics.TotalFocusMinutes(sessions, monthStart)/30)))

	streak := p.store.FocusStreak()
	b.WriteString(p.statLine("Focus streak", fmt.Sprintf("%d days (best %d)", streak.Current, streak.Longest)))

	b.WriteString(p.statLine("Habits this week", fmt.Sprintf("%d%%", p.store.WeeklyHabitRate())))
	b.WriteString(p.statLine("Active habits", fmt.Sprintf("%d", len(p.store.ActiveHabits()))))

	if hour := metrics.PeakHour(sessions, time.Time{}); hour >= 0 {
		b.WriteString(p.statLine("Peak hour", fmt.Sprintf("%02d:00", hour)))
	}

	b.WriteString("\n")
	b.WriteString("  " + p.styleMutedText("Focus by day") + "\n")
	b.WriteString(p.renderWeekChart(sessions))

	if totals := metrics.CategoryTotals(sessions, time.Time{}); len(totals) > 0 {
		b.WriteString("\n")
		b.WriteString("  " + p.styleMutedText("By category") + "\n")
		for i, ct := range totals {
			if i >= 5 {
				break
			}
			b.WriteString(fmt.Sprintf("    %-12s %s\n",
				ct.Category,
				p.styles.StatValueStyle.Render(formatMinutesShort(ct.Minutes))))
		}
	}

	return p.clipToOffset(b.String())
}

// statLine renders one label/value stat row.
func (p *AnalyticsPane) statLine(label, value string) string {
	return fmt.Sprintf("  %s %s\n",
		p.styles.StatLabelStyle.Render(fmt.Sprintf("%-18s", label)),
		p.styles.StatValueStyle.Render(value))
}

// renderWeekChart draws the last seven days of focus minutes as a bar chart.
func (p *AnalyticsPane) renderWeekChart(sessions []app.FocusSession) string {
	days := metrics.FocusByDay(sessions, 7, p.store.Now())

	chartWidth := p.width - 6
	if chartWidth < 21 {
		chartWidth = 21
	}
	chartHeight := 8
	if p.height < 24 {
		chartHeight = 6
	}

	chart := barchart.New(chartWidth, chartHeight)
	barStyle := lipgloss.NewStyle().Foreground(p.styles.ColorPrimary)

	bars := make([]barchart.BarData, 0, len(days))
	for _, d := range days {
		label := d.Date
		if t, err := time.Parse(app.DateFormat, d.Date); err == nil {
			label = t.Format("Mon")[:2]
		}
		bars = append(bars, barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  "focus",
				Value: float64(d.Minutes),
				Style: barStyle,
			}},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart.View()
}

// clipToOffset drops offset lines from the top, clamping the offset so the
// last line stays visible.
func (p *AnalyticsPane) clipToOffset(content string) string {
	lines := strings.Split(content, "\n")
	if p.offset >= len(lines) {
		p.offset = max(0, len(lines)-1)
	}
	return strings.Join(lines[p.offset:], "\n")
}

// styleMutedText applies muted style to text.
func (p *AnalyticsPane) styleMutedText(s string) string {
	return p.styles.StatLabelStyle.Render(s)
}

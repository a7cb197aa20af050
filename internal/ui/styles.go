package ui

import (
	"strings"

	"flowstate/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles carries the full palette and every prebuilt component style.
// Panes receive a shared *Styles at construction and never build
// lipgloss styles on the render path.
type Styles struct {
	ColorPrimary   lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorSuccess   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorBg        lipgloss.Color
	ColorBgLight   lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	PaneStyle        lipgloss.Style
	PaneFocusedStyle lipgloss.Style
	PaneTitleStyle   lipgloss.Style

	TimerClockStyle    lipgloss.Style
	TimerFocusStyle    lipgloss.Style
	TimerBreakStyle    lipgloss.Style
	TimerPausedStyle   lipgloss.Style
	TimerIdleStyle     lipgloss.Style
	TimerCategoryStyle lipgloss.Style
	SessionDotDone     string
	SessionDotPending  string

	HabitDoneIcon      string
	HabitUndoneIcon    string
	HabitNotDueIcon    string
	HabitStreakStyle   lipgloss.Style
	HabitNameStyle     lipgloss.Style
	HabitArchivedStyle lipgloss.Style
	HabitSelectedStyle lipgloss.Style

	StatLabelStyle lipgloss.Style
	StatValueStyle lipgloss.Style
	ChartAxisStyle lipgloss.Style

	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style

	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style

	InputPromptStyle lipgloss.Style
	InputTextStyle   lipgloss.Style
}

// NewStyles builds styles from the app config's theme section.
func NewStyles(cfg *config.Config, dark bool) *Styles {
	return NewStylesFromTheme(&cfg.Theme, dark)
}

// NewStylesFromTheme builds styles from a theme, substituting defaults
// for any color the theme leaves empty. The dark flag selects between
// the two background/text palettes.
func NewStylesFromTheme(theme *config.ThemeConfig, dark bool) *Styles {
	pick := func(hex, fallback string) lipgloss.Color {
		if hex == "" {
			hex = fallback
		}
		return lipgloss.Color(hex)
	}

	s := &Styles{
		ColorPrimary: pick(theme.Primary, "#E11D48"),
		ColorMuted:   pick(theme.Muted, "#6B7280"),
		ColorAccent:  pick(theme.Accent, "#10B981"),
		ColorDanger:  lipgloss.Color("#EF4444"),
		ColorWarning: lipgloss.Color("#F59E0B"),
		ColorSuccess: lipgloss.Color("#10B981"),
	}
	if dark {
		s.ColorBg = pick(theme.Background, "#1F2937")
		s.ColorBgLight = lipgloss.Color("#374151")
		s.ColorText = pick(theme.Text, "#F9FAFB")
		s.ColorTextMuted = lipgloss.Color("#9CA3AF")
	} else {
		s.ColorBg = pick(theme.Background, "#F9FAFB")
		s.ColorBgLight = lipgloss.Color("#E5E7EB")
		s.ColorText = pick(theme.Text, "#111827")
		s.ColorTextMuted = lipgloss.Color("#6B7280")
	}
	s.build()
	return s
}

// build derives every component style from the palette.
func (s *Styles) build() {
	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	bold := func(c lipgloss.Color) lipgloss.Style { return fg(c).Bold(true) }
	dot := func(c lipgloss.Color, glyph string) string { return fg(c).Render(glyph) }
	pane := func(border lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1)
	}

	s.TitleStyle = bold(lipgloss.Color("#F9FAFB")).Background(s.ColorPrimary).Padding(0, 1)
	s.DateStyle = fg(s.ColorTextMuted)

	s.PaneStyle = pane(s.ColorMuted)
	s.PaneFocusedStyle = pane(s.ColorPrimary)
	s.PaneTitleStyle = bold(s.ColorPrimary).MarginBottom(1)

	s.TimerClockStyle = bold(s.ColorText)
	s.TimerFocusStyle = bold(s.ColorPrimary)
	s.TimerBreakStyle = bold(s.ColorSuccess)
	s.TimerPausedStyle = bold(s.ColorWarning)
	s.TimerIdleStyle = fg(s.ColorMuted)
	s.TimerCategoryStyle = bold(s.ColorAccent)
	s.SessionDotDone = dot(s.ColorPrimary, "●")
	s.SessionDotPending = dot(s.ColorMuted, "○")

	s.HabitDoneIcon = dot(s.ColorSuccess, "●")
	s.HabitUndoneIcon = dot(s.ColorMuted, "○")
	s.HabitNotDueIcon = dot(s.ColorBgLight, "·")
	s.HabitStreakStyle = bold(s.ColorWarning)
	s.HabitNameStyle = fg(s.ColorText)
	s.HabitArchivedStyle = fg(s.ColorTextMuted).Strikethrough(true)
	s.HabitSelectedStyle = bold(s.ColorText).Background(s.ColorBgLight)

	s.StatLabelStyle = fg(s.ColorTextMuted)
	s.StatValueStyle = bold(s.ColorText)
	s.ChartAxisStyle = fg(s.ColorTextMuted)

	s.HelpStyle = fg(s.ColorTextMuted)
	s.HelpKeyStyle = bold(s.ColorAccent)

	s.StatusStyle = fg(s.ColorSuccess).Italic(true)
	s.ErrorStyle = bold(s.ColorDanger)

	s.InputPromptStyle = bold(s.ColorPrimary)
	s.InputTextStyle = fg(s.ColorText)
}

// RenderHelp formats alternating key/description pairs into a single
// help line, e.g. RenderHelp("a", "add", "q", "quit").
func (s *Styles) RenderHelp(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.HelpKeyStyle.Render("[" + pairs[i] + "]"))
		b.WriteString(" ")
		b.WriteString(s.HelpStyle.Render(pairs[i+1]))
	}
	return b.String()
}

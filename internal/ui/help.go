package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders the full keyboard reference as a centered modal.
type HelpOverlay struct {
	width  int
	height int
	styles *Styles
}

func NewHelpOverlay(styles *Styles) *HelpOverlay {
	return &HelpOverlay{styles: styles}
}

// SetSize sets the terminal dimensions used for centering.
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

type helpEntry struct {
	key  string
	desc string
}

type helpSection struct {
	title   string
	entries []helpEntry
}

var helpSections = []helpSection{
	{"Global", []helpEntry{
		{"Tab", "Switch pane"},
		{"1 / 2 / 3", "Timer / Habits / Analytics"},
		{"Ctrl+T", "Toggle dark mode"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}},
	{"Timer", []helpEntry{
		{"Space", "Start / pause / resume"},
		{"r", "Reset interval"},
		{"s", "Skip to next interval"},
		{"c", "Pick focus category"},
		{"o", "Pomodoro settings"},
	}},
	{"Habits", []helpEntry{
		{"a", "Add habit"},
		{"e", "Edit habit"},
		{"Space / d", "Toggle today"},
		{"z", "Archive habit"},
		{"x", "Delete habit"},
		{"j / k", "Navigate up/down"},
		{"g / G", "Go to top/bottom"},
	}},
	{"Input Mode", []helpEntry{
		{"Enter", "Save"},
		{"Esc", "Cancel"},
	}},
}

// View renders the overlay centered in the terminal.
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(h.styles.ColorPrimary).MarginBottom(1)
	section := lipgloss.NewStyle().Bold(true).Foreground(h.styles.ColorAccent).MarginTop(1)
	keyCol := lipgloss.NewStyle().Foreground(h.styles.ColorWarning).Width(12)
	descCol := lipgloss.NewStyle().Foreground(h.styles.ColorText)
	footer := lipgloss.NewStyle().Foreground(h.styles.ColorTextMuted).Italic(true)

	var b strings.Builder
	b.WriteString(title.Render("📖 flowstate - Keyboard Shortcuts"))
	b.WriteString("\n")

	for _, s := range helpSections {
		b.WriteString("\n")
		b.WriteString(section.Render(s.title))
		b.WriteString("\n")
		for _, e := range s.entries {
			b.WriteString(keyCol.Render(e.key))
			b.WriteString(descCol.Render(e.desc))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(footer.Render("Press ? or Esc to close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth).
		Render(b.String())

	return RenderCentered(box, h.width, h.height)
}

// RenderCentered places content in the middle of a width x height cell.
func RenderCentered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

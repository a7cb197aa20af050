package ui

import (
	"fmt"
	"strings"

	"flowstate/internal/app"
	"flowstate/internal/config"
	"flowstate/internal/pomodoro"
	"flowstate/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// timerMode selects which interaction layer the timer pane is in.
type timerMode int

const (
	timerModeNormal timerMode = iota
	timerModeCategory
	timerModeSettings
)

// settings editor field order
const (
	setFieldFocus = iota
	setFieldShortBreak
	setFieldLongBreak
	setFieldSessions
	setFieldSound
	setFieldCount
)

// TimerPane renders the pomodoro countdown and handles its controls.
type TimerPane struct {
	store   *store.Store
	styles  *Styles
	focused bool
	width   int
	height  int

	mode      timerMode
	catCursor int
	setCursor int

	keys      TimerKeyMap
	inputKeys InputKeyMap
	navKeys   NavigationKeyMap
}

// NewTimerPane creates a timer pane with default key bindings.
func NewTimerPane(st *store.Store, styles *Styles) *TimerPane {
	return NewTimerPaneWithKeys(st, styles, &config.KeysConfig{})
}

// NewTimerPaneWithKeys creates a timer pane with custom key bindings.
func NewTimerPaneWithKeys(st *store.Store, styles *Styles, keyCfg *config.KeysConfig) *TimerPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &TimerPane{
		store:     st,
		styles:    styles,
		keys:      NewTimerKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
		navKeys:   NewNavigationKeyMap(keyCfg),
	}
}

// SetSize sets the pane dimensions.
func (p *TimerPane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetFocused sets whether this pane is focused.
func (p *TimerPane) SetFocused(focused bool) {
	p.focused = focused
	if !focused {
		p.mode = timerModeNormal
	}
}

// IsFocused returns whether this pane is focused.
func (p *TimerPane) IsFocused() bool {
	return p.focused
}

// IsEditing reports whether the category picker or settings editor is open,
// in which case global single-key shortcuts must not fire.
func (p *TimerPane) IsEditing() bool {
	return p.mode != timerModeNormal
}

// Update handles messages for the timer pane.
func (p *TimerPane) Update(msg tea.Msg) tea.Cmd {
	switch p.mode {
	case timerModeCategory:
		return p.updateCategory(msg)
	case timerModeSettings:
		return p.updateSettings(msg)
	}

	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Toggle):
			p.toggle()

		case key.Matches(msg, p.keys.Reset):
			p.store.Reset()

		case key.Matches(msg, p.keys.Skip):
			p.store.Skip()

		case key.Matches(msg, p.keys.Category):
			p.openCategoryPicker()

		case key.Matches(msg, p.keys.Settings):
			p.mode = timerModeSettings
			p.setCursor = 0
		}
	}

	return nil
}

// toggle starts, pauses, or resumes depending on the machine state.
func (p *TimerPane) toggle() {
	switch p.store.Timer().State {
	case pomodoro.StateIdle:
		p.store.Start()
	case pomodoro.StatePaused:
		p.store.Resume()
	default:
		p.store.Pause()
	}
}

func (p *TimerPane) openCategoryPicker() {
	p.mode = timerModeCategory
	p.catCursor = 0
	current := p.store.Timer().Category
	for i, c := range app.Categories {
		if c == current {
			p.catCursor = i
			break
		}
	}
}

// updateCategory handles keys while the category picker is open.
func (p *TimerPane) updateCategory(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, p.navKeys.Up):
		p.catCursor = max(p.catCursor-1, 0)

	case key.Matches(keyMsg, p.navKeys.Down):
		p.catCursor = min(p.catCursor+1, len(app.Categories)-1)

	case key.Matches(keyMsg, p.inputKeys.Confirm):
		p.store.SetSelectedCategory(app.Categories[p.catCursor])
		p.mode = timerModeNormal

	case key.Matches(keyMsg, p.inputKeys.Cancel):
		p.mode = timerModeNormal
	}

	return nil
}

// updateSettings handles keys while the settings editor is open. Every
// adjustment applies immediately; there is no pending state to commit.
func (p *TimerPane) updateSettings(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, p.navKeys.Up):
		p.setCursor = max(p.setCursor-1, 0)

	case key.Matches(keyMsg, p.navKeys.Down):
		p.setCursor = min(p.setCursor+1, setFieldCount-1)

	case key.Matches(keyMsg, p.inputKeys.Confirm), key.Matches(keyMsg, p.inputKeys.Cancel):
		p.mode = timerModeNormal

	default:
		switch keyMsg.String() {
		case "h", "left", "-":
			p.adjustSetting(-1)
		case "l", "right", "+", "=":
			p.adjustSetting(+1)
		case " ":
			if p.setCursor == setFieldSound {
				p.adjustSetting(+1)
			}
		case "0":
			p.store.ResetSessionCounter()
		}
	}

	return nil
}

// adjustSetting nudges the selected field. The store clamps out-of-range
// values, so the editor does not duplicate the limits.
func (p *TimerPane) adjustSetting(delta int) {
	settings := p.store.Settings()
	var patch app.SettingsPatch

	switch p.setCursor {
	case setFieldFocus:
		v := settings.FocusMinutes + delta
		patch.FocusMinutes = &v
	case setFieldShortBreak:
		v := settings.ShortBreakMinutes + delta
		patch.ShortBreakMinutes = &v
	case setFieldLongBreak:
		v := settings.LongBreakMinutes + delta
		patch.LongBreakMinutes = &v
	case setFieldSessions:
		v := settings.SessionsUntilLongBreak + delta
		patch.SessionsUntilLongBreak = &v
	case setFieldSound:
		v := !settings.SoundEnabled
		patch.SoundEnabled = &v
	}

	p.store.UpdateSettings(patch)
}

// handleMouse processes mouse events for the timer pane.
func (p *TimerPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	// Clock block sits after title (1) + separator (1) + blank (1).
	const headerRows = 3

	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		if p.mode == timerModeNormal && msg.Y >= headerRows && msg.Y < headerRows+4 {
			p.toggle()
		}
	}

	return nil
}

// View renders the timer pane.
func (p *TimerPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("⏱  FOCUS")
	b.WriteString(title)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styleMutedText(strings.Repeat("─", sepWidth)))
	b.WriteString("\n\n")

	switch p.mode {
	case timerModeCategory:
		b.WriteString(p.renderCategoryPicker())
	case timerModeSettings:
		b.WriteString(p.renderSettingsEditor())
	default:
		b.WriteString(p.renderCountdown())
	}

	content := b.String()
	style := p.styles.PaneStyle
	if p.focused {
		style = p.styles.PaneFocusedStyle
	}

	return style.Width(p.width).Height(p.height).Render(content)
}

// renderCountdown renders the clock, state line, and session progress.
func (p *TimerPane) renderCountdown() string {
	var b strings.Builder

	machine := p.store.Timer()
	settings := p.store.Settings()

	b.WriteString("  " + p.kindLabel(machine.Kind) + "\n\n")

	clock := formatClock(machine.Remaining)
	b.WriteString("    " + p.clockStyle(machine).Render(clock) + "\n\n")

	switch machine.State {
	case pomodoro.StateIdle:
		b.WriteString("  " + p.styleMutedText("Press space to start") + "\n")
	case pomodoro.StatePaused:
		b.WriteString("  " + p.styles.TimerPausedStyle.Render("❚❚ Paused") + "\n")
	default:
		b.WriteString("  " + p.styles.TimerFocusStyle.Render("▶ Running") + "\n")
	}

	if machine.Kind == app.KindFocus {
		b.WriteString("  " + p.styles.TimerCategoryStyle.Render("◆ "+string(machine.Category)) + "\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + p.renderSessionDots(machine, settings) + "\n\n")

	today := p.store.FocusDataForDate(p.store.Today())
	b.WriteString("  " + p.styles.StatLabelStyle.Render("Today:  ") +
		p.styles.StatValueStyle.Render(formatMinutesShort(today.Minutes)) + "\n")

	streak := p.store.FocusStreak()
	if streak.Current > 0 {
		b.WriteString("  " + p.styles.StatLabelStyle.Render("Streak: ") +
			p.styles.HabitStreakStyle.Render(fmt.Sprintf("%d days 🔥", streak.Current)) + "\n")
	}

	return b.String()
}

// renderSessionDots shows progress toward the next long break.
func (p *TimerPane) renderSessionDots(machine pomodoro.Machine, settings app.PomodoroSettings) string {
	n := settings.SessionsUntilLongBreak
	if n <= 0 {
		return ""
	}

	done := machine.CompletedFocus % n
	// A full cycle reads as n dots until the long break is taken.
	if done == 0 && machine.CompletedFocus > 0 && machine.Kind == app.KindLongBreak {
		done = n
	}

	dots := make([]string, 0, n)
	for i := 0; i < n; i++ {
		if i < done {
			dots = append(dots, p.styles.SessionDotDone)
		} else {
			dots = append(dots, p.styles.SessionDotPending)
		}
	}
	return strings.Join(dots, " ")
}

// renderCategoryPicker renders the category selection list.
func (p *TimerPane) renderCategoryPicker() string {
	var b strings.Builder

	b.WriteString("  " + p.styles.StatLabelStyle.Render("Category for focus sessions:") + "\n\n")

	current := p.store.Timer().Category
	for i, c := range app.Categories {
		prefix := "  "
		if i == p.catCursor {
			prefix = "▶ "
		}
		mark := " "
		if c == current {
			mark = "◆"
		}
		line := fmt.Sprintf("  %s%s %s", prefix, mark, c)
		if i == p.catCursor {
			line = p.styles.HabitSelectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n  " + p.styleMutedText("enter select · esc cancel") + "\n")
	return b.String()
}

// renderSettingsEditor renders the interval settings list.
func (p *TimerPane) renderSettingsEditor() string {
	var b strings.Builder

	settings := p.store.Settings()
	machine := p.store.Timer()

	b.WriteString("  " + p.styles.StatLabelStyle.Render("Pomodoro settings:") + "\n\n")

	sound := "off"
	if settings.SoundEnabled {
		sound = "on"
	}

	rows := []struct {
		label string
		value string
	}{
		{"Focus", fmt.Sprintf("%d min", settings.FocusMinutes)},
		{"Short break", fmt.Sprintf("%d min", settings.ShortBreakMinutes)},
		{"Long break", fmt.Sprintf("%d min", settings.LongBreakMinutes)},
		{"Sessions until long break", fmt.Sprintf("%d", settings.SessionsUntilLongBreak)},
		{"Sound", sound},
	}

	for i, row := range rows {
		prefix := "  "
		if i == p.setCursor {
			prefix = "▶ "
		}
		line := fmt.Sprintf("  %s%-26s %s", prefix, row.label, p.styles.StatValueStyle.Render(row.value))
		if i == p.setCursor {
			line = p.styles.HabitSelectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString("  " + p.styleMutedText(fmt.Sprintf("Completed focus sessions: %d", machine.CompletedFocus)) + "\n\n")
	b.WriteString("  " + p.styleMutedText("h/l adjust · 0 reset count · esc close") + "\n")
	return b.String()
}

// clockStyle picks the clock color for the current machine state.
func (p *TimerPane) clockStyle(machine pomodoro.Machine) lipgloss.Style {
	switch {
	case machine.State == pomodoro.StatePaused:
		return p.styles.TimerPausedStyle
	case machine.State == pomodoro.StateIdle:
		return p.styles.TimerClockStyle
	case machine.Kind == app.KindFocus:
		return p.styles.TimerFocusStyle
	default:
		return p.styles.TimerBreakStyle
	}
}

// kindLabel returns the styled heading for a session kind.
func (p *TimerPane) kindLabel(kind app.SessionKind) string {
	switch kind {
	case app.KindShortBreak:
		return p.styles.TimerBreakStyle.Render("SHORT BREAK")
	case app.KindLongBreak:
		return p.styles.TimerBreakStyle.Render("LONG BREAK")
	default:
		return p.styles.TimerFocusStyle.Render("FOCUS")
	}
}

// styleMutedText applies muted style to text.
func (p *TimerPane) styleMutedText(s string) string {
	return p.styles.StatLabelStyle.Render(s)
}

// formatClock formats remaining seconds as MM:SS, growing to H:MM:SS past an
// hour.
func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// formatMinutesShort formats a minute total as Xh Ym.
func formatMinutesShort(minutes int) string {
	if minutes >= 60 {
		h := minutes / 60
		m := minutes % 60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", minutes)
}

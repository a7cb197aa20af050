package ui

import (
	"fmt"
	"strings"
	"time"

	"flowstate/internal/app"
	"flowstate/internal/config"
	"flowstate/internal/pomodoro"
	"flowstate/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PaneID identifies the visible panes.
type PaneID int

const (
	PaneTimer PaneID = iota
	PaneHabits
	PaneAnalytics
	paneCount
)

// layoutMode selects between the side-by-side and tabbed arrangements.
type layoutMode int

const (
	layoutWide layoutMode = iota
	layoutNarrow
)

// statusTTL is how long an info status message stays visible.
const statusTTL = 5 * time.Second

// errorTTL is how long an error status message stays visible.
const errorTTL = 8 * time.Second

// App is the root Bubble Tea model.
type App struct {
	store  *store.Store
	styles *Styles
	cfg    *config.Config

	timer     *TimerPane
	habits    *HabitsPane
	analytics *AnalyticsPane
	help      *HelpOverlay

	activePane PaneID
	layout     layoutMode
	showHelp   bool
	width      int
	height     int
	quitting   bool

	// Pending delete confirmation. Zero target means no overlay.
	confirmingDelete bool
	deleteTarget     app.Habit

	// A single tick stream owns the countdown; tickSeq invalidates streams
	// left over from earlier starts.
	tickSeq    uint64
	tickActive bool

	status      string
	statusErr   bool
	statusUntil time.Time

	keys     GlobalKeyMap
	helpKeys HelpKeyMap
	delKeys  HabitKeyMap
}

// NewApp builds the root model around a store. A nil config falls back to
// defaults.
func NewApp(st *store.Store, styles *Styles, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}

	a := &App{
		store:      st,
		styles:     styles,
		cfg:        cfg,
		timer:      NewTimerPaneWithKeys(st, styles, &cfg.Keys),
		habits:     NewHabitsPaneWithKeys(st, styles, &cfg.Keys),
		analytics:  NewAnalyticsPaneWithKeys(st, styles, &cfg.Keys),
		help:       NewHelpOverlay(styles),
		activePane: paneForTab(st.UI().ActiveTab),
		keys:       NewGlobalKeyMap(&cfg.Keys),
		helpKeys:   DefaultHelpKeyMap(),
		delKeys:    NewHabitKeyMap(&cfg.Keys),
	}

	a.setActivePane(a.activePane)

	st.Subscribe(func(s app.FocusSession) {
		if s.Kind == app.KindFocus {
			a.SetStatus(fmt.Sprintf("Focus session done (%d min) 🎉", s.Duration/60), false)
			return
		}
		a.SetStatus("Break over, back to it", false)
	})

	return a
}

// paneForTab maps a persisted tab preference to a pane.
func paneForTab(tab app.Tab) PaneID {
	switch tab {
	case app.TabHabits:
		return PaneHabits
	case app.TabAnalytics:
		return PaneAnalytics
	default:
		return PaneTimer
	}
}

// tabForPane maps a pane back to its persisted tab preference.
func tabForPane(pane PaneID) app.Tab {
	switch pane {
	case PaneHabits:
		return app.TabHabits
	case PaneAnalytics:
		return app.TabAnalytics
	default:
		return app.TabTimer
	}
}

// Init starts the clock tick and, when a countdown survived a restart in a
// running state, the timer tick.
func (a *App) Init() tea.Cmd {
	return tea.Batch(clockTickCmd(), a.ensureTimerTick())
}

// ensureTimerTick starts a countdown stream when the machine is advancing
// and no stream is live. Each new stream gets a fresh sequence number so a
// superseded stream's pending tick is ignored on arrival.
func (a *App) ensureTimerTick() tea.Cmd {
	if a.tickActive || !a.store.Timer().State.Advancing() {
		return nil
	}
	a.tickSeq++
	a.tickActive = true
	return timerTickCmd(a.tickSeq)
}

// SetStatus shows a transient message in the help bar area.
func (a *App) SetStatus(msg string, isErr bool) {
	a.status = msg
	a.statusErr = isErr
	ttl := statusTTL
	if isErr {
		ttl = errorTTL
	}
	a.statusUntil = time.Now().Add(ttl)
}

// inInputMode reports whether a pane owns the keyboard exclusively.
func (a *App) inInputMode() bool {
	return a.timer.IsEditing() || a.habits.IsAdding()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.updateLayout()
		return a, nil

	case clockTickMsg:
		if a.status != "" && time.Now().After(a.statusUntil) {
			a.status = ""
		}
		return a, clockTickCmd()

	case timerTickMsg:
		return a, a.handleTimerTick(msg)

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	// Anything else goes to the active pane (form blink, spinner frames).
	return a, a.updateActivePane(msg)
}

// handleTimerTick drives the countdown. Only the live stream's ticks count;
// the stream ends when the machine stops advancing.
func (a *App) handleTimerTick(msg timerTickMsg) tea.Cmd {
	if msg.seq != a.tickSeq {
		return nil
	}
	if !a.store.Timer().State.Advancing() {
		a.tickActive = false
		return nil
	}
	a.store.Tick()
	if a.store.Timer().State.Advancing() {
		return timerTickCmd(a.tickSeq)
	}
	a.tickActive = false
	return nil
}

// handleKey routes keyboard input: overlays first, then input mode, then
// global shortcuts, then the active pane.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirmingDelete {
		return a, a.handleConfirmDelete(msg)
	}

	if a.showHelp {
		if key.Matches(msg, a.helpKeys.Close) {
			a.showHelp = false
		}
		return a, nil
	}

	if a.inInputMode() {
		cmd := a.updateActivePane(msg)
		return a, tea.Batch(cmd, a.afterPaneUpdate())
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.quitting = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil

	case key.Matches(msg, a.keys.NextPane):
		a.switchPane((a.activePane + 1) % paneCount)
		return a, nil

	case key.Matches(msg, a.keys.Pane1):
		a.switchPane(PaneTimer)
		return a, nil

	case key.Matches(msg, a.keys.Pane2):
		a.switchPane(PaneHabits)
		return a, nil

	case key.Matches(msg, a.keys.Pane3):
		a.switchPane(PaneAnalytics)
		return a, nil

	case key.Matches(msg, a.keys.DarkMode):
		a.toggleDarkMode()
		return a, nil
	}

	// Delete needs app-level handling for the confirmation overlay.
	if a.activePane == PaneHabits && key.Matches(msg, a.delKeys.Delete) {
		return a, a.requestDelete()
	}

	cmd := a.updateActivePane(msg)
	return a, tea.Batch(cmd, a.afterPaneUpdate())
}

// afterPaneUpdate picks up side effects a pane cannot express directly: a
// freshly started countdown and pending validation messages.
func (a *App) afterPaneUpdate() tea.Cmd {
	if err := a.habits.FormError(); err != "" {
		a.SetStatus(err, true)
	}
	return a.ensureTimerTick()
}

// requestDelete opens the confirmation overlay, or deletes immediately when
// confirmations are disabled.
func (a *App) requestDelete() tea.Cmd {
	habit, ok := a.habits.SelectedHabit()
	if !ok {
		return nil
	}
	if !a.cfg.UX.ConfirmDeletions {
		a.deleteHabit(habit)
		return nil
	}
	a.confirmingDelete = true
	a.deleteTarget = habit
	return nil
}

// handleConfirmDelete resolves the confirmation overlay.
func (a *App) handleConfirmDelete(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y", "enter":
		a.deleteHabit(a.deleteTarget)
	}
	a.confirmingDelete = false
	a.deleteTarget = app.Habit{}
	return nil
}

// deleteHabit removes the habit and its completion history.
func (a *App) deleteHabit(habit app.Habit) {
	if err := a.store.DeleteHabit(habit.ID); err != nil {
		a.SetStatus(err.Error(), true)
		return
	}
	a.habits.clampCursor()
	a.SetStatus(fmt.Sprintf("Deleted habit %q", habit.Name), false)
}

// toggleDarkMode flips the persisted preference and rebuilds the shared
// styles in place so every pane picks up the new palette.
func (a *App) toggleDarkMode() {
	a.store.ToggleDarkMode()
	*a.styles = *NewStyles(a.cfg, a.store.UI().DarkMode)
}

// switchPane changes focus and persists the choice as the active tab.
func (a *App) switchPane(pane PaneID) {
	if pane == a.activePane {
		return
	}
	a.setActivePane(pane)
	a.store.SetActiveTab(tabForPane(pane))
}

// setActivePane moves focus without persisting.
func (a *App) setActivePane(pane PaneID) {
	a.activePane = pane
	a.timer.SetFocused(pane == PaneTimer)
	a.habits.SetFocused(pane == PaneHabits)
	a.analytics.SetFocused(pane == PaneAnalytics)
}

// updateActivePane forwards a message to the focused pane.
func (a *App) updateActivePane(msg tea.Msg) tea.Cmd {
	switch a.activePane {
	case PaneHabits:
		return a.habits.Update(msg)
	case PaneAnalytics:
		return a.analytics.Update(msg)
	default:
		return a.timer.Update(msg)
	}
}

// handleMouse routes mouse input: tab-bar clicks in narrow mode, otherwise
// the pane under the pointer.
func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if a.showHelp || a.confirmingDelete {
		return nil
	}

	if a.layout == layoutNarrow {
		// The tab bar sits on the row under the title bar.
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 1 {
			third := max(1, a.width/3)
			a.switchPane(PaneID(min(int(paneCount)-1, msg.X/third)))
			return nil
		}
		cmd := a.updateActivePane(msg)
		return tea.Batch(cmd, a.afterPaneUpdate())
	}

	pane := a.paneAtPosition(msg.X)
	if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress {
		a.switchPane(pane)
	}

	var cmd tea.Cmd
	switch pane {
	case PaneHabits:
		cmd = a.habits.Update(msg)
	case PaneAnalytics:
		cmd = a.analytics.Update(msg)
	default:
		cmd = a.timer.Update(msg)
	}
	return tea.Batch(cmd, a.afterPaneUpdate())
}

// paneAtPosition maps an x coordinate to the pane occupying it in the wide
// layout.
func (a *App) paneAtPosition(x int) PaneID {
	timerWidth := a.width * 30 / 100
	habitsWidth := a.width * 40 / 100
	switch {
	case x < timerWidth:
		return PaneTimer
	case x < timerWidth+habitsWidth:
		return PaneHabits
	default:
		return PaneAnalytics
	}
}

// updateLayout recomputes pane sizes for the current terminal dimensions.
func (a *App) updateLayout() {
	threshold := a.cfg.UX.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 80
	}

	// Title bar + help bar.
	contentHeight := max(6, a.height-3)

	if a.width < threshold {
		a.layout = layoutNarrow
		paneHeight := contentHeight - 1 // tab bar
		a.timer.SetSize(a.width-2, paneHeight)
		a.habits.SetSize(a.width-2, paneHeight)
		a.analytics.SetSize(a.width-2, paneHeight)
	} else {
		a.layout = layoutWide
		timerWidth := a.width * 30 / 100
		habitsWidth := a.width * 40 / 100
		analyticsWidth := a.width - timerWidth - habitsWidth
		a.timer.SetSize(timerWidth-2, contentHeight)
		a.habits.SetSize(habitsWidth-2, contentHeight)
		a.analytics.SetSize(analyticsWidth-2, contentHeight)
	}

	a.help.SetSize(a.width, a.height)
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return "Stay focused.\n"
	}
	if a.width == 0 {
		return "Loading..."
	}

	if a.confirmingDelete {
		return a.renderConfirmDelete()
	}
	if a.showHelp {
		return a.help.View()
	}

	var b strings.Builder
	b.WriteString(a.renderTitleBar())
	b.WriteString("\n")

	if a.layout == layoutNarrow {
		b.WriteString(a.renderPaneTabs())
		b.WriteString("\n")
		switch a.activePane {
		case PaneHabits:
			b.WriteString(a.habits.View())
		case PaneAnalytics:
			b.WriteString(a.analytics.View())
		default:
			b.WriteString(a.timer.View())
		}
	} else {
		b.WriteString(lipgloss.JoinHorizontal(
			lipgloss.Top,
			a.timer.View(),
			a.habits.View(),
			a.analytics.View(),
		))
	}

	b.WriteString("\n")
	b.WriteString(a.renderHelpBar())
	return b.String()
}

// renderTitleBar renders the app name, date, and a compact timer readout.
func (a *App) renderTitleBar() string {
	title := a.styles.TitleStyle.Render("⚡ flowstate")
	date := a.styles.DateStyle.Render(a.store.Now().Format("Mon, Jan 2"))

	machine := a.store.Timer()
	var timerInfo string
	if machine.State.Advancing() {
		timerInfo = a.styles.TimerFocusStyle.Render("▶ " + formatClock(machine.Remaining))
	} else if machine.State == pomodoro.StatePaused {
		timerInfo = a.styles.TimerPausedStyle.Render("❚❚ " + formatClock(machine.Remaining))
	}

	today := a.store.FocusDataForDate(a.store.Today())
	focusInfo := a.styles.DateStyle.Render(formatMinutesShort(today.Minutes) + " today")

	parts := []string{title, " ", date, "  ", focusInfo}
	if timerInfo != "" {
		parts = append(parts, "  ", timerInfo)
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// renderPaneTabs renders the narrow-layout tab bar.
func (a *App) renderPaneTabs() string {
	labels := []string{"Timer", "Habits", "Analytics"}
	tabs := make([]string, len(labels))
	for i, label := range labels {
		if PaneID(i) == a.activePane {
			tabs[i] = a.styles.TitleStyle.Render(label)
		} else {
			tabs[i] = a.styles.DateStyle.Render(" " + label + " ")
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, tabs...)
}

// renderHelpBar renders the status message or context-sensitive shortcuts.
func (a *App) renderHelpBar() string {
	if a.status != "" {
		if a.statusErr {
			return " " + a.styles.ErrorStyle.Render(a.status)
		}
		return " " + a.styles.StatusStyle.Render(a.status)
	}

	switch a.activePane {
	case PaneHabits:
		return " " + a.styles.RenderHelp(
			"a", "add", "e", "edit", "space", "toggle", "z", "archive", "x", "delete", "?", "help")
	case PaneAnalytics:
		return " " + a.styles.RenderHelp(
			"j/k", "scroll", "tab", "switch pane", "?", "help")
	default:
		return " " + a.styles.RenderHelp(
			"space", "start/pause", "r", "reset", "s", "skip", "c", "category", "o", "settings", "?", "help")
	}
}

// renderConfirmDelete renders the delete confirmation overlay.
func (a *App) renderConfirmDelete() string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.styles.ColorDanger).
		Padding(1, 2)

	msg := fmt.Sprintf("Delete habit %q and its history?", a.deleteTarget.Name)
	body := a.styles.ErrorStyle.Render(msg) + "\n\n" +
		a.styles.HelpStyle.Render("y/enter confirm · any other key cancel")

	return RenderCentered(box.Render(body), a.width, a.height)
}

// Run starts the Bubble Tea program with the standard options.
func Run(st *store.Store, styles *Styles, cfg *config.Config) error {
	appModel := NewApp(st, styles, cfg)
	p := tea.NewProgram(appModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

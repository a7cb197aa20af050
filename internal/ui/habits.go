package ui

import (
	"fmt"
	"strings"

	"flowstate/internal/app"
	"flowstate/internal/config"
	"flowstate/internal/store"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// HabitsPane lists habits with their week view and streaks, and hosts the
// add/edit form.
type HabitsPane struct {
	store   *store.Store
	styles  *Styles
	cursor  int
	focused bool
	width   int
	height  int

	form      *huh.Form
	editingID string // empty when the form is adding
	formErr   string

	fName  string
	fDesc  string
	fFreq  app.Frequency
	fDays  []int
	fColor string

	keys      HabitKeyMap
	inputKeys InputKeyMap
}

// NewHabitsPane creates a habits pane with default key bindings.
func NewHabitsPane(st *store.Store, styles *Styles) *HabitsPane {
	return NewHabitsPaneWithKeys(st, styles, &config.KeysConfig{})
}

// NewHabitsPaneWithKeys creates a habits pane with custom key bindings.
func NewHabitsPaneWithKeys(st *store.Store, styles *Styles, keyCfg *config.KeysConfig) *HabitsPane {
	if keyCfg == nil {
		keyCfg = &config.KeysConfig{}
	}
	return &HabitsPane{
		store:     st,
		styles:    styles,
		keys:      NewHabitKeyMap(keyCfg),
		inputKeys: NewInputKeyMap(keyCfg),
	}
}

// SetSize sets the pane dimensions.
func (p *HabitsPane) SetSize(width, height int) {
	p.width = width
	p.height = height
	if p.form != nil {
		p.form = p.form.WithWidth(max(20, width-6))
	}
}

// SetFocused sets whether this pane is focused.
func (p *HabitsPane) SetFocused(focused bool) {
	p.focused = focused
}

// IsFocused returns whether this pane is focused.
func (p *HabitsPane) IsFocused() bool {
	return p.focused
}

// IsAdding reports whether the add/edit form is open.
func (p *HabitsPane) IsAdding() bool {
	return p.form != nil
}

// visible returns the habits in display order: active first, archived after.
// Cursor positions index into this slice.
func (p *HabitsPane) visible() []app.Habit {
	all := p.store.Habits()
	out := make([]app.Habit, 0, len(all))
	for _, h := range all {
		if !h.Archived {
			out = append(out, h)
		}
	}
	for _, h := range all {
		if h.Archived {
			out = append(out, h)
		}
	}
	return out
}

// SelectedHabit returns the habit under the cursor, if any.
func (p *HabitsPane) SelectedHabit() (app.Habit, bool) {
	habits := p.visible()
	if len(habits) == 0 || p.cursor >= len(habits) {
		return app.Habit{}, false
	}
	return habits[p.cursor], true
}

// clampCursor keeps the cursor inside the visible list after mutations.
func (p *HabitsPane) clampCursor() {
	n := len(p.visible())
	if p.cursor >= n {
		p.cursor = max(0, n-1)
	}
}

// Update handles messages for the habits pane.
func (p *HabitsPane) Update(msg tea.Msg) tea.Cmd {
	if p.form != nil {
		return p.updateForm(msg)
	}

	if !p.focused {
		return nil
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		return p.handleMouse(msg)

	case tea.KeyMsg:
		habits := p.visible()

		switch {
		case key.Matches(msg, p.keys.Down):
			if len(habits) > 0 {
				p.cursor = min(p.cursor+1, len(habits)-1)
			}

		case key.Matches(msg, p.keys.Up):
			p.cursor = max(p.cursor-1, 0)

		case key.Matches(msg, p.keys.Top):
			p.cursor = 0

		case key.Matches(msg, p.keys.Bottom):
			if len(habits) > 0 {
				p.cursor = len(habits) - 1
			}

		case key.Matches(msg, p.keys.Add):
			return p.openForm(nil)

		case key.Matches(msg, p.keys.Edit):
			if h, ok := p.SelectedHabit(); ok {
				return p.openForm(&h)
			}

		case key.Matches(msg, p.keys.Toggle):
			if h, ok := p.SelectedHabit(); ok && !h.Archived {
				if err := p.store.ToggleHabitCompletion(h.ID, p.store.Today()); err != nil {
					p.formErr = err.Error()
				}
			}

		case key.Matches(msg, p.keys.Archive):
			if h, ok := p.SelectedHabit(); ok {
				if err := p.store.ArchiveHabit(h.ID); err != nil {
					p.formErr = err.Error()
				}
				p.clampCursor()
			}
		}
	}

	return nil
}

// openForm builds the huh form, blank for adding or pre-filled for editing.
func (p *HabitsPane) openForm(existing *app.Habit) tea.Cmd {
	if existing != nil {
		p.editingID = existing.ID
		p.fName = existing.Name
		p.fDesc = existing.Description
		p.fFreq = existing.Frequency
		p.fDays = append([]int(nil), existing.TargetDays...)
		p.fColor = existing.Color
	} else {
		p.editingID = ""
		p.fName = ""
		p.fDesc = ""
		p.fFreq = app.FrequencyDaily
		p.fDays = nil
		p.fColor = app.DefaultHabitColor
	}
	p.formErr = ""

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				CharLimit(50).
				Value(&p.fName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Key("description").
				Title("Description").
				CharLimit(200).
				Value(&p.fDesc),
			huh.NewSelect[app.Frequency]().
				Key("frequency").
				Title("Frequency").
				Options(
					huh.NewOption("Daily", app.FrequencyDaily),
					huh.NewOption("Weekly", app.FrequencyWeekly),
					huh.NewOption("Custom days", app.FrequencyCustom),
				).
				Value(&p.fFreq),
			huh.NewMultiSelect[int]().
				Key("target_days").
				Title("Days (custom frequency only)").
				Options(
					huh.NewOption("Sunday", 0),
					huh.NewOption("Monday", 1),
					huh.NewOption("Tuesday", 2),
					huh.NewOption("Wednesday", 3),
					huh.NewOption("Thursday", 4),
					huh.NewOption("Friday", 5),
					huh.NewOption("Saturday", 6),
				).
				Value(&p.fDays),
			huh.NewInput().
				Key("color").
				Title("Color (#RRGGBB)").
				CharLimit(7).
				Value(&p.fColor),
		),
	).
		WithWidth(max(20, p.width-6)).
		WithShowHelp(false)

	return p.form.Init()
}

// updateForm routes messages to the open form and submits on completion.
func (p *HabitsPane) updateForm(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, p.inputKeys.Cancel) {
		p.closeForm()
		return nil
	}

	model, cmd := p.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		p.form = f
	}

	switch p.form.State {
	case huh.StateCompleted:
		p.submitForm()
	case huh.StateAborted:
		p.closeForm()
	}

	return cmd
}

// submitForm applies the form as an add or an update. Validation failures
// from the store reopen the form with the message attached.
func (p *HabitsPane) submitForm() {
	name := p.fName
	desc := p.fDesc
	freq := p.fFreq
	days := append([]int(nil), p.fDays...)
	color := p.fColor
	editingID := p.editingID

	var errs app.FieldErrors
	if editingID == "" {
		_, errs = p.store.AddHabit(app.HabitInput{
			Name:        name,
			Description: desc,
			Frequency:   freq,
			TargetDays:  days,
			Color:       color,
		})
	} else {
		_, errs, _ = p.store.UpdateHabit(editingID, app.HabitPatch{
			Name:        &name,
			Description: &desc,
			Frequency:   &freq,
			TargetDays:  &days,
			Color:       &color,
		})
	}

	p.closeForm()
	if len(errs) > 0 {
		p.formErr = firstFieldError(errs)
	}
	p.clampCursor()
}

// closeForm discards the form state.
func (p *HabitsPane) closeForm() {
	p.form = nil
	p.editingID = ""
	p.formErr = ""
}

// FormError returns the last validation message, cleared on the next read.
func (p *HabitsPane) FormError() string {
	err := p.formErr
	p.formErr = ""
	return err
}

// firstFieldError picks a stable message out of a field error map.
func firstFieldError(errs app.FieldErrors) string {
	for _, field := range []string{"name", "frequency", "target_days", "color", "description"} {
		if msg, ok := errs[field]; ok {
			return msg
		}
	}
	for _, msg := range errs {
		return msg
	}
	return ""
}

// handleMouse processes mouse events for the habits pane.
func (p *HabitsPane) handleMouse(msg tea.MouseMsg) tea.Cmd {
	habits := p.visible()
	if len(habits) == 0 {
		return nil
	}

	// Rows above the list: title (1) + separator (1) + blank (1).
	const headerRows = 3

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.cursor = max(p.cursor-1, 0)

	case tea.MouseButtonWheelDown:
		p.cursor = min(p.cursor+1, len(habits)-1)

	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
		row := msg.Y - headerRows
		if row < 0 || row >= len(habits) {
			return nil
		}
		p.cursor = row
		// A click on the leading icon toggles today.
		if msg.X < 4 && !habits[row].Archived {
			if err := p.store.ToggleHabitCompletion(habits[row].ID, p.store.Today()); err != nil {
				p.formErr = err.Error()
			}
		}
	}

	return nil
}

// View renders the habits pane.
func (p *HabitsPane) View() string {
	var b strings.Builder

	title := p.styles.PaneTitleStyle.Render("🔥 HABITS")
	b.WriteString(title)
	b.WriteString("\n")

	sepWidth := p.width - 4
	if sepWidth < 10 {
		sepWidth = 30
	}
	b.WriteString(p.styleMutedText(strings.Repeat("─", sepWidth)))
	b.WriteString("\n\n")

	if p.form != nil {
		heading := "Add habit"
		if p.editingID != "" {
			heading = "Edit habit"
		}
		b.WriteString("  " + p.styles.InputPromptStyle.Render(heading) + "\n\n")
		b.WriteString(p.form.View())
		return p.paneStyle().Width(p.width).Height(p.height).Render(b.String())
	}

	habits := p.visible()
	if len(habits) == 0 {
		b.WriteString(p.styleMutedText("  No habits yet."))
		b.WriteString("\n")
		b.WriteString(p.styleMutedText("  Press 'a' to add one."))
		b.WriteString("\n")
	} else {
		for i, habit := range habits {
			b.WriteString(p.renderHabitRow(habit, i == p.cursor))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		b.WriteString("  " + p.styleMutedText(p.dayLabels()))
		b.WriteString("\n")

		done, due := p.todayProgress(habits)
		if due > 0 {
			b.WriteString("\n")
			b.WriteString("  " + p.styles.StatLabelStyle.Render("Today: ") +
				p.styles.StatValueStyle.Render(fmt.Sprintf("%d/%d done", done, due)))
			b.WriteString("\n")
		}
	}

	return p.paneStyle().Width(p.width).Height(p.height).Render(b.String())
}

// renderHabitRow renders one habit with its week dots and streak.
func (p *HabitsPane) renderHabitRow(habit app.Habit, selected bool) string {
	prefix := "  "
	if selected && p.focused {
		prefix = "▶ "
	}

	today := p.store.Today()
	icon := p.styles.HabitUndoneIcon
	if p.store.IsHabitDoneOn(habit.ID, today) {
		icon = p.styles.HabitDoneIcon
	} else if !habit.IsDueOn(p.store.Now().Weekday()) {
		icon = p.styles.HabitNotDueIcon
	}

	name := p.styles.HabitNameStyle.Render(habit.Name)
	if habit.Archived {
		name = p.styles.HabitArchivedStyle.Render(habit.Name)
	}

	line := fmt.Sprintf("%s%s %-16s %s", prefix, icon, name, p.renderWeek(habit))

	if streak := p.store.HabitStreak(habit.ID); streak.Current > 1 && !habit.Archived {
		line += " " + p.styles.HabitStreakStyle.Render(fmt.Sprintf("🔥%d", streak.Current))
	}

	if selected && p.focused {
		line = p.styles.HabitSelectedStyle.Render(line)
	}
	return line
}

// renderWeek renders the last seven days as done/missed/not-due dots, oldest
// first.
func (p *HabitsPane) renderWeek(habit app.Habit) string {
	now := p.store.Now()
	dots := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		switch {
		case p.store.IsHabitDoneOn(habit.ID, day.Format(app.DateFormat)):
			dots = append(dots, p.styles.HabitDoneIcon)
		case !habit.IsDueOn(day.Weekday()):
			dots = append(dots, p.styles.HabitNotDueIcon)
		default:
			dots = append(dots, p.styles.HabitUndoneIcon)
		}
	}
	return strings.Join(dots, " ")
}

// dayLabels returns single-letter labels aligned under the week dots.
func (p *HabitsPane) dayLabels() string {
	now := p.store.Now()
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", 21))
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		b.WriteString(day.Format("Mon")[:1])
		if i > 0 {
			b.WriteString(" ")
		}
	}
	return b.String()
}

// todayProgress counts habits due today and how many are done.
func (p *HabitsPane) todayProgress(habits []app.Habit) (done, due int) {
	today := p.store.Today()
	weekday := p.store.Now().Weekday()
	for _, h := range habits {
		if h.Archived || !h.IsDueOn(weekday) {
			continue
		}
		due++
		if p.store.IsHabitDoneOn(h.ID, today) {
			done++
		}
	}
	return done, due
}

func (p *HabitsPane) paneStyle() lipgloss.Style {
	if p.focused {
		return p.styles.PaneFocusedStyle
	}
	return p.styles.PaneStyle
}

// styleMutedText applies muted style to text.
func (p *HabitsPane) styleMutedText(s string) string {
	return p.styles.StatLabelStyle.Render(s)
}

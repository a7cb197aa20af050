package ui

import (
	"testing"

	"flowstate/internal/pomodoro"

	tea "github.com/charmbracelet/bubbletea"
)

func TestTimerPane_MouseClickToggles(t *testing.T) {
	pane := newTestTimerPane(t)

	click := tea.MouseMsg{
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
		X:      5,
		Y:      4, // inside the clock block
	}

	pane.Update(click)
	if got := pane.store.Timer().State; got != pomodoro.StateFocus {
		t.Errorf("state after click = %v, want focus", got)
	}

	pane.Update(click)
	if got := pane.store.Timer().State; got != pomodoro.StatePaused {
		t.Errorf("state after second click = %v, want paused", got)
	}
}

func TestHabitsPane_MouseWheelScrolls(t *testing.T) {
	pane := newTestHabitsPane(t)
	addTestHabit(t, pane.store, "One")
	addTestHabit(t, pane.store, "Two")
	addTestHabit(t, pane.store, "Three")

	pane.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	pane.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if pane.cursor != 2 {
		t.Errorf("cursor after two wheel downs = %d, want 2", pane.cursor)
	}

	pane.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	if pane.cursor != 1 {
		t.Errorf("cursor after wheel up = %d, want 1", pane.cursor)
	}
}

func TestHabitsPane_MouseClickSelectsRow(t *testing.T) {
	pane := newTestHabitsPane(t)
	addTestHabit(t, pane.store, "One")
	habit := addTestHabit(t, pane.store, "Two")

	// Row 1 of the list sits at header offset + 1.
	pane.Update(tea.MouseMsg{
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
		X:      10,
		Y:      4,
	})
	if pane.cursor != 1 {
		t.Fatalf("cursor after click = %d, want 1", pane.cursor)
	}

	// A click on the leading icon toggles the completion.
	pane.Update(tea.MouseMsg{
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
		X:      2,
		Y:      4,
	})
	if !pane.store.IsHabitDoneOn(habit.ID, pane.store.Today()) {
		t.Error("icon click should toggle today's completion")
	}
	if msg := pane.FormError(); msg != "" {
		t.Errorf("successful icon-click toggle reported error %q", msg)
	}
}

func TestApp_NarrowTabBarClick(t *testing.T) {
	a := newTestApp(t)
	a.Update(tea.WindowSizeMsg{Width: 50, Height: 30})

	a.Update(tea.MouseMsg{
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
		X:      25, // middle third
		Y:      1,
	})
	if a.activePane != PaneHabits {
		t.Errorf("pane after tab click = %v, want habits", a.activePane)
	}
}

func TestApp_WideClickFocusesPane(t *testing.T) {
	a := newTestApp(t)

	// x beyond 70% of the width lands in the analytics pane.
	a.Update(tea.MouseMsg{
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
		X:      110,
		Y:      10,
	})
	if a.activePane != PaneAnalytics {
		t.Errorf("pane after click = %v, want analytics", a.activePane)
	}
}

package ui

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"flowstate/internal/app"
	"flowstate/internal/config"
	"flowstate/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// uiTestNow is a fixed Saturday afternoon.
var uiTestNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

// setupTest disables colors so rendered output is stable across environments.
func setupTest(t *testing.T) {
	t.Helper()
	lipgloss.SetColorProfile(termenv.Ascii)
}

// newTestStore creates an in-memory store with a frozen clock and sequential
// IDs.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(nil, nil, log.New(io.Discard))
	st.SetNowFunc(func() time.Time { return uiTestNow })
	n := 0
	st.SetIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
	return st
}

// newTestStoreWithSnapshot creates a store seeded from the given snapshot.
func newTestStoreWithSnapshot(t *testing.T, snap *store.Snapshot) *store.Store {
	t.Helper()
	st := store.New(snap, nil, log.New(io.Discard))
	st.SetNowFunc(func() time.Time { return uiTestNow })
	return st
}

// createTestStyles creates a default light-mode Styles instance.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{}, false)
}

// keyMsg builds a key message from a binding-style key name.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case " ", "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// addTestHabit creates a daily habit directly through the store.
func addTestHabit(t *testing.T, st *store.Store, name string) app.Habit {
	t.Helper()
	habit, errs := st.AddHabit(app.HabitInput{Name: name, Frequency: app.FrequencyDaily})
	if len(errs) > 0 {
		t.Fatalf("AddHabit(%q) errors: %v", name, errs)
	}
	return habit
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

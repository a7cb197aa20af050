// Key bindings for every pane, built on the Bubble Tea key package.
// Each binding reads an optional comma-separated override from
// config.KeysConfig and falls back to the built-in defaults.
package ui

import (
	"strings"

	"flowstate/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// bind constructs a key.Binding whose keys come from the user override
// when set, or from defaults otherwise. helpKey/helpDesc always show
// the default in help output.
func bind(override, helpKey, helpDesc string, defaults ...string) key.Binding {
	keys := defaults
	if override != "" {
		keys = keys[:0]
		for _, part := range strings.Split(override, ",") {
			if part = strings.TrimSpace(part); part != "" {
				keys = append(keys, part)
			}
		}
	}
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, helpDesc))
}

func orDefault(cfg *config.KeysConfig) *config.KeysConfig {
	if cfg == nil {
		return &config.KeysConfig{}
	}
	return cfg
}

// GlobalKeyMap holds bindings handled by the root model in every pane.
type GlobalKeyMap struct {
	Quit     key.Binding
	Help     key.Binding
	NextPane key.Binding
	Pane1    key.Binding
	Pane2    key.Binding
	Pane3    key.Binding
	DarkMode key.Binding
}

func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	c := orDefault(cfg)
	return GlobalKeyMap{
		Quit:     bind(c.Quit, "q", "quit", "q", "ctrl+c"),
		Help:     bind(c.Help, "?", "help", "?"),
		NextPane: bind(c.NextPane, "tab", "next pane", "tab"),
		Pane1:    bind(c.Pane1, "1", "timer", "1"),
		Pane2:    bind(c.Pane2, "2", "habits", "2"),
		Pane3:    bind(c.Pane3, "3", "analytics", "3"),
		DarkMode: bind(c.DarkMode, "ctrl+t", "dark mode", "ctrl+t"),
	}
}

// NavigationKeyMap holds list movement bindings shared by the habits
// and analytics panes.
type NavigationKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
}

func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	c := orDefault(cfg)
	return NavigationKeyMap{
		Up:     bind(c.Up, "k/↑", "up", "k", "up"),
		Down:   bind(c.Down, "j/↓", "down", "j", "down"),
		Top:    bind(c.Top, "g", "top", "g"),
		Bottom: bind(c.Bottom, "G", "bottom", "G"),
	}
}

// InputKeyMap holds bindings active while a text field has focus.
type InputKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	c := orDefault(cfg)
	return InputKeyMap{
		Confirm: bind(c.Confirm, "enter", "confirm", "enter"),
		Cancel:  bind(c.Cancel, "esc", "cancel", "esc"),
	}
}

// TimerKeyMap holds bindings for the timer pane.
type TimerKeyMap struct {
	Toggle   key.Binding
	Reset    key.Binding
	Skip     key.Binding
	Category key.Binding
	Settings key.Binding
}

func NewTimerKeyMap(cfg *config.KeysConfig) TimerKeyMap {
	c := orDefault(cfg)
	return TimerKeyMap{
		Toggle:   bind(c.ToggleTimer, "space", "start/pause", " ", "enter"),
		Reset:    bind(c.ResetTimer, "r", "reset", "r"),
		Skip:     bind(c.SkipTimer, "s", "skip", "s"),
		Category: bind(c.Category, "c", "category", "c"),
		Settings: bind(c.Settings, "o", "settings", "o"),
	}
}

// HabitKeyMap holds bindings for the habits pane.
type HabitKeyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Toggle  key.Binding
	Archive key.Binding
	Delete  key.Binding
	NavigationKeyMap
}

func NewHabitKeyMap(cfg *config.KeysConfig) HabitKeyMap {
	c := orDefault(cfg)
	return HabitKeyMap{
		Add:              bind(c.AddHabit, "a", "add habit", "a"),
		Edit:             bind(c.EditHabit, "e", "edit", "e"),
		Toggle:           bind(c.ToggleHabit, "space", "toggle today", " ", "enter", "d"),
		Archive:          bind(c.ArchiveHabit, "z", "archive", "z"),
		Delete:           bind(c.DeleteHabit, "x", "delete", "x"),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// AnalyticsKeyMap holds bindings for the analytics pane. Scrolling is
// all it needs.
type AnalyticsKeyMap struct {
	NavigationKeyMap
}

func NewAnalyticsKeyMap(cfg *config.KeysConfig) AnalyticsKeyMap {
	return AnalyticsKeyMap{NavigationKeyMap: NewNavigationKeyMap(cfg)}
}

// HelpKeyMap holds bindings for dismissing the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: bind("", "any key", "close", "?", "esc", "q", "enter", " "),
	}
}

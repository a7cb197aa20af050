package ui

import (
	"testing"

	"flowstate/internal/config"
)

func TestNewStylesDefaults(t *testing.T) {
	setupTest(t)
	styles := NewStylesFromTheme(&config.ThemeConfig{}, false)

	if styles.ColorPrimary == "" {
		t.Error("primary color should have a default")
	}
	if styles.SessionDotDone == "" || styles.SessionDotPending == "" {
		t.Error("session dots should be initialized")
	}
	if styles.HabitDoneIcon == "" {
		t.Error("habit icons should be initialized")
	}
}

func TestNewStylesCustomTheme(t *testing.T) {
	setupTest(t)
	theme := &config.ThemeConfig{Primary: "#FF0000"}
	styles := NewStylesFromTheme(theme, false)

	if string(styles.ColorPrimary) != "#FF0000" {
		t.Errorf("primary color = %s, want #FF0000", styles.ColorPrimary)
	}
}

func TestNewStylesDarkMode(t *testing.T) {
	setupTest(t)
	light := NewStylesFromTheme(&config.ThemeConfig{}, false)
	dark := NewStylesFromTheme(&config.ThemeConfig{}, true)

	if light.ColorText == dark.ColorText {
		t.Error("dark mode should use a different text color")
	}
	if light.ColorBg == dark.ColorBg {
		t.Error("dark mode should use a different background")
	}
}

func TestRenderHelp(t *testing.T) {
	setupTest(t)
	styles := createTestStyles()

	out := styles.RenderHelp("a", "add", "q", "quit")
	if !contains(out, "[a]") || !contains(out, "add") {
		t.Errorf("RenderHelp output missing key or description: %q", out)
	}
	if !contains(out, "[q]") || !contains(out, "quit") {
		t.Errorf("RenderHelp should include every pair: %q", out)
	}
}

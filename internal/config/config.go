// Package config loads the flowstate configuration from the XDG config path
// (typically ~/.config/flowstate/config.yaml), merging user values over
// built-in defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"flowstate/internal/fsutil"

	"gopkg.in/yaml.v3"
)

// Config is the full application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.flowstate)
	DataDir string `yaml:"data_dir,omitempty"`

	// Theme customizes the visual appearance
	Theme ThemeConfig `yaml:"theme,omitempty"`

	// Keys customizes keyboard shortcuts
	Keys KeysConfig `yaml:"keys,omitempty"`

	// UX customizes user experience settings
	UX UXConfig `yaml:"ux,omitempty"`

	// Notifications configures desktop notifications
	Notifications NotificationConfig `yaml:"notifications,omitempty"`
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled enables/disables notifications on session completion
	Enabled bool `yaml:"enabled,omitempty"`

	// Sound plays the notification sound (also gated by the in-app
	// sound_enabled setting)
	Sound bool `yaml:"sound,omitempty"`
}

// ThemeConfig holds hex color overrides. Empty fields keep the built-in
// palette; empty background/text keep the terminal's own colors.
type ThemeConfig struct {
	Primary    string `yaml:"primary,omitempty"`
	Accent     string `yaml:"accent,omitempty"`
	Muted      string `yaml:"muted,omitempty"`
	Background string `yaml:"background,omitempty"`
	Text       string `yaml:"text,omitempty"`
}

// KeysConfig defines customizable keyboard shortcuts.
// Each field accepts a comma-separated list of key bindings.
// Examples: "q,ctrl+c", "tab", "j,down"
type KeysConfig struct {
	// Global keys
	Quit     string `yaml:"quit,omitempty"`      // default: "q,ctrl+c"
	Help     string `yaml:"help,omitempty"`      // default: "?"
	NextPane string `yaml:"next_pane,omitempty"` // default: "tab"
	Pane1    string `yaml:"pane_1,omitempty"`    // default: "1"
	Pane2    string `yaml:"pane_2,omitempty"`    // default: "2"
	Pane3    string `yaml:"pane_3,omitempty"`    // default: "3"
	DarkMode string `yaml:"dark_mode,omitempty"` // default: "ctrl+t"

	// Navigation keys
	Up     string `yaml:"up,omitempty"`     // default: "k,up"
	Down   string `yaml:"down,omitempty"`   // default: "j,down"
	Top    string `yaml:"top,omitempty"`    // default: "g"
	Bottom string `yaml:"bottom,omitempty"` // default: "G"

	// Timer keys
	ToggleTimer string `yaml:"toggle_timer,omitempty"` // default: "space,enter"
	ResetTimer  string `yaml:"reset_timer,omitempty"`  // default: "r"
	SkipTimer   string `yaml:"skip_timer,omitempty"`   // default: "s"
	Category    string `yaml:"category,omitempty"`     // default: "c"
	Settings    string `yaml:"settings,omitempty"`     // default: "o"

	// Habit keys
	AddHabit     string `yaml:"add_habit,omitempty"`     // default: "a"
	EditHabit    string `yaml:"edit_habit,omitempty"`    // default: "e"
	ToggleHabit  string `yaml:"toggle_habit,omitempty"`  // default: "d,enter,space"
	ArchiveHabit string `yaml:"archive_habit,omitempty"` // default: "z"
	DeleteHabit  string `yaml:"delete_habit,omitempty"`  // default: "x"

	// Input keys
	Confirm string `yaml:"confirm,omitempty"` // default: "enter"
	Cancel  string `yaml:"cancel,omitempty"`  // default: "esc"
}

// UXConfig defines user experience settings.
type UXConfig struct {
	// ConfirmDeletions shows confirmation dialogs before deleting habits
	ConfirmDeletions bool `yaml:"confirm_deletions,omitempty"` // default: true

	// NarrowLayoutThreshold is the terminal width below which to use stacked layout
	NarrowLayoutThreshold int `yaml:"narrow_layout_threshold,omitempty"` // default: 80
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir: defaultDataDir(),
		Theme: ThemeConfig{
			Primary: "#E11D48", // rose
			Accent:  "#10B981", // emerald
			Muted:   "#6B7280", // gray
		},
		UX: UXConfig{
			ConfirmDeletions:      true,
			NarrowLayoutThreshold: 80,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".flowstate"
	}
	return filepath.Join(home, ".flowstate")
}

func configPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "flowstate", "config.yaml")
}

// Load reads the config file and merges it over the defaults. A missing
// file is not an error; the defaults are returned as-is.
func Load() (*Config, error) {
	cfg := Default()

	path := configPath()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	var user Config
	if err := yaml.Unmarshal(data, &user); err != nil {
		return nil, err
	}

	// Booleans cannot be merged by value alone (false is indistinguishable
	// from absent), so the raw document is consulted for key presence.
	var doc yaml.Node
	_ = yaml.Unmarshal(data, &doc)

	cfg.merge(&user, &doc)
	return cfg, nil
}

// merge overlays the user's config onto c. Strings win when non-empty,
// ints when positive, and bools only when their key appears in doc.
func (c *Config) merge(user *Config, doc *yaml.Node) {
	overlay(&c.DataDir, user.DataDir)

	overlay(&c.Theme.Primary, user.Theme.Primary)
	overlay(&c.Theme.Accent, user.Theme.Accent)
	overlay(&c.Theme.Muted, user.Theme.Muted)
	overlay(&c.Theme.Background, user.Theme.Background)
	overlay(&c.Theme.Text, user.Theme.Text)

	dst := []*string{
		&c.Keys.Quit, &c.Keys.Help, &c.Keys.NextPane,
		&c.Keys.Pane1, &c.Keys.Pane2, &c.Keys.Pane3, &c.Keys.DarkMode,
		&c.Keys.Up, &c.Keys.Down, &c.Keys.Top, &c.Keys.Bottom,
		&c.Keys.ToggleTimer, &c.Keys.ResetTimer, &c.Keys.SkipTimer,
		&c.Keys.Category, &c.Keys.Settings,
		&c.Keys.AddHabit, &c.Keys.EditHabit, &c.Keys.ToggleHabit,
		&c.Keys.ArchiveHabit, &c.Keys.DeleteHabit,
		&c.Keys.Confirm, &c.Keys.Cancel,
	}
	src := []string{
		user.Keys.Quit, user.Keys.Help, user.Keys.NextPane,
		user.Keys.Pane1, user.Keys.Pane2, user.Keys.Pane3, user.Keys.DarkMode,
		user.Keys.Up, user.Keys.Down, user.Keys.Top, user.Keys.Bottom,
		user.Keys.ToggleTimer, user.Keys.ResetTimer, user.Keys.SkipTimer,
		user.Keys.Category, user.Keys.Settings,
		user.Keys.AddHabit, user.Keys.EditHabit, user.Keys.ToggleHabit,
		user.Keys.ArchiveHabit, user.Keys.DeleteHabit,
		user.Keys.Confirm, user.Keys.Cancel,
	}
	for i := range dst {
		overlay(dst[i], src[i])
	}

	if user.UX.NarrowLayoutThreshold > 0 {
		c.UX.NarrowLayoutThreshold = user.UX.NarrowLayoutThreshold
	}
	if hasKey(doc, "ux", "confirm_deletions") {
		c.UX.ConfirmDeletions = user.UX.ConfirmDeletions
	}
	if hasKey(doc, "notifications", "enabled") {
		c.Notifications.Enabled = user.Notifications.Enabled
	}
	if hasKey(doc, "notifications", "sound") {
		c.Notifications.Sound = user.Notifications.Sound
	}
}

func overlay(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// hasKey walks the parsed YAML document along path and reports whether the
// final key is present, regardless of its value.
func hasKey(doc *yaml.Node, path ...string) bool {
	if doc == nil {
		return false
	}
	node := doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return false
		}
		node = node.Content[0]
	}

	for _, want := range path {
		if node.Kind != yaml.MappingNode {
			return false
		}
		found := false
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Kind == yaml.ScalarNode && node.Content[i].Value == want {
				node = node.Content[i+1]
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Save writes the configuration back to the config file.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, data, 0600)
}

// GetDataDir resolves the configured data directory, expanding a leading
// tilde against the user's home.
func (c *Config) GetDataDir() string {
	dir := c.DataDir
	if dir == "" {
		return defaultDataDir()
	}

	if dir == "~" || strings.HasPrefix(dir, "~/") || strings.HasPrefix(dir, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return dir
		}
		rest := strings.TrimLeft(dir[1:], `/\`)
		return filepath.Join(home, rest)
	}
	return dir
}

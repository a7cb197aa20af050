package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flowstate/internal/app"
	"flowstate/internal/fsutil"
	"flowstate/internal/pomodoro"
)

// SnapshotVersion is the current snapshot document version.
const SnapshotVersion = 1

// StateFile is the snapshot filename inside the data directory.
const StateFile = "state.json"

// UIPrefs are presentation preferences carried in the snapshot.
type UIPrefs struct {
	ActiveTab app.Tab `json:"active_tab"`
	DarkMode  bool    `json:"dark_mode"`
}

// Snapshot is the single persisted state document: every entity collection
// plus the timer position and UI preferences. It is the unit of export,
// import, and backup.
type Snapshot struct {
	Version     int                   `json:"version"`
	Settings    app.PomodoroSettings  `json:"settings"`
	Timer       pomodoro.Machine      `json:"timer"`
	Sessions    []app.FocusSession    `json:"sessions"`
	Habits      []app.Habit           `json:"habits"`
	Completions []app.HabitCompletion `json:"completions"`
	UI          UIPrefs               `json:"ui"`
}

// defaultSnapshot returns the state of a fresh install.
func defaultSnapshot() *Snapshot {
	settings := app.DefaultSettings()
	return &Snapshot{
		Version:     SnapshotVersion,
		Settings:    settings,
		Timer:       *pomodoro.New(settings),
		Sessions:    []app.FocusSession{},
		Habits:      []app.Habit{},
		Completions: []app.HabitCompletion{},
		UI:          UIPrefs{ActiveTab: app.TabTimer, DarkMode: true},
	}
}

// validateShape checks that raw bytes look like a snapshot document: a JSON
// object with a version number and a settings object. Anything else is
// rejected before any state is touched.
func validateShape(data []byte) error {
	var probe struct {
		Version  *int             `json:"version"`
		Settings *json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("not a valid snapshot document: %w", err)
	}
	if probe.Version == nil {
		return fmt.Errorf("not a valid snapshot document: missing version")
	}
	if *probe.Version > SnapshotVersion {
		return fmt.Errorf("snapshot version %d is newer than supported version %d", *probe.Version, SnapshotVersion)
	}
	if probe.Settings == nil || !bytes.HasPrefix(bytes.TrimSpace(*probe.Settings), []byte("{")) {
		return fmt.Errorf("not a valid snapshot document: missing settings")
	}
	return nil
}

// decodeSnapshot parses and sanity-checks a snapshot, filling defaults for
// absent collections and clamping settings into their allowed ranges.
func decodeSnapshot(data []byte) (*Snapshot, error) {
	if err := validateShape(data); err != nil {
		return nil, err
	}
	snap := defaultSnapshot()
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	snap.Version = SnapshotVersion
	snap.Settings = app.ClampSettings(snap.Settings)
	if snap.Sessions == nil {
		snap.Sessions = []app.FocusSession{}
	}
	if snap.Habits == nil {
		snap.Habits = []app.Habit{}
	}
	if snap.Completions == nil {
		snap.Completions = []app.HabitCompletion{}
	}
	switch snap.UI.ActiveTab {
	case app.TabTimer, app.TabHabits, app.TabAnalytics:
	default:
		snap.UI.ActiveTab = app.TabTimer
	}
	snap.Timer.Normalize(snap.Settings)
	return snap, nil
}

// encodeSnapshot produces the canonical serialized form of a snapshot.
func encodeSnapshot(snap *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize snapshot: %w", err)
	}
	return data, nil
}

// ErrSnapshotRecovered marks a load that produced usable state only after
// recovering from the .bak copy or resetting to defaults. Callers check it
// with errors.Is: the snapshot is valid and should be used, but the
// wrapped message is worth surfacing to the user or a log.
var ErrSnapshotRecovered = errors.New("snapshot recovered")

// LoadSnapshot reads the snapshot from the data directory, creating a
// default one on first run. An empty or corrupt file recovers from the .bak
// copy when possible; otherwise the broken file is preserved under a
// .corrupt name and state resets to defaults. Both recovery paths return
// the usable snapshot together with an error wrapping
// ErrSnapshotRecovered; any other non-nil error means no state is
// available.
func LoadSnapshot(dataDir string) (*Snapshot, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	path := filepath.Join(dataDir, StateFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			snap := defaultSnapshot()
			if data, encErr := encodeSnapshot(snap); encErr == nil {
				_ = fsutil.WriteFileAtomic(path, data, 0600)
			}
			return snap, nil
		}
		return nil, fmt.Errorf("read %s: %w", StateFile, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return recoverSnapshot(path, fmt.Errorf("%s is empty", StateFile))
	}
	snap, err := decodeSnapshot(data)
	if err == nil {
		return snap, nil
	}
	return recoverSnapshot(path, err)
}

// recoverSnapshot tries the .bak copy, then falls back to defaults while
// preserving the broken file for inspection.
func recoverSnapshot(path string, cause error) (*Snapshot, error) {
	if bak, err := os.ReadFile(path + ".bak"); err == nil {
		if snap, decErr := decodeSnapshot(bak); decErr == nil {
			quarantine(path)
			if data, encErr := encodeSnapshot(snap); encErr == nil {
				_ = fsutil.WriteFileAtomic(path, data, 0600)
			}
			return snap, fmt.Errorf("%w: %s (recovered from backup)", ErrSnapshotRecovered, cause.Error())
		}
	}

	quarantine(path)
	snap := defaultSnapshot()
	if data, err := encodeSnapshot(snap); err == nil {
		_ = fsutil.WriteFileAtomic(path, data, 0600)
	}
	return snap, fmt.Errorf("%w: %s (reset to defaults; original preserved)", ErrSnapshotRecovered, cause.Error())
}

func quarantine(path string) {
	_ = os.Rename(path, fmt.Sprintf("%s.corrupt.%s", path, time.Now().Format("20060102-150405")))
}

// Package store contains the flowstate application state store: the single
// owner of all entity collections and the timer position. The presentation
// layer reads snapshots of this state and invokes actions; nothing else
// mutates it. All actions run synchronously in the caller's goroutine.
package store

import (
	"fmt"
	"time"

	"flowstate/internal/app"
	"flowstate/internal/metrics"
	"flowstate/internal/pomodoro"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Saver receives serialized snapshots after each mutation. Implementations
// must not block; see Persister.
type Saver interface {
	Save(data []byte)
}

// SessionListener observes completed sessions. Listeners are invoked
// synchronously right after the history grows by one record.
type SessionListener func(app.FocusSession)

// Store is the process-wide mutable state container.
type Store struct {
	snap      *Snapshot
	machine   *pomodoro.Machine
	saver     Saver
	logger    *log.Logger
	listeners []SessionListener

	now   func() time.Time
	newID func() string
}

// New builds a store around a loaded snapshot. A nil snapshot starts from
// defaults; a nil saver disables persistence (useful in tests).
func New(snap *Snapshot, saver Saver, logger *log.Logger) *Store {
	if snap == nil {
		snap = defaultSnapshot()
	}
	if logger == nil {
		logger = log.Default()
	}
	machine := snap.Timer
	machine.Normalize(snap.Settings)
	s := &Store{
		snap:    snap,
		machine: &machine,
		saver:   saver,
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	return s
}

// SetNowFunc overrides the store clock for deterministic tests. Passing nil
// resets it to time.Now. The machine clock follows along.
func (s *Store) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
	s.machine.SetNowFunc(now)
}

// SetIDFunc overrides entity ID generation. Passing nil resets it to UUIDs.
func (s *Store) SetIDFunc(newID func() string) {
	if newID == nil {
		newID = uuid.NewString
	}
	s.newID = newID
	s.machine.SetIDFunc(newID)
}

// Now returns the store's current time. Honors a test clock set via
// SetNowFunc.
func (s *Store) Now() time.Time {
	return s.now()
}

// Today returns the current calendar day in YYYY-MM-DD form.
func (s *Store) Today() string {
	return s.now().Format(app.DateFormat)
}

// Subscribe registers a listener for completed sessions.
func (s *Store) Subscribe(fn SessionListener) {
	s.listeners = append(s.listeners, fn)
}

// persist serializes the state and hands it to the saver. Never blocks and
// never fails the calling action.
func (s *Store) persist() {
	if s.saver == nil {
		return
	}
	s.snap.Timer = *s.machine
	data, err := encodeSnapshot(s.snap)
	if err != nil {
		s.logger.Warn("snapshot encode failed", "err", err)
		return
	}
	s.saver.Save(data)
}

// =============================================================================
// Timer actions
// =============================================================================

// Timer returns the current machine position. The returned value is a copy;
// transitions go through the store's actions.
func (s *Store) Timer() pomodoro.Machine {
	return *s.machine
}

// Settings returns the current pomodoro settings.
func (s *Store) Settings() app.PomodoroSettings {
	return s.snap.Settings
}

// Start begins the current session kind's countdown (valid from idle).
func (s *Store) Start() {
	s.machine.Start(s.snap.Settings)
	s.persist()
}

// Pause freezes an advancing countdown.
func (s *Store) Pause() {
	s.machine.Pause()
	s.persist()
}

// Resume continues a paused countdown.
func (s *Store) Resume() {
	s.machine.Resume()
	s.persist()
}

// Reset returns the timer to idle at the current kind's configured duration.
func (s *Store) Reset() {
	s.machine.Reset(s.snap.Settings)
	s.persist()
}

// Tick advances the countdown by one second. When the countdown completes,
// exactly one session record is appended and listeners are notified with it.
func (s *Store) Tick() {
	session := s.machine.Tick(s.snap.Settings)
	if session == nil {
		return
	}
	s.snap.Sessions = append(s.snap.Sessions, *session)
	s.persist()
	for _, fn := range s.listeners {
		fn(*session)
	}
}

// Skip advances to the next session kind without recording anything.
func (s *Store) Skip() {
	s.machine.Skip(s.snap.Settings)
	s.persist()
}

// ResetSessionCounter zeroes the completed-focus count used for long-break
// sequencing.
func (s *Store) ResetSessionCounter() {
	s.machine.ResetCounter()
	s.persist()
}

// UpdateSettings applies a partial settings update. Values are clamped into
// their allowed ranges. An idle timer immediately re-derives its remaining
// time from the new durations.
func (s *Store) UpdateSettings(patch app.SettingsPatch) {
	next := s.snap.Settings
	if patch.FocusMinutes != nil {
		next.FocusMinutes = *patch.FocusMinutes
	}
	if patch.ShortBreakMinutes != nil {
		next.ShortBreakMinutes = *patch.ShortBreakMinutes
	}
	if patch.LongBreakMinutes != nil {
		next.LongBreakMinutes = *patch.LongBreakMinutes
	}
	if patch.SessionsUntilLongBreak != nil {
		next.SessionsUntilLongBreak = *patch.SessionsUntilLongBreak
	}
	if patch.SoundEnabled != nil {
		next.SoundEnabled = *patch.SoundEnabled
	}
	s.snap.Settings = app.ClampSettings(next)
	s.machine.ApplySettings(s.snap.Settings)
	s.persist()
}

// SetSelectedCategory chooses the category for the next focus session.
func (s *Store) SetSelectedCategory(cat app.Category) {
	s.machine.Category = cat
	s.persist()
}

// Sessions returns the session history, oldest first.
func (s *Store) Sessions() []app.FocusSession {
	return s.snap.Sessions
}

// =============================================================================
// Habit actions
// =============================================================================

// Habits returns all habits, including archived ones.
func (s *Store) Habits() []app.Habit {
	return s.snap.Habits
}

// ActiveHabits returns non-archived habits.
func (s *Store) ActiveHabits() []app.Habit {
	var out []app.Habit
	for _, h := range s.snap.Habits {
		if !h.Archived {
			out = append(out, h)
		}
	}
	return out
}

// Completions returns all habit completion records.
func (s *Store) Completions() []app.HabitCompletion {
	return s.snap.Completions
}

// Habit looks up a habit by ID.
func (s *Store) Habit(id string) (app.Habit, bool) {
	for _, h := range s.snap.Habits {
		if h.ID == id {
			return h, true
		}
	}
	return app.Habit{}, false
}

// AddHabit validates the input and appends a new habit. On validation
// failure the field errors are returned and nothing is mutated.
func (s *Store) AddHabit(in app.HabitInput) (app.Habit, app.FieldErrors) {
	if errs := in.Validate(); len(errs) > 0 {
		return app.Habit{}, errs
	}
	color := in.Color
	if color == "" {
		color = app.DefaultHabitColor
	}
	habit := app.Habit{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		Frequency:   in.Frequency,
		TargetDays:  in.TargetDays,
		CreatedAt:   s.now(),
		Color:       color,
	}
	s.snap.Habits = append(s.snap.Habits, habit)
	s.persist()
	return habit, nil
}

// UpdateHabit applies a partial update to an existing habit.
func (s *Store) UpdateHabit(id string, patch app.HabitPatch) (app.Habit, app.FieldErrors, error) {
	for i, h := range s.snap.Habits {
		if h.ID != id {
			continue
		}
		if errs := patch.Validate(h); len(errs) > 0 {
			return app.Habit{}, errs, nil
		}
		if patch.Name != nil {
			h.Name = *patch.Name
		}
		if patch.Description != nil {
			h.Description = *patch.Description
		}
		if patch.Frequency != nil {
			h.Frequency = *patch.Frequency
		}
		if patch.TargetDays != nil {
			h.TargetDays = *patch.TargetDays
		}
		if patch.Color != nil {
			h.Color = *patch.Color
		}
		s.snap.Habits[i] = h
		s.persist()
		return h, nil, nil
	}
	return app.Habit{}, nil, fmt.Errorf("habit not found: %s", id)
}

// DeleteHabit removes a habit and cascades to its completions.
func (s *Store) DeleteHabit(id string) error {
	idx := -1
	for i, h := range s.snap.Habits {
		if h.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("habit not found: %s", id)
	}
	s.snap.Habits = append(s.snap.Habits[:idx], s.snap.Habits[idx+1:]...)

	kept := s.snap.Completions[:0]
	for _, c := range s.snap.Completions {
		if c.HabitID != id {
			kept = append(kept, c)
		}
	}
	s.snap.Completions = kept
	s.persist()
	return nil
}

// ArchiveHabit toggles a habit's archived flag.
func (s *Store) ArchiveHabit(id string) error {
	for i := range s.snap.Habits {
		if s.snap.Habits[i].ID == id {
			s.snap.Habits[i].Archived = !s.snap.Habits[i].Archived
			s.persist()
			return nil
		}
	}
	return fmt.Errorf("habit not found: %s", id)
}

// ToggleHabitCompletion records a completion for the (habit, date) pair, or
// removes the existing record if one is present. Applying it twice returns
// to the original state.
func (s *Store) ToggleHabitCompletion(habitID, date string) error {
	if _, err := time.Parse(app.DateFormat, date); err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	if _, ok := s.Habit(habitID); !ok {
		return fmt.Errorf("habit not found: %s", habitID)
	}

	for i, c := range s.snap.Completions {
		if c.HabitID == habitID && c.Date == date {
			s.snap.Completions = append(s.snap.Completions[:i], s.snap.Completions[i+1:]...)
			s.persist()
			return nil
		}
	}
	s.snap.Completions = append(s.snap.Completions, app.HabitCompletion{
		ID:          s.newID(),
		HabitID:     habitID,
		CompletedAt: s.now(),
		Date:        date,
	})
	s.persist()
	return nil
}

// IsHabitDoneOn reports whether a completion exists for the pair.
func (s *Store) IsHabitDoneOn(habitID, date string) bool {
	for _, c := range s.snap.Completions {
		if c.HabitID == habitID && c.Date == date {
			return true
		}
	}
	return false
}

// =============================================================================
// UI preference actions
// =============================================================================

// UI returns the persisted presentation preferences.
func (s *Store) UI() UIPrefs {
	return s.snap.UI
}

// SetActiveTab persists the active view.
func (s *Store) SetActiveTab(tab app.Tab) {
	s.snap.UI.ActiveTab = tab
	s.persist()
}

// ToggleDarkMode flips the dark-mode preference.
func (s *Store) ToggleDarkMode() {
	s.snap.UI.DarkMode = !s.snap.UI.DarkMode
	s.persist()
}

// HardReset clears all history and habits and restores default settings.
// UI preferences survive.
func (s *Store) HardReset() {
	ui := s.snap.UI
	s.snap = defaultSnapshot()
	s.snap.UI = ui
	machine := s.snap.Timer
	machine.SetNowFunc(s.now)
	machine.SetIDFunc(s.newID)
	s.machine = &machine
	s.persist()
}

// =============================================================================
// Queries (metrics)
// =============================================================================

// HabitStreak computes current/longest streaks for one habit.
func (s *Store) HabitStreak(habitID string) metrics.StreakData {
	return metrics.Streak(metrics.CompletionDates(s.snap.Completions, habitID), s.now())
}

// HabitCompletionRate computes the habit's completion percentage over the
// last `days` days.
func (s *Store) HabitCompletionRate(habitID string, days int) float64 {
	h, ok := s.Habit(habitID)
	if !ok {
		return 0
	}
	return metrics.CompletionRate(h, s.snap.Completions, days, s.now())
}

// FocusDataForDate returns total focus minutes and session count for a day.
func (s *Store) FocusDataForDate(date string) metrics.DayFocus {
	return metrics.FocusForDate(s.snap.Sessions, date)
}

// FocusStreak computes streaks over days with at least one completed focus
// session.
func (s *Store) FocusStreak() metrics.StreakData {
	return metrics.Streak(metrics.FocusDates(s.snap.Sessions), s.now())
}

// WeeklyHabitRate computes the 7-day completion rate across active habits.
func (s *Store) WeeklyHabitRate() int {
	return metrics.WeeklyHabitRate(s.snap.Habits, s.snap.Completions, s.now())
}

// =============================================================================
// Snapshot export / import
// =============================================================================

// Export produces the byte-exact serialization of the full state.
func (s *Store) Export() ([]byte, error) {
	s.snap.Timer = *s.machine
	return encodeSnapshot(s.snap)
}

// Import validates a snapshot document and, if valid, replaces the entire
// in-memory state. Invalid input fails without mutating anything. The caller
// must treat a nil return as a full-reload signal.
func (s *Store) Import(data []byte) error {
	snap, err := decodeSnapshot(data)
	if err != nil {
		return err
	}
	s.snap = snap
	machine := snap.Timer
	machine.SetNowFunc(s.now)
	machine.SetIDFunc(s.newID)
	s.machine = &machine
	s.persist()
	return nil
}

// Package app defines the flowstate domain model: focus sessions, habits,
// completions, pomodoro settings, and their validation rules.
package app

import "time"

// SessionKind identifies what a pomodoro interval was for.
type SessionKind string

const (
	KindFocus      SessionKind = "focus"
	KindShortBreak SessionKind = "short_break"
	KindLongBreak  SessionKind = "long_break"
)

// IsBreak reports whether the kind is either break variant.
func (k SessionKind) IsBreak() bool {
	return k == KindShortBreak || k == KindLongBreak
}

// Category labels what a focus session was spent on.
type Category string

const (
	CategoryWork       Category = "work"
	CategoryStudy      Category = "study"
	CategoryCode       Category = "code"
	CategoryReading    Category = "reading"
	CategoryMeditation Category = "meditation"
	CategoryOther      Category = "other"
)

// Categories lists all selectable categories in display order.
var Categories = []Category{
	CategoryWork, CategoryStudy, CategoryCode,
	CategoryReading, CategoryMeditation, CategoryOther,
}

// FocusSession is one completed pomodoro interval. Sessions are recorded
// atomically when the countdown reaches zero and are immutable afterwards;
// Duration is the planned length of the interval, not wall-clock elapsed time.
type FocusSession struct {
	ID        string      `json:"id"`
	StartedAt time.Time   `json:"started_at"`
	EndedAt   *time.Time  `json:"ended_at,omitempty"`
	Duration  int         `json:"duration"` // seconds
	Kind      SessionKind `json:"kind"`
	Category  Category    `json:"category,omitempty"` // meaningful for focus sessions only
	Completed bool        `json:"completed"`
}

// Frequency describes how often a habit is due.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

// Habit is a recurring commitment tracked per calendar day.
type Habit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Frequency   Frequency `json:"frequency"`
	TargetDays  []int     `json:"target_days,omitempty"` // 0=Sunday..6=Saturday, used when Frequency is custom
	CreatedAt   time.Time `json:"created_at"`
	Color       string    `json:"color"` // #RRGGBB
	Archived    bool      `json:"archived"`
}

// IsDueOn reports whether the habit is due on the given weekday.
// Daily and weekly habits are due every day; custom habits only on their
// target days.
func (h Habit) IsDueOn(weekday time.Weekday) bool {
	if h.Frequency != FrequencyCustom {
		return true
	}
	for _, d := range h.TargetDays {
		if d == int(weekday) {
			return true
		}
	}
	return false
}

// HabitCompletion records that a habit was satisfied on a calendar day.
// At most one completion exists per (habit, date) pair.
type HabitCompletion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
	Date        string    `json:"date"` // YYYY-MM-DD, timezone-naive
}

// PomodoroSettings holds the user-configurable interval durations.
// All durations are whole minutes.
type PomodoroSettings struct {
	FocusMinutes           int  `json:"focus_minutes"`
	ShortBreakMinutes      int  `json:"short_break_minutes"`
	LongBreakMinutes       int  `json:"long_break_minutes"`
	SessionsUntilLongBreak int  `json:"sessions_until_long_break"`
	SoundEnabled           bool `json:"sound_enabled"`
}

// DefaultSettings returns the classic pomodoro configuration.
func DefaultSettings() PomodoroSettings {
	return PomodoroSettings{
		FocusMinutes:           25,
		ShortBreakMinutes:      5,
		LongBreakMinutes:       15,
		SessionsUntilLongBreak: 4,
		SoundEnabled:           true,
	}
}

// DurationFor returns the configured duration for a session kind.
func (s PomodoroSettings) DurationFor(kind SessionKind) time.Duration {
	switch kind {
	case KindShortBreak:
		return time.Duration(s.ShortBreakMinutes) * time.Minute
	case KindLongBreak:
		return time.Duration(s.LongBreakMinutes) * time.Minute
	default:
		return time.Duration(s.FocusMinutes) * time.Minute
	}
}

// SettingsPatch is a partial settings update; nil fields are left unchanged.
type SettingsPatch struct {
	FocusMinutes           *int
	ShortBreakMinutes      *int
	LongBreakMinutes       *int
	SessionsUntilLongBreak *int
	SoundEnabled           *bool
}

// Tab identifies the active view, persisted as a UI preference.
type Tab string

const (
	TabTimer     Tab = "timer"
	TabHabits    Tab = "habits"
	TabAnalytics Tab = "analytics"
)

// DateFormat is the layout for calendar-day strings used throughout.
const DateFormat = "2006-01-02"

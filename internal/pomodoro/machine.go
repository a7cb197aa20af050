// Package pomodoro implements the focus-session countdown state machine.
// The machine is a plain value driven by explicit transitions; it performs
// no I/O and owns no timers. The caller supplies the one-second tick.
package pomodoro

import (
	"time"

	"flowstate/internal/app"

	"github.com/google/uuid"
)

// State is the machine position. Idle and paused are non-advancing; the
// three interval states count down on each Tick.
type State string

const (
	StateIdle       State = "idle"
	StateFocus      State = "focus"
	StateShortBreak State = "short_break"
	StateLongBreak  State = "long_break"
	StatePaused     State = "paused"
)

// Advancing reports whether the countdown is active in this state.
func (s State) Advancing() bool {
	return s == StateFocus || s == StateShortBreak || s == StateLongBreak
}

// Machine tracks the pomodoro countdown and session-kind sequencing.
// Transitions are total: calling one in an unexpected state is a defined
// no-op, never a fault.
type Machine struct {
	State          State           `json:"state"`
	Kind           app.SessionKind `json:"kind"`
	Remaining      int             `json:"remaining"` // seconds
	CompletedFocus int             `json:"completed_focus"`
	Category       app.Category    `json:"category"` // for the next focus session

	// planned is the interval length captured when the session left idle,
	// so a mid-session settings change cannot alter the recorded duration.
	planned int

	now   func() time.Time
	newID func() string
}

// New returns an idle machine positioned at the start of a focus session.
func New(settings app.PomodoroSettings) *Machine {
	return &Machine{
		State:     StateIdle,
		Kind:      app.KindFocus,
		Remaining: int(settings.DurationFor(app.KindFocus).Seconds()),
		Category:  app.CategoryWork,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// SetNowFunc overrides the machine clock. Passing nil resets it to time.Now.
func (m *Machine) SetNowFunc(now func() time.Time) {
	if now == nil {
		m.now = time.Now
		return
	}
	m.now = now
}

// SetIDFunc overrides session ID generation. Passing nil resets it to UUIDs.
func (m *Machine) SetIDFunc(newID func() string) {
	if newID == nil {
		m.newID = uuid.NewString
		return
	}
	m.newID = newID
}

// Start begins the current session kind's countdown. Only valid from idle;
// callers guard the control, so anything else is a no-op.
func (m *Machine) Start(settings app.PomodoroSettings) {
	if m.State != StateIdle {
		return
	}
	m.planned = int(settings.DurationFor(m.Kind).Seconds())
	m.State = stateFor(m.Kind)
}

// Pause freezes the countdown at its current value.
func (m *Machine) Pause() {
	if m.State.Advancing() {
		m.State = StatePaused
	}
}

// Resume continues a paused countdown from the frozen remaining time.
func (m *Machine) Resume() {
	if m.State == StatePaused {
		m.State = stateFor(m.Kind)
	}
}

// Reset returns to idle and restores the current kind's configured duration.
// The session kind and completed-focus count are untouched.
func (m *Machine) Reset(settings app.PomodoroSettings) {
	m.State = StateIdle
	m.Remaining = int(settings.DurationFor(m.Kind).Seconds())
	m.planned = 0
}

// Tick advances the countdown by one second. In a non-advancing state it
// does nothing. When the countdown would reach zero the session completes
// atomically within the same tick and the finished session is returned;
// otherwise Tick returns nil.
func (m *Machine) Tick(settings app.PomodoroSettings) *app.FocusSession {
	if !m.State.Advancing() {
		return nil
	}
	if m.Remaining > 1 {
		m.Remaining--
		return nil
	}
	return m.complete(settings)
}

// complete records the finished session, advances the kind, and idles the
// machine at the next interval's configured duration.
func (m *Machine) complete(settings app.PomodoroSettings) *app.FocusSession {
	duration := m.planned
	if duration <= 0 {
		duration = int(settings.DurationFor(m.Kind).Seconds())
	}

	now := m.now()
	ended := now
	session := &app.FocusSession{
		ID:        m.newID(),
		StartedAt: now.Add(-time.Duration(duration) * time.Second),
		EndedAt:   &ended,
		Duration:  duration,
		Kind:      m.Kind,
		Completed: true,
	}
	if m.Kind == app.KindFocus {
		session.Category = m.Category
		m.CompletedFocus++
	}

	m.Kind = m.nextKind(settings, m.CompletedFocus)
	m.Remaining = int(settings.DurationFor(m.Kind).Seconds())
	m.State = StateIdle
	m.planned = 0
	return session
}

// Skip advances to the next session kind exactly as completion would, but
// records nothing and leaves the completed-focus counter alone.
func (m *Machine) Skip(settings app.PomodoroSettings) {
	count := m.CompletedFocus
	if m.Kind == app.KindFocus {
		count++
	}
	m.Kind = m.nextKind(settings, count)
	m.Remaining = int(settings.DurationFor(m.Kind).Seconds())
	m.State = StateIdle
	m.planned = 0
}

// nextKind applies the sequencing rule: after a focus session, a long break
// every sessions-until-long-break completions, otherwise a short break;
// after any break, focus.
func (m *Machine) nextKind(settings app.PomodoroSettings, completedFocus int) app.SessionKind {
	if m.Kind != app.KindFocus {
		return app.KindFocus
	}
	if settings.SessionsUntilLongBreak > 0 && completedFocus%settings.SessionsUntilLongBreak == 0 {
		return app.KindLongBreak
	}
	return app.KindShortBreak
}

// ApplySettings re-derives the remaining time for a not-yet-started session.
// A running or paused countdown keeps its progress.
func (m *Machine) ApplySettings(settings app.PomodoroSettings) {
	if m.State == StateIdle {
		m.Remaining = int(settings.DurationFor(m.Kind).Seconds())
	}
}

// ResetCounter zeroes the completed-focus count.
func (m *Machine) ResetCounter() {
	m.CompletedFocus = 0
}

// Normalize repairs a machine restored from a snapshot: an advancing state
// has no live tick source after a reload, so it becomes paused with its
// remaining time intact.
func (m *Machine) Normalize(settings app.PomodoroSettings) {
	switch m.Kind {
	case app.KindFocus, app.KindShortBreak, app.KindLongBreak:
	default:
		m.Kind = app.KindFocus
	}
	if m.Category == "" {
		m.Category = app.CategoryWork
	}
	if m.State.Advancing() {
		m.State = StatePaused
		m.planned = int(settings.DurationFor(m.Kind).Seconds())
	}
	if m.Remaining <= 0 {
		m.State = StateIdle
		m.Remaining = int(settings.DurationFor(m.Kind).Seconds())
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
}

func stateFor(kind app.SessionKind) State {
	switch kind {
	case app.KindShortBreak:
		return StateShortBreak
	case app.KindLongBreak:
		return StateLongBreak
	default:
		return StateFocus
	}
}

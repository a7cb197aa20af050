package pomodoro

import (
	"fmt"
	"testing"
	"time"

	"flowstate/internal/app"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() app.PomodoroSettings {
	return app.PomodoroSettings{
		FocusMinutes:           25,
		ShortBreakMinutes:      5,
		LongBreakMinutes:       15,
		SessionsUntilLongBreak: 4,
	}
}

func testMachine(settings app.PomodoroSettings) *Machine {
	m := New(settings)
	m.SetNowFunc(func() time.Time {
		return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	})
	n := 0
	m.SetIDFunc(func() string {
		n++
		return fmt.Sprintf("session-%d", n)
	})
	return m
}

func TestNew_StartsIdleAtFocusDuration(t *testing.T) {
	m := testMachine(testSettings())

	assert.Equal(t, StateIdle, m.State)
	assert.Equal(t, app.KindFocus, m.Kind)
	assert.Equal(t, 25*60, m.Remaining)
	assert.Equal(t, 0, m.CompletedFocus)
}

func TestStart_OnlyFromIdle(t *testing.T) {
	settings := testSettings()
	m := testMachine(settings)

	m.Start(settings)
	assert.Equal(t, StateFocus, m.State)

	m.Pause()
	m.Start(settings)
	assert.Equal(t, StatePaused, m.State, "start from paused must be a no-op")
}

func TestPauseResume_FreezesRemaining(t *testing.T) {
	settings := testSettings()
	m := testMachine(settings)
	m.Start(settings)

	for i := 0; i < 10; i++ {
		m.Tick(settings)
	}
	assert.Equal(t, 25*60-10, m.Remaining)

	m.Pause()
	assert.Equal(t, StatePaused, m.State)

	// Ticks while paused are no-ops.
	m.Tick(settings)
	m.Tick(settings)
	assert.Equal(t, 25*60-10, m.Remaining)

	m.Resume()
	assert.Equal(t, StateFocus, m.State)
	m.Tick(settings)
	assert.Equal(t, 25*60-11, m.Remaining)
}

func TestReset_RestoresConfiguredDuration(t *testing.T) {
	settings := testSettings()
	m := testMachine(settings)
	m.Start(settings)
	for i := 0; i < 100; i++ {
		m.Tick(settings)
	}
	m.CompletedFocus = 2

	m.Reset(settings)

	assert.Equal(t, StateIdle, m.State)
	assert.Equal(t, 25*60, m.Remaining)
	assert.Equal(t, app.KindFocus, m.Kind, "reset must not change session kind")
	assert.Equal(t, 2, m.CompletedFocus, "reset must not change the counter")
}

func TestTick_CountsDownExactly(t *testing.T) {
	settings := testSettings()
	settings.FocusMinutes = 1 // 60 seconds
	m := testMachine(settings)
	m.Start(settings)

	for i := 0; i < 59; i++ {
		require.Nil(t, m.Tick(settings), "tick %d should not complete", i)
	}
	assert.Equal(t, 1, m.Remaining)

	session := m.Tick(settings)
	require.NotNil(t, session, "tick 60 must complete the session")
	assert.Equal(t, 60, session.Duration)
	assert.True(t, session.Completed)
	assert.Equal(t, app.KindFocus, session.Kind)
}

func TestTick_IgnoredWhenIdle(t *testing.T) {
	settings := testSettings()
	m := testMachine(settings)

	assert.Nil(t, m.Tick(settings))
	assert.Equal(t, 25*60, m.Remaining)
}

func TestComplete_FocusSequencing(t *testing.T) {
	settings := testSettings()
	settings.FocusMinutes = 1
	settings.SessionsUntilLongBreak = 2
	m := testMachine(settings)

	finish := func() *app.FocusSession {
		m.Start(settings)
		var session *app.FocusSession
		for session == nil {
			session = m.Tick(settings)
		}
		return session
	}

	// First focus -> short break (1 % 2 != 0).
	s1 := finish()
	assert.Equal(t, app.KindFocus, s1.Kind)
	assert.Equal(t, 1, m.CompletedFocus)
	assert.Equal(t, app.KindShortBreak, m.Kind)
	assert.Equal(t, StateIdle, m.State)
	assert.Equal(t, 5*60, m.Remaining)

	// Break -> focus.
	s2 := finish()
	assert.Equal(t, app.KindShortBreak, s2.Kind)
	assert.Equal(t, 1, m.CompletedFocus, "breaks never increment the counter")
	assert.Equal(t, app.KindFocus, m.Kind)

	// Second focus -> long break (2 % 2 == 0).
	finish()
	assert.Equal(t, 2, m.CompletedFocus)
	assert.Equal(t, app.KindLongBreak, m.Kind)
	assert.Equal(t, 15*60, m.Remaining)
}

func TestComplete_RecordsCategoryForFocusOnly(t *testing.T) {
	settings := testSettings()
	settings.FocusMinutes = 1
	settings.ShortBreakMinutes = 1
	m := testMachine(settings)
	m.Category = app.CategoryCode

	m.Start(settings)
	var session *app.FocusSession
	for session == nil {
		session = m.Tick(settings)
	}
	assert.Equal(t, app.CategoryCode, session.Category)

	m.Start(settings)
	session = nil
	for session == nil {
		session = m.Tick(settings)
	}
	assert.Equal(t, app.KindShortBreak, session.Kind)
	assert.Empty(t, session.Category)
}

func TestComplete_SynthesizesStartFromPlannedDuration(t *testing.T) {
	settings := testSettings()
	settings.FocusMinutes = 2
	m := testMachine(settings)
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	m.Start(settings)
	var session *app.FocusSession
	for session == nil {
		session = m.Tick(settings)
	}

	assert.Equal(t, now, *session.EndedAt)
	assert.Equal(t, now.Add(-2*time.Minute), session.StartedAt)
}

func TestComplete_DurationSnapshottedAtStart(t *testing.T) {
	settings := testSettings()
	settings.FocusMinutes = 1
	m := testMachine(settings)
	m.Start(settings)
	for i := 0; i < 30; i++ {
		m.Tick(settings)
	}

	// Mid-session settings change must not alter the recorded duration.
	settings.FocusMinutes = 50
	var session *app.FocusSession
	for session == nil {
		session = m.Tick(settings)
	}
	assert.Equal(t, 60, session.Duration)
}

func TestSkip_AdvancesWithoutRecording(t *testing.T) {
	settings := testSettings()
	m := testMachine(settings)
	m.Start(settings)
	m.Tick(settings)

	m.Skip(settings)

	assert.Equal(t, StateIdle, m.State)
	assert.Equal(t, app.KindShortBreak, m.Kind)
	assert.Equal(t, 5*60, m.Remaining)
	assert.Equal(t, 0, m.CompletedFocus, "skip never increments the counter")

	// Skipping the break returns to focus.
	m.Skip(settings)
	assert.Equal(t, app.KindFocus, m.Kind)
	assert.Equal(t, 25*60, m.Remaining)
}

func TestSkip_UsesCompletionSequencing(t *testing.T) {
	settings := testSettings()
	settings.SessionsUntilLongBreak = 3
	m := testMachine(settings)
	m.CompletedFocus = 2 // skipping the third focus would reach the boundary

	m.Skip(settings)

	assert.Equal(t, app.KindLongBreak, m.Kind)
	assert.Equal(t, 2, m.CompletedFocus)
}

func TestApplySettings_RederivesOnlyWhenIdle(t *testing.T) {
	settings := testSettings()
	m := testMachine(settings)

	settings.FocusMinutes = 30
	m.ApplySettings(settings)
	assert.Equal(t, 30*60, m.Remaining)

	m.Start(settings)
	m.Tick(settings)
	settings.FocusMinutes = 10
	m.ApplySettings(settings)
	assert.Equal(t, 30*60-1, m.Remaining, "running countdown keeps its progress")
}

func TestNormalize_AdvancingBecomesPaused(t *testing.T) {
	settings := testSettings()
	m := Machine{State: StateFocus, Kind: app.KindFocus, Remaining: 900}

	m.Normalize(settings)

	assert.Equal(t, StatePaused, m.State)
	assert.Equal(t, 900, m.Remaining)
	assert.Equal(t, app.CategoryWork, m.Category)
}

func TestNormalize_RepairsExhaustedCountdown(t *testing.T) {
	settings := testSettings()
	m := Machine{State: StatePaused, Kind: app.KindShortBreak, Remaining: 0}

	m.Normalize(settings)

	assert.Equal(t, StateIdle, m.State)
	assert.Equal(t, 5*60, m.Remaining)
}

package store

import (
	"fmt"
	"testing"
	"time"

	"flowstate/internal/app"
	"flowstate/internal/pomodoro"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC)

// recordingSaver captures persisted snapshots for assertions.
type recordingSaver struct {
	saves [][]byte
}

func (r *recordingSaver) Save(data []byte) { r.saves = append(r.saves, data) }

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(nil, &recordingSaver{}, nil)
	s.SetNowFunc(func() time.Time { return testNow })
	n := 0
	s.SetIDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
	return s
}

func today(offset int) string {
	return testNow.AddDate(0, 0, offset).Format(app.DateFormat)
}

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

// =============================================================================
// Timer actions
// =============================================================================

func TestTick_CompletionAppendsExactlyOneSession(t *testing.T) {
	s := newTestStore(t)
	s.UpdateSettings(app.SettingsPatch{FocusMinutes: intp(1)})
	s.Start()

	for i := 0; i < 59; i++ {
		s.Tick()
		assert.Len(t, s.Sessions(), 0)
	}
	assert.Equal(t, 60-59, s.Timer().Remaining)

	s.Tick()
	require.Len(t, s.Sessions(), 1)
	session := s.Sessions()[0]
	assert.Equal(t, app.KindFocus, session.Kind)
	assert.Equal(t, 60, session.Duration)
	assert.True(t, session.Completed)
	assert.Equal(t, pomodoro.StateIdle, s.Timer().State)
	assert.Equal(t, 1, s.Timer().CompletedFocus)
}

func TestTick_NotifiesListenersAfterHistoryGrows(t *testing.T) {
	s := newTestStore(t)
	s.UpdateSettings(app.SettingsPatch{FocusMinutes: intp(1)})

	var got []app.FocusSession
	var lenAtNotify int
	s.Subscribe(func(session app.FocusSession) {
		got = append(got, session)
		lenAtNotify = len(s.Sessions())
	})

	s.Start()
	for i := 0; i < 60; i++ {
		s.Tick()
	}

	require.Len(t, got, 1)
	assert.Equal(t, 1, lenAtNotify, "listener must observe the grown history")
	assert.Equal(t, app.KindFocus, got[0].Kind)
}

func TestSkip_NeverRecordsOrCounts(t *testing.T) {
	s := newTestStore(t)
	s.Start()
	s.Tick()

	s.Skip()

	assert.Empty(t, s.Sessions())
	assert.Equal(t, 0, s.Timer().CompletedFocus)
	assert.Equal(t, app.KindShortBreak, s.Timer().Kind)
	assert.Equal(t, pomodoro.StateIdle, s.Timer().State)
}

func TestReset_AnyStateToConfiguredDuration(t *testing.T) {
	s := newTestStore(t)
	s.Start()
	for i := 0; i < 100; i++ {
		s.Tick()
	}

	s.Reset()

	assert.Equal(t, pomodoro.StateIdle, s.Timer().State)
	assert.Equal(t, s.Settings().FocusMinutes*60, s.Timer().Remaining)
}

func TestUpdateSettings_IdleRederivesRemaining(t *testing.T) {
	s := newTestStore(t)

	s.UpdateSettings(app.SettingsPatch{FocusMinutes: intp(50)})

	assert.Equal(t, 50, s.Settings().FocusMinutes)
	assert.Equal(t, 50*60, s.Timer().Remaining)
}

func TestUpdateSettings_ClampsRanges(t *testing.T) {
	s := newTestStore(t)

	s.UpdateSettings(app.SettingsPatch{
		FocusMinutes:           intp(500),
		ShortBreakMinutes:      intp(0),
		SessionsUntilLongBreak: intp(99),
		SoundEnabled:           boolp(false),
	})

	assert.Equal(t, 120, s.Settings().FocusMinutes)
	assert.Equal(t, 1, s.Settings().ShortBreakMinutes)
	assert.Equal(t, 10, s.Settings().SessionsUntilLongBreak)
	assert.False(t, s.Settings().SoundEnabled)
}

func TestSetSelectedCategory_TagsNextFocusSession(t *testing.T) {
	s := newTestStore(t)
	s.UpdateSettings(app.SettingsPatch{FocusMinutes: intp(1)})
	s.SetSelectedCategory(app.CategoryMeditation)

	s.Start()
	for i := 0; i < 60; i++ {
		s.Tick()
	}

	require.Len(t, s.Sessions(), 1)
	assert.Equal(t, app.CategoryMeditation, s.Sessions()[0].Category)
}

func TestResetSessionCounter(t *testing.T) {
	s := newTestStore(t)
	s.UpdateSettings(app.SettingsPatch{FocusMinutes: intp(1)})
	s.Start()
	for i := 0; i < 60; i++ {
		s.Tick()
	}
	require.Equal(t, 1, s.Timer().CompletedFocus)

	s.ResetSessionCounter()
	assert.Equal(t, 0, s.Timer().CompletedFocus)
}

// =============================================================================
// Habit actions
// =============================================================================

func TestAddHabit_Valid(t *testing.T) {
	s := newTestStore(t)

	habit, errs := s.AddHabit(app.HabitInput{Name: "Read", Frequency: app.FrequencyDaily})

	require.Empty(t, errs)
	assert.NotEmpty(t, habit.ID)
	assert.Equal(t, app.DefaultHabitColor, habit.Color)
	assert.Equal(t, testNow, habit.CreatedAt)
	assert.Len(t, s.Habits(), 1)
}

func TestAddHabit_ValidationFailureMutatesNothing(t *testing.T) {
	s := newTestStore(t)

	_, errs := s.AddHabit(app.HabitInput{Name: "", Frequency: app.FrequencyCustom})

	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "target_days")
	assert.Empty(t, s.Habits())
}

func TestUpdateHabit_Partial(t *testing.T) {
	s := newTestStore(t)
	habit, _ := s.AddHabit(app.HabitInput{Name: "Read", Frequency: app.FrequencyDaily})

	name := "Read books"
	updated, errs, err := s.UpdateHabit(habit.ID, app.HabitPatch{Name: &name})

	require.NoError(t, err)
	require.Empty(t, errs)
	assert.Equal(t, "Read books", updated.Name)
	assert.Equal(t, app.FrequencyDaily, updated.Frequency, "unset fields keep their values")
}

func TestUpdateHabit_CustomWithoutDaysRejected(t *testing.T) {
	s := newTestStore(t)
	habit, _ := s.AddHabit(app.HabitInput{Name: "Gym", Frequency: app.FrequencyDaily})

	freq := app.FrequencyCustom
	_, errs, err := s.UpdateHabit(habit.ID, app.HabitPatch{Frequency: &freq})

	require.NoError(t, err)
	assert.Contains(t, errs, "target_days")
}

func TestUpdateHabit_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, _, err := s.UpdateHabit("missing", app.HabitPatch{})
	assert.Error(t, err)
}

func TestDeleteHabit_CascadesCompletions(t *testing.T) {
	s := newTestStore(t)
	habit, _ := s.AddHabit(app.HabitInput{Name: "Read", Frequency: app.FrequencyDaily})
	other, _ := s.AddHabit(app.HabitInput{Name: "Gym", Frequency: app.FrequencyDaily})
	require.NoError(t, s.ToggleHabitCompletion(habit.ID, today(0)))
	require.NoError(t, s.ToggleHabitCompletion(other.ID, today(0)))

	require.NoError(t, s.DeleteHabit(habit.ID))

	assert.Len(t, s.Habits(), 1)
	require.Len(t, s.Completions(), 1)
	assert.Equal(t, other.ID, s.Completions()[0].HabitID)
}

func TestToggleHabitCompletion_TwiceRestoresOriginal(t *testing.T) {
	s := newTestStore(t)
	habit, _ := s.AddHabit(app.HabitInput{Name: "Read", Frequency: app.FrequencyDaily})

	require.NoError(t, s.ToggleHabitCompletion(habit.ID, today(0)))
	assert.True(t, s.IsHabitDoneOn(habit.ID, today(0)))
	assert.Len(t, s.Completions(), 1)

	require.NoError(t, s.ToggleHabitCompletion(habit.ID, today(0)))
	assert.False(t, s.IsHabitDoneOn(habit.ID, today(0)))
	assert.Empty(t, s.Completions())
}

func TestToggleHabitCompletion_InvalidDate(t *testing.T) {
	s := newTestStore(t)
	habit, _ := s.AddHabit(app.HabitInput{Name: "Read", Frequency: app.FrequencyDaily})

	assert.Error(t, s.ToggleHabitCompletion(habit.ID, "14-03-2026"))
	assert.Error(t, s.ToggleHabitCompletion("missing", today(0)))
}

func TestArchiveHabit_TogglesFlag(t *testing.T) {
	s := newTestStore(t)
	habit, _ := s.AddHabit(app.HabitInput{Name: "Read", Frequency: app.FrequencyDaily})

	require.NoError(t, s.ArchiveHabit(habit.ID))
	assert.Empty(t, s.ActiveHabits())

	require.NoError(t, s.ArchiveHabit(habit.ID))
	assert.Len(t, s.ActiveHabits(), 1)
}

// =============================================================================
// Queries
// =============================================================================

func TestHabitStreak(t *testing.T) {
	s := newTestStore(t)
	habit, _ := s.AddHabit(app.HabitInput{Name: "Read", Frequency: app.FrequencyDaily})
	for _, d := range []string{today(0), today(-1), today(-2)} {
		require.NoError(t, s.ToggleHabitCompletion(habit.ID, d))
	}

	streak := s.HabitStreak(habit.ID)
	assert.Equal(t, 3, streak.Current)
	assert.Equal(t, 3, streak.Longest)
}

func TestFocusStreakAndFocusData(t *testing.T) {
	s := newTestStore(t)
	s.UpdateSettings(app.SettingsPatch{FocusMinutes: intp(1)})
	s.Start()
	for i := 0; i < 60; i++ {
		s.Tick()
	}

	streak := s.FocusStreak()
	assert.Equal(t, 1, streak.Current)

	data := s.FocusDataForDate(today(0))
	assert.Equal(t, 1, data.Sessions)
	assert.Equal(t, 1, data.Minutes)
}

func TestHabitCompletionRate_UnknownHabit(t *testing.T) {
	s := newTestStore(t)
	assert.Zero(t, s.HabitCompletionRate("missing", 7))
}

// =============================================================================
// UI prefs / reset
// =============================================================================

func TestUIPrefs(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, app.TabTimer, s.UI().ActiveTab)

	s.SetActiveTab(app.TabAnalytics)
	assert.Equal(t, app.TabAnalytics, s.UI().ActiveTab)

	dark := s.UI().DarkMode
	s.ToggleDarkMode()
	assert.Equal(t, !dark, s.UI().DarkMode)
}

func TestHardReset_ClearsHistoryKeepsPrefs(t *testing.T) {
	s := newTestStore(t)
	s.SetActiveTab(app.TabHabits)
	s.UpdateSettings(app.SettingsPatch{FocusMinutes: intp(1)})
	habit, _ := s.AddHabit(app.HabitInput{Name: "Read", Frequency: app.FrequencyDaily})
	require.NoError(t, s.ToggleHabitCompletion(habit.ID, today(0)))
	s.Start()
	for i := 0; i < 60; i++ {
		s.Tick()
	}

	s.HardReset()

	assert.Empty(t, s.Sessions())
	assert.Empty(t, s.Habits())
	assert.Empty(t, s.Completions())
	assert.Equal(t, 25, s.Settings().FocusMinutes, "settings return to defaults")
	assert.Equal(t, 0, s.Timer().CompletedFocus)
	assert.Equal(t, app.TabHabits, s.UI().ActiveTab, "UI prefs survive")
}

// =============================================================================
// Persistence
// =============================================================================

func TestActions_PersistAfterEachMutation(t *testing.T) {
	saver := &recordingSaver{}
	s := New(nil, saver, nil)
	s.SetNowFunc(func() time.Time { return testNow })

	s.Start()
	s.Pause()
	s.Resume()
	s.Reset()

	assert.Len(t, saver.saves, 4)
}

func TestQueries_DoNotPersist(t *testing.T) {
	saver := &recordingSaver{}
	s := New(nil, saver, nil)

	s.FocusStreak()
	s.WeeklyHabitRate()
	s.Timer()

	assert.Empty(t, saver.saves)
}

package metrics

import (
	"testing"

	"flowstate/internal/app"

	"github.com/stretchr/testify/assert"
)

func customHabit(id string, days ...int) app.Habit {
	return app.Habit{ID: id, Name: id, Frequency: app.FrequencyCustom, TargetDays: days}
}

func completionsOn(habitID string, dates ...string) []app.HabitCompletion {
	out := make([]app.HabitCompletion, 0, len(dates))
	for _, d := range dates {
		out = append(out, app.HabitCompletion{HabitID: habitID, Date: d})
	}
	return out
}

func TestCompletionRate_DailyFullWindow(t *testing.T) {
	h := app.Habit{ID: "h", Frequency: app.FrequencyDaily}
	completions := completionsOn("h", day(0), day(-1), day(-2), day(-3), day(-4), day(-5), day(-6))

	assert.InDelta(t, 100.0, CompletionRate(h, completions, 7, now), 0.001)
}

func TestCompletionRate_CustomTargetDays(t *testing.T) {
	// Mon/Wed/Fri habit over a 7-day window ending Saturday 2026-03-14:
	// applicable days are Mon 9th, Wed 11th, Fri 13th.
	h := customHabit("h", 1, 3, 5)
	completions := completionsOn("h", "2026-03-09", "2026-03-13")

	got := CompletionRate(h, completions, 7, now)
	assert.InDelta(t, 200.0/3.0, got, 0.001)
}

func TestCompletionRate_CompletionsOffTargetDaysDontCount(t *testing.T) {
	h := customHabit("h", 1) // Mondays only
	completions := completionsOn("h", day(0)) // Saturday

	got := CompletionRate(h, completions, 7, now)
	assert.InDelta(t, 0.0, got, 0.001)
}

func TestCompletionRate_WeeklyCountsEveryDay(t *testing.T) {
	h := app.Habit{ID: "h", Frequency: app.FrequencyWeekly}
	completions := completionsOn("h", day(0))

	got := CompletionRate(h, completions, 7, now)
	assert.InDelta(t, 100.0/7.0, got, 0.001)
}

func TestCompletionRate_NoApplicableDays(t *testing.T) {
	h := customHabit("h") // no target days: never due
	h.TargetDays = []int{}

	assert.Zero(t, CompletionRate(h, nil, 7, now))
}

func TestWeeklyHabitRate_DailyExpectedSeven(t *testing.T) {
	habits := []app.Habit{{ID: "h", Frequency: app.FrequencyDaily}}
	completions := completionsOn("h", day(0), day(-1), day(-2), day(-3), day(-4), day(-5), day(-6))

	assert.Equal(t, 100, WeeklyHabitRate(habits, completions, now))
}

func TestWeeklyHabitRate_WeeklyExpectedOne(t *testing.T) {
	// A weekly habit contributes 7 * 1/7 = 1 expected completion.
	habits := []app.Habit{{ID: "h", Frequency: app.FrequencyWeekly}}
	completions := completionsOn("h", day(-3))

	assert.Equal(t, 100, WeeklyHabitRate(habits, completions, now))
}

func TestWeeklyHabitRate_CustomExpectedTargetDaysOnly(t *testing.T) {
	// Mon/Wed/Fri: three expected completions in any 7-day window.
	habits := []app.Habit{customHabit("h", 1, 3, 5)}
	completions := completionsOn("h", "2026-03-09")

	assert.Equal(t, 33, WeeklyHabitRate(habits, completions, now))
}

func TestWeeklyHabitRate_ArchivedHabitsExcluded(t *testing.T) {
	habits := []app.Habit{
		{ID: "a", Frequency: app.FrequencyDaily, Archived: true},
	}
	assert.Zero(t, WeeklyHabitRate(habits, nil, now))
}

func TestWeeklyHabitRate_OldCompletionsOutsideWindow(t *testing.T) {
	habits := []app.Habit{{ID: "h", Frequency: app.FrequencyWeekly}}
	completions := completionsOn("h", day(-10))

	assert.Zero(t, WeeklyHabitRate(habits, completions, now))
}

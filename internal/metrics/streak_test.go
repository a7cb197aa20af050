package metrics

import (
	"testing"
	"time"

	"flowstate/internal/app"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC) // a Saturday

func day(offset int) string {
	return now.AddDate(0, 0, offset).Format(app.DateFormat)
}

func TestStreak_Empty(t *testing.T) {
	assert.Equal(t, StreakData{}, Streak(nil, now))
	assert.Equal(t, StreakData{}, Streak([]string{}, now))
}

func TestStreak_ConsecutiveThroughToday(t *testing.T) {
	got := Streak([]string{day(0), day(-1), day(-2)}, now)
	assert.Equal(t, StreakData{Current: 3, Longest: 3}, got)
}

func TestStreak_GapBreaksCurrent(t *testing.T) {
	got := Streak([]string{day(0), day(-2)}, now)
	assert.Equal(t, StreakData{Current: 1, Longest: 1}, got)
}

func TestStreak_AliveThroughYesterday(t *testing.T) {
	// Today not yet logged; the streak survives anchored on yesterday.
	got := Streak([]string{day(-1), day(-2), day(-3)}, now)
	assert.Equal(t, StreakData{Current: 3, Longest: 3}, got)
}

func TestStreak_DeadAfterTwoMissedDays(t *testing.T) {
	got := Streak([]string{day(-2), day(-3), day(-4)}, now)
	assert.Equal(t, 0, got.Current)
	assert.Equal(t, 3, got.Longest)
}

func TestStreak_LongestInThePast(t *testing.T) {
	dates := []string{day(0), day(-5), day(-6), day(-7), day(-8)}
	got := Streak(dates, now)
	assert.Equal(t, 1, got.Current)
	assert.Equal(t, 4, got.Longest)
}

func TestStreak_DeduplicatesDates(t *testing.T) {
	got := Streak([]string{day(0), day(0), day(-1), day(-1)}, now)
	assert.Equal(t, StreakData{Current: 2, Longest: 2}, got)
}

func TestStreak_IgnoresMalformedDates(t *testing.T) {
	got := Streak([]string{day(0), "not-a-date", day(-1)}, now)
	assert.Equal(t, StreakData{Current: 2, Longest: 2}, got)
}

func TestStreak_AcrossMonthBoundary(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dates := []string{"2026-03-01", "2026-02-28", "2026-02-27"}
	got := Streak(dates, at)
	assert.Equal(t, StreakData{Current: 3, Longest: 3}, got)
}

func TestFocusDates_OnlyCompletedFocus(t *testing.T) {
	sessions := []app.FocusSession{
		{Kind: app.KindFocus, Completed: true, StartedAt: now},
		{Kind: app.KindFocus, Completed: false, StartedAt: now},
		{Kind: app.KindShortBreak, Completed: true, StartedAt: now},
	}
	dates := FocusDates(sessions)
	assert.Equal(t, []string{day(0)}, dates)
}

func TestCompletionDates_FiltersByHabit(t *testing.T) {
	completions := []app.HabitCompletion{
		{HabitID: "a", Date: day(0)},
		{HabitID: "b", Date: day(-1)},
		{HabitID: "a", Date: day(-1)},
	}
	assert.Equal(t, []string{day(0), day(-1)}, CompletionDates(completions, "a"))
}

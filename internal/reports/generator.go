// Package reports provides daily and weekly report generation for flowstate.
package reports

import (
	"time"

	"flowstate/internal/app"
	"flowstate/internal/metrics"
)

// Generator creates reports from application state.
type Generator struct {
	sessions    []app.FocusSession
	habits      []app.Habit
	completions []app.HabitCompletion
	now         func() time.Time
}

// NewGenerator creates a report generator over the given collections.
func NewGenerator(sessions []app.FocusSession, habits []app.Habit, completions []app.HabitCompletion) *Generator {
	return &Generator{
		sessions:    sessions,
		habits:      habits,
		completions: completions,
		now:         time.Now,
	}
}

// SetNowFunc overrides the clock for deterministic tests.
func (g *Generator) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	g.now = now
}

// GenerateDaily generates a report for a specific date.
func (g *Generator) GenerateDaily(date time.Time) *DailyReport {
	date = startOfDay(date)
	return &DailyReport{
		Date:        date,
		Focus:       g.focusSummary(date),
		Habits:      g.habitSummary(date),
		GeneratedAt: g.now(),
	}
}

// GenerateWeekly generates a report for the week containing the given date.
// Weeks start on Sunday.
func (g *Generator) GenerateWeekly(date time.Time) *WeeklyReport {
	start := startOfWeekSunday(date)
	end := start.AddDate(0, 0, 7)

	return &WeeklyReport{
		StartDate:      start,
		EndDate:        end.Add(-time.Nanosecond), // End of last day
		Focus:          g.weeklyFocus(start),
		Habits:         g.weeklyHabits(start),
		DailyBreakdown: g.dailyBreakdown(start),
		GeneratedAt:    g.now(),
	}
}

// focusSummary returns focus statistics for one day.
func (g *Generator) focusSummary(date time.Time) FocusSummary {
	dateStr := date.Format(app.DateFormat)
	day := metrics.FocusForDate(g.sessions, dateStr)

	var inDay []app.FocusSession
	for _, s := range g.sessions {
		if s.Completed && s.Kind == app.KindFocus && s.StartedAt.Format(app.DateFormat) == dateStr {
			inDay = append(inDay, s)
		}
	}

	return FocusSummary{
		TotalMinutes: day.Minutes,
		Sessions:     day.Sessions,
		ByCategory:   categoryMinutes(inDay),
	}
}

// habitSummary returns habit statistics for one day. Archived habits are
// excluded.
func (g *Generator) habitSummary(date time.Time) HabitSummary {
	dateStr := date.Format(app.DateFormat)
	var statuses []HabitStatus
	completedCount := 0
	dueCount := 0

	for _, habit := range g.habits {
		if habit.Archived {
			continue
		}
		due := habit.IsDueOn(date.Weekday())
		done := g.doneOn(habit.ID, dateStr)
		if due {
			dueCount++
			if done {
				completedCount++
			}
		}
		statuses = append(statuses, HabitStatus{
			ID:     habit.ID,
			Name:   habit.Name,
			Due:    due,
			Done:   done,
			Streak: metrics.Streak(metrics.CompletionDates(g.completions, habit.ID), g.now()).Current,
		})
	}

	rate := 0.0
	if dueCount > 0 {
		rate = float64(completedCount) / float64(dueCount) * 100
	}

	return HabitSummary{
		Habits:         statuses,
		CompletedCount: completedCount,
		DueCount:       dueCount,
		CompletionRate: rate,
	}
}

// weeklyFocus returns focus statistics for a week.
func (g *Generator) weeklyFocus(start time.Time) WeeklyFocus {
	end := start.AddDate(0, 0, 7)
	byDay := make([]DayFocusCount, 7)
	totalMinutes := 0
	totalSessions := 0

	var inWeek []app.FocusSession
	for i := 0; i < 7; i++ {
		dayStart := start.AddDate(0, 0, i)
		dateStr := dayStart.Format(app.DateFormat)
		day := metrics.FocusForDate(g.sessions, dateStr)
		byDay[i] = DayFocusCount{
			Date:      dateStr,
			DayOfWeek: dayStart.Format("Mon"),
			Minutes:   day.Minutes,
			Sessions:  day.Sessions,
		}
		totalMinutes += day.Minutes
		totalSessions += day.Sessions
	}
	for _, s := range g.sessions {
		if s.Completed && s.Kind == app.KindFocus && !s.StartedAt.Before(start) && s.StartedAt.Before(end) {
			inWeek = append(inWeek, s)
		}
	}

	return WeeklyFocus{
		TotalMinutes:  totalMinutes,
		TotalSessions: totalSessions,
		DailyAverage:  totalMinutes / 7,
		ByCategory:    categoryMinutes(inWeek),
		ByDay:         byDay,
	}
}

// weeklyHabits returns habit statistics for a week. Archived habits are
// excluded.
func (g *Generator) weeklyHabits(start time.Time) WeeklyHabits {
	var statuses []WeeklyHabitStatus
	totalCompleted := 0
	totalExpected := 0

	for _, habit := range g.habits {
		if habit.Archived {
			continue
		}

		daysCompleted := make([]bool, 7)
		for i := 0; i < 7; i++ {
			day := start.AddDate(0, 0, i)
			daysCompleted[i] = g.doneOn(habit.ID, day.Format(app.DateFormat))
		}

		expected := expectedCountForWeek(habit, start)
		completed := completedCountForWeek(habit, daysCompleted, start)
		totalExpected += expected
		totalCompleted += completed

		rate := 0.0
		if expected > 0 {
			rate = float64(completed) / float64(expected) * 100
		}

		statuses = append(statuses, WeeklyHabitStatus{
			ID:             habit.ID,
			Name:           habit.Name,
			DaysCompleted:  daysCompleted,
			CompletedCount: completed,
			ExpectedCount:  expected,
			CompletionRate: rate,
			Streak:         metrics.Streak(metrics.CompletionDates(g.completions, habit.ID), g.now()).Current,
		})
	}

	overallRate := 0.0
	if totalExpected > 0 {
		overallRate = float64(totalCompleted) / float64(totalExpected) * 100
	}

	return WeeklyHabits{
		Habits:         statuses,
		OverallRate:    overallRate,
		TotalCompleted: totalCompleted,
		TotalExpected:  totalExpected,
	}
}

// dailyBreakdown returns a summary for each day of the week.
func (g *Generator) dailyBreakdown(start time.Time) []DailySummary {
	breakdown := make([]DailySummary, 0, 7)

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		focus := g.focusSummary(day)
		habits := g.habitSummary(day)

		breakdown = append(breakdown, DailySummary{
			Date:           day.Format(app.DateFormat),
			DayOfWeek:      day.Format("Mon"),
			FocusMinutes:   focus.TotalMinutes,
			FocusSessions:  focus.Sessions,
			HabitsComplete: habits.CompletedCount,
			HabitsDue:      habits.DueCount,
		})
	}

	return breakdown
}

// Helper functions

func (g *Generator) doneOn(habitID, date string) bool {
	for _, c := range g.completions {
		if c.HabitID == habitID && c.Date == date {
			return true
		}
	}
	return false
}

// categoryMinutes groups completed focus sessions by category and computes
// each category's share of the total.
func categoryMinutes(sessions []app.FocusSession) []CategoryMinutes {
	totals := metrics.CategoryTotals(sessions, time.Time{})
	totalMinutes := 0
	for _, t := range totals {
		totalMinutes += t.Minutes
	}

	out := make([]CategoryMinutes, 0, len(totals))
	for _, t := range totals {
		pct := 0.0
		if totalMinutes > 0 {
			pct = float64(t.Minutes) / float64(totalMinutes) * 100
		}
		out = append(out, CategoryMinutes{
			Category:   string(t.Category),
			Minutes:    t.Minutes,
			Percentage: pct,
		})
	}
	return out
}

// startOfDay returns the start of the day (midnight).
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeekSunday returns the start of the week (Sunday).
func startOfWeekSunday(t time.Time) time.Time {
	t = startOfDay(t)
	weekday := int(t.Weekday())
	return t.AddDate(0, 0, -weekday)
}

// expectedCountForWeek returns how many completions a habit calls for in one
// week: 7 for daily, 1 for weekly, and the number of due weekdays for custom.
func expectedCountForWeek(h app.Habit, weekStart time.Time) int {
	switch h.Frequency {
	case app.FrequencyWeekly:
		return 1
	case app.FrequencyCustom:
		count := 0
		for i := 0; i < 7; i++ {
			day := weekStart.AddDate(0, 0, i)
			if h.IsDueOn(day.Weekday()) {
				count++
			}
		}
		return count
	default:
		return 7
	}
}

// completedCountForWeek counts completions that satisfy the habit's schedule.
func completedCountForWeek(h app.Habit, daysCompleted []bool, weekStart time.Time) int {
	switch h.Frequency {
	case app.FrequencyWeekly:
		for _, done := range daysCompleted {
			if done {
				return 1
			}
		}
		return 0
	case app.FrequencyCustom:
		count := 0
		for i, done := range daysCompleted {
			if !done {
				continue
			}
			day := weekStart.AddDate(0, 0, i)
			if h.IsDueOn(day.Weekday()) {
				count++
			}
		}
		return count
	default:
		count := 0
		for _, done := range daysCompleted {
			if done {
				count++
			}
		}
		return count
	}
}

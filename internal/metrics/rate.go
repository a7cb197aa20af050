package metrics

import (
	"math"
	"time"

	"flowstate/internal/app"
)

// CompletionRate returns the percentage of applicable days in the last
// `days` days (ending today) on which the habit was completed. Daily and
// weekly habits are applicable every day; custom habits only on their target
// weekdays. Returns 0 when no day in the window was applicable.
func CompletionRate(habit app.Habit, completions []app.HabitCompletion, days int, now time.Time) float64 {
	done := make(map[string]bool)
	for _, c := range completions {
		if c.HabitID == habit.ID {
			done[c.Date] = true
		}
	}

	var applicable, completed int
	day := midnight(now)
	for i := 0; i < days; i++ {
		if habit.IsDueOn(day.Weekday()) {
			applicable++
			if done[day.Format(app.DateFormat)] {
				completed++
			}
		}
		day = day.AddDate(0, 0, -1)
	}

	if applicable == 0 {
		return 0
	}
	return float64(completed) / float64(applicable) * 100
}

// WeeklyHabitRate computes the 7-day completion rate across all active
// habits, rounded to the nearest percent. Expected completions accumulate
// per day: 1 for a daily habit, 1 for a custom habit on a target weekday,
// and 1/7 for a weekly habit (one expected completion somewhere in the
// week). Archived habits contribute nothing.
func WeeklyHabitRate(habits []app.Habit, completions []app.HabitCompletion, now time.Time) int {
	var expected float64
	day := midnight(now)
	for i := 0; i < 7; i++ {
		for _, h := range habits {
			if h.Archived {
				continue
			}
			switch h.Frequency {
			case app.FrequencyDaily:
				expected++
			case app.FrequencyCustom:
				if h.IsDueOn(day.Weekday()) {
					expected++
				}
			case app.FrequencyWeekly:
				expected += 1.0 / 7.0
			}
		}
		day = day.AddDate(0, 0, -1)
	}
	if expected == 0 {
		return 0
	}

	cutoff := midnight(now).AddDate(0, 0, -6)
	active := make(map[string]bool)
	for _, h := range habits {
		if !h.Archived {
			active[h.ID] = true
		}
	}
	var actual int
	for _, c := range completions {
		if !active[c.HabitID] {
			continue
		}
		d, err := time.Parse(app.DateFormat, c.Date)
		if err != nil || d.Before(cutoff) {
			continue
		}
		actual++
	}

	return int(math.Round(float64(actual) / expected * 100))
}

// Package metrics computes derived statistics over the flowstate history:
// streaks, completion rates, and time-bucketed focus aggregates. Every
// function is pure and total over its inputs; callers pass the clock in.
package metrics

import (
	"sort"
	"time"

	"flowstate/internal/app"
)

// StreakData reports consecutive-day runs over a set of calendar dates.
type StreakData struct {
	Current int
	Longest int
}

// Streak computes the current and longest consecutive-day runs for an
// unordered set of YYYY-MM-DD dates. The current streak is alive only if the
// most recent date is today or yesterday relative to now; it then walks
// backward one calendar day at a time. Both walks use date-only arithmetic,
// so DST shifts cannot produce fractional day gaps.
//
// The same function serves per-habit streaks and the aggregate focus streak.
func Streak(dates []string, now time.Time) StreakData {
	days := dedupeDays(dates)
	if len(days) == 0 {
		return StreakData{}
	}

	today := midnight(now)
	yesterday := today.AddDate(0, 0, -1)

	var data StreakData

	// Current streak: anchor on today or yesterday, then walk backward.
	latest := days[len(days)-1]
	if latest.Equal(today) || latest.Equal(yesterday) {
		expect := latest
		for i := len(days) - 1; i >= 0; i-- {
			if !days[i].Equal(expect) {
				break
			}
			data.Current++
			expect = expect.AddDate(0, 0, -1)
		}
	}

	// Longest streak: one ascending scan counting consecutive runs.
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
		} else {
			if run > data.Longest {
				data.Longest = run
			}
			run = 1
		}
	}
	if run > data.Longest {
		data.Longest = run
	}

	return data
}

// CompletionDates extracts the date set of a habit's completions.
func CompletionDates(completions []app.HabitCompletion, habitID string) []string {
	var dates []string
	for _, c := range completions {
		if c.HabitID == habitID {
			dates = append(dates, c.Date)
		}
	}
	return dates
}

// FocusDates extracts the distinct start dates of completed focus sessions.
func FocusDates(sessions []app.FocusSession) []string {
	var dates []string
	for _, s := range sessions {
		if s.Kind == app.KindFocus && s.Completed {
			dates = append(dates, s.StartedAt.Format(app.DateFormat))
		}
	}
	return dates
}

// dedupeDays parses, deduplicates, and sorts date strings ascending.
// Unparseable entries are dropped.
func dedupeDays(dates []string) []time.Time {
	seen := make(map[string]struct{}, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		t, err := time.Parse(app.DateFormat, d)
		if err != nil {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, t)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// midnight normalizes a timestamp to its calendar day in UTC, matching the
// timezone-naive date strings produced by time.Parse(DateFormat, ...).
func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

package metrics

import (
	"math"
	"sort"
	"time"

	"flowstate/internal/app"
)

// DayFocus is the focus total for one calendar day.
type DayFocus struct {
	Date     string
	Minutes  int
	Sessions int
}

// FocusForDate sums completed focus sessions whose start date matches the
// given YYYY-MM-DD day.
func FocusForDate(sessions []app.FocusSession, date string) DayFocus {
	out := DayFocus{Date: date}
	var seconds int
	for _, s := range sessions {
		if !isCompletedFocus(s) || s.StartedAt.Format(app.DateFormat) != date {
			continue
		}
		seconds += s.Duration
		out.Sessions++
	}
	out.Minutes = int(math.Round(float64(seconds) / 60))
	return out
}

// FocusByDay buckets completed focus sessions by start date over the last
// `days` days ending today, returning one entry per day in ascending order.
// Days without sessions appear with zero totals so chart axes stay dense.
func FocusByDay(sessions []app.FocusSession, days int, now time.Time) []DayFocus {
	seconds := make(map[string]int)
	counts := make(map[string]int)
	start := midnight(now).AddDate(0, 0, -(days - 1))
	for _, s := range sessions {
		if !isCompletedFocus(s) {
			continue
		}
		d := s.StartedAt.Format(app.DateFormat)
		if t, err := time.Parse(app.DateFormat, d); err != nil || t.Before(start) {
			continue
		}
		seconds[d] += s.Duration
		counts[d]++
	}

	out := make([]DayFocus, 0, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i).Format(app.DateFormat)
		out = append(out, DayFocus{
			Date:     d,
			Minutes:  int(math.Round(float64(seconds[d]) / 60)),
			Sessions: counts[d],
		})
	}
	return out
}

// FocusByHour buckets completed focus sessions by the local hour of their
// start timestamp. The result always has 24 entries (minutes per hour).
func FocusByHour(sessions []app.FocusSession, since time.Time) [24]int {
	var hours [24]int
	for _, s := range sessions {
		if !isCompletedFocus(s) || s.StartedAt.Before(since) {
			continue
		}
		hours[s.StartedAt.Hour()] += int(math.Round(float64(s.Duration) / 60))
	}
	return hours
}

// PeakHour returns the hour of day (0-23) with the most focus minutes since
// the given time, or -1 when there is no focus history in the window.
func PeakHour(sessions []app.FocusSession, since time.Time) int {
	hours := FocusByHour(sessions, since)
	best, bestMinutes := -1, 0
	for h, m := range hours {
		if m > bestMinutes {
			best, bestMinutes = h, m
		}
	}
	return best
}

// CategoryTotal aggregates completed focus time for one category.
type CategoryTotal struct {
	Category app.Category
	Minutes  int
	Sessions int
}

// CategoryTotals sums completed focus sessions per category since the given
// time, sorted by minutes descending. Sessions without a category fall under
// the "other" bucket.
func CategoryTotals(sessions []app.FocusSession, since time.Time) []CategoryTotal {
	byCat := make(map[app.Category]*CategoryTotal)
	for _, s := range sessions {
		if !isCompletedFocus(s) || s.StartedAt.Before(since) {
			continue
		}
		cat := s.Category
		if cat == "" {
			cat = app.CategoryOther
		}
		t, ok := byCat[cat]
		if !ok {
			t = &CategoryTotal{Category: cat}
			byCat[cat] = t
		}
		t.Minutes += int(math.Round(float64(s.Duration) / 60))
		t.Sessions++
	}

	out := make([]CategoryTotal, 0, len(byCat))
	for _, t := range byCat {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Minutes > out[j].Minutes })
	return out
}

// TotalFocusMinutes sums completed focus time since the given time.
func TotalFocusMinutes(sessions []app.FocusSession, since time.Time) int {
	var seconds int
	for _, s := range sessions {
		if isCompletedFocus(s) && !s.StartedAt.Before(since) {
			seconds += s.Duration
		}
	}
	return int(math.Round(float64(seconds) / 60))
}

// CountFocusSessions counts completed focus sessions since the given time.
func CountFocusSessions(sessions []app.FocusSession, since time.Time) int {
	var n int
	for _, s := range sessions {
		if isCompletedFocus(s) && !s.StartedAt.Before(since) {
			n++
		}
	}
	return n
}

func isCompletedFocus(s app.FocusSession) bool {
	return s.Kind == app.KindFocus && s.Completed
}

package reports

import (
	"strings"
	"testing"
	"time"

	"flowstate/internal/app"
)

var testNow = time.Date(2026, 3, 14, 15, 0, 0, 0, time.UTC) // Saturday

func testGenerator() *Generator {
	end := func(t time.Time) *time.Time { return &t }

	sessions := []app.FocusSession{
		{
			ID:        "s1",
			StartedAt: time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC), // Friday
			EndedAt:   end(time.Date(2026, 3, 13, 9, 25, 0, 0, time.UTC)),
			Duration:  25 * 60,
			Kind:      app.KindFocus,
			Category:  app.CategoryCode,
			Completed: true,
		},
		{
			ID:        "s2",
			StartedAt: time.Date(2026, 3, 13, 14, 0, 0, 0, time.UTC),
			EndedAt:   end(time.Date(2026, 3, 13, 14, 50, 0, 0, time.UTC)),
			Duration:  50 * 60,
			Kind:      app.KindFocus,
			Category:  app.CategoryReading,
			Completed: true,
		},
		{
			ID:        "s3",
			StartedAt: time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC),
			EndedAt:   end(time.Date(2026, 3, 13, 10, 5, 0, 0, time.UTC)),
			Duration:  5 * 60,
			Kind:      app.KindShortBreak, // breaks never count
			Completed: true,
		},
	}

	habits := []app.Habit{
		{ID: "h1", Name: "Read", Frequency: app.FrequencyDaily},
		{ID: "h2", Name: "Gym", Frequency: app.FrequencyCustom, TargetDays: []int{1, 3, 5}}, // Mon/Wed/Fri
		{ID: "h3", Name: "Old", Frequency: app.FrequencyDaily, Archived: true},
	}

	completions := []app.HabitCompletion{
		{ID: "c1", HabitID: "h1", Date: "2026-03-13"},
		{ID: "c2", HabitID: "h2", Date: "2026-03-13"},
		{ID: "c3", HabitID: "h2", Date: "2026-03-09"}, // Monday
	}

	g := NewGenerator(sessions, habits, completions)
	g.SetNowFunc(func() time.Time { return testNow })
	return g
}

func TestGenerateDaily(t *testing.T) {
	g := testGenerator()

	report := g.GenerateDaily(time.Date(2026, 3, 13, 18, 30, 0, 0, time.UTC))

	if got := report.Date.Format(app.DateFormat); got != "2026-03-13" {
		t.Errorf("Date = %s, want 2026-03-13", got)
	}

	if report.Focus.TotalMinutes != 75 {
		t.Errorf("Focus.TotalMinutes = %d, want 75", report.Focus.TotalMinutes)
	}
	if report.Focus.Sessions != 2 {
		t.Errorf("Focus.Sessions = %d, want 2", report.Focus.Sessions)
	}

	if len(report.Focus.ByCategory) != 2 {
		t.Fatalf("ByCategory len = %d, want 2", len(report.Focus.ByCategory))
	}
	// Sorted by minutes descending
	if report.Focus.ByCategory[0].Category != "reading" || report.Focus.ByCategory[0].Minutes != 50 {
		t.Errorf("top category = %+v, want reading/50", report.Focus.ByCategory[0])
	}

	// Friday: both active habits due and done; archived habit excluded.
	if report.Habits.DueCount != 2 || report.Habits.CompletedCount != 2 {
		t.Errorf("habits = %d/%d, want 2/2", report.Habits.CompletedCount, report.Habits.DueCount)
	}
	if report.Habits.CompletionRate != 100 {
		t.Errorf("CompletionRate = %v, want 100", report.Habits.CompletionRate)
	}
	if len(report.Habits.Habits) != 2 {
		t.Errorf("habit statuses = %d, want 2 (archived excluded)", len(report.Habits.Habits))
	}
}

func TestGenerateDaily_NotDueDay(t *testing.T) {
	g := testGenerator()

	// Saturday: the custom Mon/Wed/Fri habit is not due.
	report := g.GenerateDaily(testNow)

	if report.Habits.DueCount != 1 {
		t.Errorf("DueCount = %d, want 1", report.Habits.DueCount)
	}
	for _, h := range report.Habits.Habits {
		if h.ID == "h2" && h.Due {
			t.Error("custom habit should not be due on Saturday")
		}
	}
}

func TestGenerateWeekly(t *testing.T) {
	g := testGenerator()

	report := g.GenerateWeekly(testNow)

	// Week containing Saturday 2026-03-14 starts Sunday 2026-03-08.
	if got := report.StartDate.Format(app.DateFormat); got != "2026-03-08" {
		t.Errorf("StartDate = %s, want 2026-03-08", got)
	}

	if report.Focus.TotalMinutes != 75 {
		t.Errorf("Focus.TotalMinutes = %d, want 75", report.Focus.TotalMinutes)
	}
	if report.Focus.TotalSessions != 2 {
		t.Errorf("Focus.TotalSessions = %d, want 2", report.Focus.TotalSessions)
	}
	if len(report.Focus.ByDay) != 7 {
		t.Fatalf("ByDay len = %d, want 7", len(report.Focus.ByDay))
	}
	// Friday is index 5 (Sunday start).
	if report.Focus.ByDay[5].Minutes != 75 {
		t.Errorf("Friday minutes = %d, want 75", report.Focus.ByDay[5].Minutes)
	}

	// Daily habit: 7 expected, 1 completed. Custom habit: 3 expected, 2 completed.
	if report.Habits.TotalExpected != 10 {
		t.Errorf("TotalExpected = %d, want 10", report.Habits.TotalExpected)
	}
	if report.Habits.TotalCompleted != 3 {
		t.Errorf("TotalCompleted = %d, want 3", report.Habits.TotalCompleted)
	}

	for _, h := range report.Habits.Habits {
		if h.ID == "h2" {
			if h.ExpectedCount != 3 || h.CompletedCount != 2 {
				t.Errorf("custom habit = %d/%d, want 2/3", h.CompletedCount, h.ExpectedCount)
			}
		}
	}

	if len(report.DailyBreakdown) != 7 {
		t.Errorf("DailyBreakdown len = %d, want 7", len(report.DailyBreakdown))
	}
}

func TestFormatDailyMarkdown(t *testing.T) {
	g := testGenerator()
	report := g.GenerateDaily(time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC))

	md := FormatDailyMarkdown(report)

	for _, want := range []string{"# Daily Report", "1h 15m", "[x] Read", "[x] Gym"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestFormatWeeklyMarkdown(t *testing.T) {
	g := testGenerator()
	report := g.GenerateWeekly(testNow)

	md := FormatWeeklyMarkdown(report)

	for _, want := range []string{"# Weekly Report", "| Day |", "Gym"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestFormatDailyJSON(t *testing.T) {
	g := testGenerator()
	report := g.GenerateDaily(testNow)

	data, err := FormatDailyJSON(report)
	if err != nil {
		t.Fatalf("FormatDailyJSON() error: %v", err)
	}
	if !strings.Contains(string(data), `"total_minutes"`) {
		t.Errorf("JSON missing total_minutes: %s", data)
	}
}

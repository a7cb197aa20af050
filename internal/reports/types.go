// Package reports provides daily and weekly report generation for flowstate.
// Reports aggregate focus sessions and habit completions.
package reports

import "time"

// DailyReport contains aggregated data for a single day.
type DailyReport struct {
	Date        time.Time    `json:"date"`
	Focus       FocusSummary `json:"focus"`
	Habits      HabitSummary `json:"habits"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// WeeklyReport contains aggregated data for a week.
type WeeklyReport struct {
	StartDate      time.Time      `json:"start_date"`
	EndDate        time.Time      `json:"end_date"`
	Focus          WeeklyFocus    `json:"focus"`
	Habits         WeeklyHabits   `json:"habits"`
	DailyBreakdown []DailySummary `json:"daily_breakdown"`
	GeneratedAt    time.Time      `json:"generated_at"`
}

// FocusSummary contains focus statistics for a single day.
type FocusSummary struct {
	TotalMinutes int               `json:"total_minutes"`
	Sessions     int               `json:"sessions"`
	ByCategory   []CategoryMinutes `json:"by_category"`
}

// CategoryMinutes represents focus time grouped by category.
type CategoryMinutes struct {
	Category   string  `json:"category"`
	Minutes    int     `json:"minutes"`
	Percentage float64 `json:"percentage"`
}

// HabitSummary contains habit statistics for a single day.
type HabitSummary struct {
	Habits         []HabitStatus `json:"habits"`
	CompletedCount int           `json:"completed_count"`
	DueCount       int           `json:"due_count"`
	CompletionRate float64       `json:"completion_rate"`
}

// HabitStatus represents a habit and its completion status on a day.
type HabitStatus struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Due    bool   `json:"due"`
	Done   bool   `json:"done"`
	Streak int    `json:"streak"`
}

// WeeklyFocus contains focus statistics for a week.
type WeeklyFocus struct {
	TotalMinutes  int               `json:"total_minutes"`
	TotalSessions int               `json:"total_sessions"`
	DailyAverage  int               `json:"daily_average_minutes"`
	ByCategory    []CategoryMinutes `json:"by_category"`
	ByDay         []DayFocusCount   `json:"by_day"`
}

// DayFocusCount represents focus totals for a specific day.
type DayFocusCount struct {
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	Minutes   int    `json:"minutes"`
	Sessions  int    `json:"sessions"`
}

// WeeklyHabits contains habit statistics for a week.
type WeeklyHabits struct {
	Habits         []WeeklyHabitStatus `json:"habits"`
	OverallRate    float64             `json:"overall_rate"`
	TotalCompleted int                 `json:"total_completed"`
	TotalExpected  int                 `json:"total_expected"`
}

// WeeklyHabitStatus represents a habit's completion over a week.
type WeeklyHabitStatus struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	DaysCompleted  []bool  `json:"days_completed"` // 7 bools for each day
	CompletedCount int     `json:"completed_count"`
	ExpectedCount  int     `json:"expected_count"`
	CompletionRate float64 `json:"completion_rate"`
	Streak         int     `json:"streak"`
}

// DailySummary provides a quick overview of a single day within a week.
type DailySummary struct {
	Date           string `json:"date"`
	DayOfWeek      string `json:"day_of_week"`
	FocusMinutes   int    `json:"focus_minutes"`
	FocusSessions  int    `json:"focus_sessions"`
	HabitsComplete int    `json:"habits_complete"`
	HabitsDue      int    `json:"habits_due"`
}

package app

import (
	"regexp"
	"strings"
)

const (
	maxHabitNameLen = 50
	maxHabitDescLen = 200
)

var colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// DefaultHabitColor is used when a habit input omits a color.
const DefaultHabitColor = "#3B82F6"

// HabitInput carries the caller-supplied fields for creating a habit.
type HabitInput struct {
	Name        string
	Description string
	Frequency   Frequency
	TargetDays  []int
	Color       string
}

// FieldErrors maps field names to human-readable validation messages.
// An empty map means the input is valid.
type FieldErrors map[string]string

// Validate checks a habit input and returns field-level errors. Validation
// happens entirely at the boundary; no mutation is applied on failure.
func (in HabitInput) Validate() FieldErrors {
	errs := FieldErrors{}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		errs["name"] = "name is required"
	} else if len(name) > maxHabitNameLen {
		errs["name"] = "name too long (max 50 characters)"
	}

	if len(in.Description) > maxHabitDescLen {
		errs["description"] = "description too long (max 200 characters)"
	}

	switch in.Frequency {
	case FrequencyDaily, FrequencyWeekly:
	case FrequencyCustom:
		if len(in.TargetDays) == 0 {
			errs["target_days"] = "pick at least one day"
		}
		for _, d := range in.TargetDays {
			if d < 0 || d > 6 {
				errs["target_days"] = "days must be between Sunday (0) and Saturday (6)"
				break
			}
		}
	default:
		errs["frequency"] = "frequency must be daily, weekly, or custom"
	}

	if in.Color != "" && !colorRe.MatchString(in.Color) {
		errs["color"] = "color must be a #RRGGBB hex code"
	}

	return errs
}

// HabitPatch is a partial habit update; nil fields are left unchanged.
type HabitPatch struct {
	Name        *string
	Description *string
	Frequency   *Frequency
	TargetDays  *[]int
	Color       *string
}

// Validate checks only the fields present in the patch. The effective
// frequency/target-days pair is validated against the existing habit so a
// patch cannot leave a custom habit without due days.
func (p HabitPatch) Validate(existing Habit) FieldErrors {
	errs := FieldErrors{}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			errs["name"] = "name is required"
		} else if len(name) > maxHabitNameLen {
			errs["name"] = "name too long (max 50 characters)"
		}
	}
	if p.Description != nil && len(*p.Description) > maxHabitDescLen {
		errs["description"] = "description too long (max 200 characters)"
	}
	if p.Color != nil && !colorRe.MatchString(*p.Color) {
		errs["color"] = "color must be a #RRGGBB hex code"
	}

	freq := existing.Frequency
	if p.Frequency != nil {
		freq = *p.Frequency
		switch freq {
		case FrequencyDaily, FrequencyWeekly, FrequencyCustom:
		default:
			errs["frequency"] = "frequency must be daily, weekly, or custom"
		}
	}
	days := existing.TargetDays
	if p.TargetDays != nil {
		days = *p.TargetDays
		for _, d := range days {
			if d < 0 || d > 6 {
				errs["target_days"] = "days must be between Sunday (0) and Saturday (6)"
				break
			}
		}
	}
	if freq == FrequencyCustom && len(days) == 0 && errs["frequency"] == "" {
		errs["target_days"] = "pick at least one day"
	}

	return errs
}

// ClampSettings forces every settings field into its allowed range.
func ClampSettings(s PomodoroSettings) PomodoroSettings {
	s.FocusMinutes = clamp(s.FocusMinutes, 1, 120)
	s.ShortBreakMinutes = clamp(s.ShortBreakMinutes, 1, 30)
	s.LongBreakMinutes = clamp(s.LongBreakMinutes, 1, 60)
	s.SessionsUntilLongBreak = clamp(s.SessionsUntilLongBreak, 1, 10)
	return s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

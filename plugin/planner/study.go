// Package planner turns study goals and exam deadlines into multi-day
// event sequences: phased study plans and proportional exam countdowns.
package planner

import (
	"fmt"
	"time"

	"github.com/parkjy76/haruplan/plugin/nlparse"
)

// Plan parameter bounds. Out-of-range values are clamped, not rejected:
// this is a conversational surface, and silent normalization beats a
// validation error mid-chat.
const (
	MinStudyDays      = 1
	MaxStudyDays      = 180
	DefaultStudyDays  = 7
	DefaultStudyHours = 2.0
	MinStudyHours     = 1.0

	// StudyEventHour is the fixed evening slot for generated plan events.
	StudyEventHour = 20
)

// Study phases split the plan by zero-based day index: Concepts for the
// first 60% of days, Practice up to 85%, Review for the rest. Both
// cutoffs are floor(days*fraction), exclusive.
const (
	phaseConcepts = "Concepts"
	phasePractice = "Practice"
	phaseReview   = "Review"
)

func phaseFor(index, days int) string {
	switch {
	case index < int(float64(days)*0.6):
		return phaseConcepts
	case index < int(float64(days)*0.85):
		return phasePractice
	default:
		return phaseReview
	}
}

// ClampStudyParams normalizes plan parameters into their valid ranges.
func ClampStudyParams(days int, dailyHours float64) (int, float64) {
	if days < MinStudyDays {
		days = MinStudyDays
	}
	if days > MaxStudyDays {
		days = MaxStudyDays
	}
	if dailyHours <= 0 {
		dailyHours = MinStudyHours
	}
	return days, dailyHours
}

// StudyPlan emits one evening event per day for days consecutive days
// starting tomorrow, titled with the goal, phase, and daily hours.
func StudyPlan(goal string, days int, dailyHours float64, now time.Time) []nlparse.Event {
	days, dailyHours = ClampStudyParams(days, dailyHours)

	events := make([]nlparse.Event, 0, days)
	start := now.AddDate(0, 0, 1)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		when := time.Date(day.Year(), day.Month(), day.Day(), StudyEventHour, 0, 0, 0, now.Location())
		title := fmt.Sprintf("Study %s - %s (%gh)", goal, phaseFor(i, days), dailyHours)
		events = append(events, nlparse.Event{When: when, Title: title})
	}
	return events
}

// StudyPlanFromText extracts goal, duration, and daily hours from a
// study-plan sentence and generates the plan. Missing values fall back
// to the defaults above.
func StudyPlanFromText(text string, now time.Time) []nlparse.Event {
	goal := nlparse.ExtractStudyGoal(text)

	days := DefaultStudyDays
	if d, ok := nlparse.ParseStudyDays(text); ok {
		days = d
	}
	dailyHours := DefaultStudyHours
	if h, ok := nlparse.ParseDailyHours(text); ok {
		dailyHours = h
	}

	return StudyPlan(goal, days, dailyHours, now)
}

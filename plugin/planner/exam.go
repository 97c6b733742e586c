package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/parkjy76/haruplan/plugin/nlparse"
)

// Exam countdown parameters.
const (
	DefaultExamHours = 3.0
	MinExamHours     = 2.0

	// ExamDayHour is the slot for the final exam-day event itself.
	ExamDayHour = 9
)

// ExamCountdown builds a backward-planned schedule toward an exam date:
// one evening event per remaining day, plus a final event on the exam
// date. With HOURS loads each subject's total is split evenly over the
// remaining days; with WEIGHT loads the daily hour budget is split
// proportionally. An unresolvable or already-passed exam date yields
// nothing.
func ExamCountdown(text string, now time.Time) []nlparse.Event {
	examDate, ok := nlparse.ResolveExamDate(text, now)
	if !ok {
		return nil
	}

	daysLeft := daysBetween(now, examDate)
	if daysLeft <= 0 {
		return nil
	}

	dailyHours := DefaultExamHours
	if h, hok := parsePerDayHours(text); hok {
		dailyHours = h
	}
	if dailyHours <= 0 {
		dailyHours = MinExamHours
	}

	loads := examLoads(text)
	hasHours := false
	for _, load := range loads {
		if load.Unit == nlparse.UnitHours {
			hasHours = true
			break
		}
	}

	events := make([]nlparse.Event, 0, daysLeft+1)
	for offset := 1; offset <= daysLeft; offset++ {
		day := now.AddDate(0, 0, offset)
		remaining := daysBetween(day, examDate)

		parts := make([]string, 0, len(loads))
		for _, load := range loads {
			var hours float64
			if hasHours {
				// Fixed total per subject, spread over the countdown.
				hours = load.Amount / float64(daysLeft)
			} else {
				hours = dailyHours * (load.Amount / totalAmount(loads))
			}
			parts = append(parts, fmt.Sprintf("%s %.1fh", load.Name, hours))
		}

		when := time.Date(day.Year(), day.Month(), day.Day(), StudyEventHour, 0, 0, 0, now.Location())
		events = append(events, nlparse.Event{
			When:  when,
			Title: fmt.Sprintf("Exam D-%d: %s", remaining, strings.Join(parts, " | ")),
		})
	}

	examDay := time.Date(examDate.Year(), examDate.Month(), examDate.Day(), ExamDayHour, 0, 0, 0, examDate.Location())
	events = append(events, nlparse.Event{
		When:  examDay,
		Title: fmt.Sprintf("Exam Day (%s)", examDate.Format("2006-01-02")),
	})
	return events
}

// examLoads resolves the subject list for a countdown: explicit
// amount+unit loads first, then a bare subject-name list at weight 1.0
// each, then a single synthetic General load.
func examLoads(text string) []nlparse.SubjectLoad {
	if loads := nlparse.ParseSubjectLoads(text); len(loads) > 0 {
		return loads
	}
	if names := nlparse.InferBareSubjects(text); len(names) > 0 {
		loads := make([]nlparse.SubjectLoad, 0, len(names))
		for _, name := range names {
			loads = append(loads, nlparse.SubjectLoad{Name: name, Amount: 1.0, Unit: nlparse.UnitWeight})
		}
		return loads
	}
	return []nlparse.SubjectLoad{{Name: "General", Amount: 1.0, Unit: nlparse.UnitWeight}}
}

// parsePerDayHours only accepts an hours value anchored on the per-day
// marker; a bare hours mention in an exam sentence is too ambiguous.
func parsePerDayHours(text string) (float64, bool) {
	return nlparse.ParsePerDayHours(text)
}

func totalAmount(loads []nlparse.SubjectLoad) float64 {
	var total float64
	for _, load := range loads {
		total += load.Amount
	}
	return total
}

func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

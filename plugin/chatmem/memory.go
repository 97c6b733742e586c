// Package chatmem holds the small conversational memory that lets an
// elliptical follow-up sentence ("하루 3시간으로") resolve against what
// earlier turns already established. Memory is an explicit value passed
// in and out of Learn/Merge, never process-wide state; the caller owns
// persistence.
package chatmem

import (
	"fmt"
	"strings"
	"time"

	"github.com/parkjy76/haruplan/plugin/nlparse"
)

// Memory is the persisted conversational state. Every field is optional;
// a nil/empty field means "not yet learned" and is never fabricated.
type Memory struct {
	ExamDate   *time.Time
	Subjects   []string
	DailyHours *float64
	StudyGoal  string
	StudyDays  *int
}

// Learn updates memory in place from what text explicitly states. Each
// field is overwritten only when the sentence supplies a value for it;
// everything else is left untouched. A day-count is adopted as a study
// duration only when the sentence also carries a study/plan marker, so
// exam-date day mentions do not pollute the plan duration.
func (m *Memory) Learn(text string, now time.Time) {
	if examDate, ok := nlparse.ResolveExamDate(text, now); ok {
		m.ExamDate = &examDate
	}

	if hours, ok := nlparse.ParseDailyHours(text); ok {
		m.DailyHours = &hours
	}

	if days, ok := nlparse.ParseStudyDays(text); ok && nlparse.HasStudyMarker(text) {
		m.StudyDays = &days
	}

	if goal := nlparse.ExtractStudyGoal(text); goal != nlparse.DefaultStudyGoal {
		m.StudyGoal = goal
	}

	// Explicit loads replace the subject list outright; they carry more
	// signal than a bare name list.
	if loads := nlparse.ParseSubjectLoads(text); len(loads) > 0 {
		names := make([]string, 0, len(loads))
		for _, load := range loads {
			names = append(names, load.Name)
		}
		m.Subjects = names
	} else if names := nlparse.InferBareSubjects(text); len(names) > 0 {
		m.Subjects = names
	}
}

// Merge returns a new sentence with remembered details appended for
// whatever the request left out. The input is never mutated, each
// augmentation is applied at most once, and an absent memory field
// authoritatively skips its augmentation: merging against an empty
// memory returns the sentence unchanged.
func (m Memory) Merge(text string) string {
	merged := strings.TrimSpace(text)

	if nlparse.IsExamDistributionRequest(merged) {
		if !nlparse.HasExplicitExamDate(merged) && m.ExamDate != nil {
			merged += fmt.Sprintf(", %d%s %d%s %s%s",
				int(m.ExamDate.Month()), nlparse.MarkerMonth,
				m.ExamDate.Day(), nlparse.MarkerDay,
				nlparse.MarkerExam, nlparse.MarkerUntil)
		}
		if len(nlparse.ParseSubjectLoads(merged)) == 0 && len(nlparse.InferBareSubjects(merged)) == 0 && len(m.Subjects) > 0 {
			parts := make([]string, 0, len(m.Subjects))
			for _, name := range m.Subjects {
				parts = append(parts, name+" 1")
			}
			merged += ", " + strings.Join(parts, " ")
		}
		if _, ok := nlparse.ParseDailyHours(merged); !ok && m.DailyHours != nil {
			merged += fmt.Sprintf(", %s %g%s", nlparse.MarkerPerDay, *m.DailyHours, nlparse.MarkerHours)
		}
	}

	if nlparse.HasStudyMarker(merged) {
		if m.StudyGoal != "" && nlparse.ExtractStudyGoal(merged) == nlparse.DefaultStudyGoal {
			merged = m.StudyGoal + " " + merged
		}
		if _, ok := nlparse.ParseStudyDays(merged); !ok && m.StudyDays != nil {
			merged += fmt.Sprintf(", %d%s", *m.StudyDays, nlparse.MarkerDay)
		}
		// Re-checked after the goal prepend; the prepend never adds hours.
		if _, ok := nlparse.ParseDailyHours(merged); !ok && m.DailyHours != nil {
			merged += fmt.Sprintf(", %s %g%s", nlparse.MarkerPerDay, *m.DailyHours, nlparse.MarkerHours)
		}
	}

	return merged
}

// Format renders the memory for the "memory" chat command.
func (m Memory) Format() string {
	exam := "-"
	if m.ExamDate != nil {
		exam = m.ExamDate.Format("2006-01-02")
	}
	subjects := "-"
	if len(m.Subjects) > 0 {
		subjects = strings.Join(m.Subjects, ", ")
	}
	daily := "-"
	if m.DailyHours != nil {
		daily = fmt.Sprintf("%gh", *m.DailyHours)
	}
	goal := m.StudyGoal
	if goal == "" {
		goal = "-"
	}
	days := "-"
	if m.StudyDays != nil {
		days = fmt.Sprintf("%d", *m.StudyDays)
	}
	return fmt.Sprintf("exam=%s; subjects=%s; daily_hours=%s; study_goal=%s; study_days=%s",
		exam, subjects, daily, goal, days)
}

// IsEmpty reports whether no field has been learned yet.
func (m Memory) IsEmpty() bool {
	return m.ExamDate == nil && len(m.Subjects) == 0 && m.DailyHours == nil &&
		m.StudyGoal == "" && m.StudyDays == nil
}

// Package assistant orchestrates sentence classification, event
// generation, conversational memory, and persistence for one user turn.
package assistant

import (
	"github.com/parkjy76/haruplan/plugin/nlparse"
)

// Intent is the recognized shape of a sentence.
type Intent int

const (
	// IntentUnknown is for sentences that yield nothing recognizable.
	IntentUnknown Intent = iota
	// IntentExamPlan is an exam-countdown distribution request.
	IntentExamPlan
	// IntentStudyPlan is a study-plan request.
	IntentStudyPlan
	// IntentSchedule is a plain date/time schedule sentence.
	IntentSchedule
	// IntentDaysLeft is a remaining-days question.
	IntentDaysLeft
)

// String returns the string representation of Intent.
func (i Intent) String() string {
	switch i {
	case IntentExamPlan:
		return "exam_plan"
	case IntentStudyPlan:
		return "study_plan"
	case IntentSchedule:
		return "schedule"
	case IntentDaysLeft:
		return "days_left"
	default:
		return "unknown"
	}
}

// Classify runs the dispatcher's priority rules, first match wins. The
// exam trigger outranks the study trigger because it requires both an
// exam marker and a distribution marker; a bare study marker cannot
// shadow it. Schedule variants (explicit-date, day+hour, date-only) are
// all reported as IntentSchedule; the generation path re-distinguishes
// them. Days-left questions are detected separately, before dispatch.
func Classify(text string) Intent {
	switch {
	case nlparse.IsExamDistributionRequest(text):
		return IntentExamPlan
	case nlparse.HasStudyMarker(text):
		return IntentStudyPlan
	case nlparse.HasExplicitDate(text):
		return IntentSchedule
	case nlparse.HasDayHint(text) && nlparse.HasHourHint(text):
		return IntentSchedule
	case nlparse.HasDayHint(text):
		return IntentSchedule
	default:
		return IntentUnknown
	}
}

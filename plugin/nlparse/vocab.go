// Package nlparse implements rule-based parsing of Korean schedule
// sentences into calendar events. All parsing is pure given a reference
// instant: unrecognized text yields empty results, never an error.
package nlparse

import (
	"regexp"
	"strings"
)

// Fixed marker vocabulary. A marker signals what the numeral (or phrase)
// next to it means; the tokenizer patterns below are the only place the
// raw markers are combined into regular expressions.
const (
	MarkerDay        = "일"
	MarkerMonth      = "월"
	MarkerAM         = "오전"
	MarkerPM         = "오후"
	MarkerHour       = "시"
	MarkerMinute     = "분"
	MarkerHours      = "시간"
	MarkerStudy      = "공부"
	MarkerPlan       = "계획"
	MarkerExam       = "시험"
	MarkerCodingTest = "코딩테스트"
	MarkerDistribute = "배분"
	MarkerCountdown  = "역산"
	MarkerSubject    = "과목"
	MarkerUntil      = "까지"
	MarkerPerDay     = "하루"
	MarkerHowManyDay = "며칠"
	MarkerRemain     = "남"
	MarkerShow       = "보여"
	MarkerDelete     = "삭제"
	MarkerHelp       = "도움말"
	MarkerExit       = "종료"
	MarkerDDay       = "d-day"
	MarkerEveryDay   = "매일"
)

// DefaultTitle is substituted when title normalization leaves nothing.
const DefaultTitle = "일정"

var (
	dayPattern      = regexp.MustCompile(`(\d{1,2})\s*` + MarkerDay)
	studyDayPattern = regexp.MustCompile(`(\d{1,3})\s*` + MarkerDay)
	isoDatePattern  = regexp.MustCompile(`(\d{4})[-./](\d{1,2})[-./](\d{1,2})`)
	monthDayPattern = regexp.MustCompile(`(\d{1,2})\s*` + MarkerMonth + `\s*(\d{1,2})\s*` + MarkerDay)
	timePattern     = regexp.MustCompile(`(?:(` + MarkerAM + `|` + MarkerPM + `)\s*)?(\d{1,2})\s*` + MarkerHour + `(?:\s*(\d{1,2})\s*` + MarkerMinute + `)?`)
	hourHintPattern = regexp.MustCompile(`\d{1,2}\s*` + MarkerHour)

	dailyHoursPattern  = regexp.MustCompile(`(?:` + MarkerPerDay + `\s*)?(\d+(?:\.\d+)?)\s*` + MarkerHours)
	perDayHoursPattern = regexp.MustCompile(MarkerPerDay + `\s*(\d+(?:\.\d+)?)\s*` + MarkerHours)

	studyGoalPattern = regexp.MustCompile(`([^\s,.]+(?:\s+[^\s,.]+)?)\s*` + MarkerStudy)
)

// HasStudyMarker reports whether text contains a study or plan marker.
func HasStudyMarker(text string) bool {
	return strings.Contains(text, MarkerStudy) || strings.Contains(text, MarkerPlan)
}

// HasExamMarker reports whether text mentions an exam or coding test.
func HasExamMarker(text string) bool {
	return strings.Contains(text, MarkerExam) || strings.Contains(text, MarkerCodingTest)
}

// IsExamDistributionRequest reports whether text asks for an exam
// countdown plan: an exam marker plus at least one distribution marker.
func IsExamDistributionRequest(text string) bool {
	if !HasExamMarker(text) {
		return false
	}
	return strings.Contains(text, MarkerDistribute) ||
		strings.Contains(text, MarkerCountdown) ||
		strings.Contains(text, MarkerUntil) ||
		strings.Contains(text, MarkerSubject)
}

// IsDaysLeftQuery reports whether text is shaped like a remaining-days
// question. The caller still needs a resolvable date for an answer.
func IsDaysLeftQuery(text string) bool {
	lowered := strings.ToLower(strings.TrimSpace(text))
	return strings.Contains(text, MarkerHowManyDay) ||
		strings.Contains(text, MarkerRemain) ||
		strings.Contains(lowered, MarkerDDay)
}

// HasDayHint reports whether text contains a bare "N일" mention.
func HasDayHint(text string) bool {
	return dayPattern.MatchString(text)
}

// HasHourHint reports whether text contains an "N시" mention.
func HasHourHint(text string) bool {
	return hourHintPattern.MatchString(text)
}

// HasExplicitDate reports whether text carries a full month-day or
// ISO-like date.
func HasExplicitDate(text string) bool {
	return isoDatePattern.MatchString(text) || monthDayPattern.MatchString(text)
}

// HasExplicitExamDate reports whether text pins an exam date down: a
// full date, or a bare day mention inside an exam sentence.
func HasExplicitExamDate(text string) bool {
	if HasExplicitDate(text) {
		return true
	}
	return HasExamMarker(text) && dayPattern.MatchString(text)
}

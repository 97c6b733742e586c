package nlparse

import (
	"regexp"
	"strconv"
	"strings"
)

// LoadUnit distinguishes an absolute total-hours budget from a relative
// weight used to split a fixed daily budget.
type LoadUnit int

const (
	// UnitWeight is a relative proportion of the daily hour budget.
	UnitWeight LoadUnit = iota
	// UnitHours is an absolute total-hours budget for one subject.
	UnitHours
)

func (u LoadUnit) String() string {
	if u == UnitHours {
		return "hours"
	}
	return "weight"
}

// SubjectLoad is one subject's requested study allocation. Amount is
// always positive.
type SubjectLoad struct {
	Name   string
	Amount float64
	Unit   LoadUnit
}

const maxBareSubjects = 8

var (
	subjectLoadPattern = regexp.MustCompile(`([A-Za-z가-힣]{1,12})\s*(\d+(?:\.\d+)?)\s*(` + MarkerHours + `|h|페이지|문제)?`)
	subjectNamePattern = regexp.MustCompile(`^[A-Za-z가-힣]{1,12}$`)
	subjectListPattern = regexp.MustCompile(MarkerSubject + `\s*(.+)`)
	tokenSplitPattern  = regexp.MustCompile(`[,\s]+`)

	// Marker words can never be subject names.
	bannedSubjectNames = map[string]struct{}{
		MarkerExam:       {},
		MarkerCodingTest: {},
		MarkerStudy:      {},
		MarkerPlan:       {},
		MarkerDay:        {},
		MarkerMonth:      {},
		MarkerHour:       {},
		MarkerMinute:     {},
		MarkerHours:      {},
		MarkerPerDay:     {},
		MarkerEveryDay:   {},
	}
)

// ParseSubjectLoads extracts "name amount [unit]" pairs such as
// "수학 40, 영어 30" or "수학 20시간, 영어 15시간". Repeated mentions of
// one subject merge by summing amounts; a unit conflict makes the merged
// unit UnitWeight, the proportional fallback, rather than most-recent
// wins. Collection order of first mention is preserved.
func ParseSubjectLoads(text string) []SubjectLoad {
	var order []string
	merged := make(map[string]*SubjectLoad)

	for _, m := range subjectLoadPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if _, banned := bannedSubjectNames[name]; banned {
			continue
		}
		amount, err := strconv.ParseFloat(m[2], 64)
		if err != nil || amount <= 0 {
			continue
		}
		unit := UnitWeight
		if m[3] == MarkerHours || m[3] == "h" {
			unit = UnitHours
		}

		if existing, ok := merged[name]; ok {
			existing.Amount += amount
			if existing.Unit != unit {
				existing.Unit = UnitWeight
			}
			continue
		}
		merged[name] = &SubjectLoad{Name: name, Amount: amount, Unit: unit}
		order = append(order, name)
	}

	loads := make([]SubjectLoad, 0, len(order))
	for _, name := range order {
		loads = append(loads, *merged[name])
	}
	return loads
}

// InferBareSubjects extracts a plain subject-name list following the
// subject marker, for the "과목 수학 영어 국어" style without amounts.
// At most maxBareSubjects names are returned.
func InferBareSubjects(text string) []string {
	if !strings.Contains(text, MarkerSubject) {
		return nil
	}
	m := subjectListPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}

	var subjects []string
	for _, tok := range tokenSplitPattern.Split(m[1], -1) {
		tok = strings.Trim(tok, " ,.")
		if tok == "" || !subjectNamePattern.MatchString(tok) {
			continue
		}
		subjects = append(subjects, tok)
		if len(subjects) == maxBareSubjects {
			break
		}
	}
	return subjects
}

// ParseDailyHours extracts an hours-per-day value, with or without the
// per-day marker in front. Non-positive values are ignored.
func ParseDailyHours(text string) (float64, bool) {
	m := dailyHoursPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// ParsePerDayHours extracts an hours value anchored on the per-day
// marker, the unambiguous "하루 N시간" form.
func ParsePerDayHours(text string) (float64, bool) {
	m := perDayHoursPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// ParseStudyDays extracts a day-count mention. The caller decides
// whether the sentence context makes it a study duration.
func ParseStudyDays(text string) (int, bool) {
	m := studyDayPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	value, err := strconv.Atoi(m[1])
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// DefaultStudyGoal is returned when no goal phrase precedes the study
// marker.
const DefaultStudyGoal = "General"

// ExtractStudyGoal takes the one-or-two-word phrase immediately before
// the study marker as the goal, defaulting to DefaultStudyGoal.
func ExtractStudyGoal(text string) string {
	m := studyGoalPattern.FindStringSubmatch(text)
	if m == nil {
		return DefaultStudyGoal
	}
	goal := strings.TrimSpace(m[1])
	if goal == "" {
		return DefaultStudyGoal
	}
	return goal
}

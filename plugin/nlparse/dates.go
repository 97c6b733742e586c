package nlparse

import (
	"strconv"
	"time"
)

// ResolveDay builds a date for the given day-of-month in base's month.
// A day that already passed this month rolls forward to the same
// day-of-month next month, including the December to January rollover.
func ResolveDay(base time.Time, day int) time.Time {
	candidate := time.Date(base.Year(), base.Month(), day, 0, 0, 0, 0, base.Location())
	if beforeDate(candidate, base) {
		if base.Month() == time.December {
			candidate = time.Date(base.Year()+1, time.January, day, 0, 0, 0, 0, base.Location())
		} else {
			candidate = time.Date(base.Year(), base.Month()+1, day, 0, 0, 0, 0, base.Location())
		}
	}
	return candidate
}

// ResolveMonthDay builds a date for month/day in base's year, rolling to
// next year when the date already passed.
func ResolveMonthDay(base time.Time, month, day int) time.Time {
	candidate := time.Date(base.Year(), time.Month(month), day, 0, 0, 0, 0, base.Location())
	if beforeDate(candidate, base) {
		candidate = time.Date(base.Year()+1, time.Month(month), day, 0, 0, 0, 0, base.Location())
	}
	return candidate
}

// ResolveGenericDate tries date variants in strict priority order and
// stops at the first success: ISO-like YYYY-M-D, then explicit
// month-day, then a bare day resolved relative to base. An ISO date
// always wins even when a day mention also appears in the text.
func ResolveGenericDate(text string, base time.Time) (time.Time, bool) {
	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, base.Location()), true
	}
	if m := monthDayPattern.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		return ResolveMonthDay(base, month, day), true
	}
	if m := dayPattern.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		return ResolveDay(base, day), true
	}
	return time.Time{}, false
}

// ResolveExamDate is ResolveGenericDate with a stricter fallback: a bare
// day mention counts only when the sentence is about an exam, so generic
// day talk does not produce phantom exam dates.
func ResolveExamDate(text string, base time.Time) (time.Time, bool) {
	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return time.Date(year, time.Month(month), day, 0, 0, 0, 0, base.Location()), true
	}
	if m := monthDayPattern.FindStringSubmatch(text); m != nil {
		month, _ := strconv.Atoi(m[1])
		day, _ := strconv.Atoi(m[2])
		return ResolveMonthDay(base, month, day), true
	}
	if m := dayPattern.FindStringSubmatch(text); m != nil && HasExamMarker(text) {
		day, _ := strconv.Atoi(m[1])
		return ResolveDay(base, day), true
	}
	return time.Time{}, false
}

// beforeDate compares calendar dates only, ignoring the time of day.
func beforeDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}

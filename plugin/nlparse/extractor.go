package nlparse

import (
	"strconv"
	"strings"
	"time"
)

// DefaultEventHour is used when a sentence names a date but no time.
const DefaultEventHour = 9

// Event is a single extracted calendar entry, minute precision.
// Immutable once produced; storage identity belongs to the store layer.
type Event struct {
	When  time.Time
	Title string
}

// ExtractEvents splits text into day-anchored segments and emits one
// event per time mention, preserving source order (segment order, then
// time order within the segment). A segment without any time mention
// becomes a single event at DefaultEventHour titled with the whole
// segment. Text without a day marker yields nothing.
func ExtractEvents(text string, now time.Time) []Event {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "\n", " "))
	dayLocs := dayPattern.FindAllStringSubmatchIndex(cleaned, -1)

	var results []Event
	for i, loc := range dayLocs {
		day, _ := strconv.Atoi(cleaned[loc[2]:loc[3]])
		segStart := loc[1]
		segEnd := len(cleaned)
		if i+1 < len(dayLocs) {
			segEnd = dayLocs[i+1][0]
		}
		segment := strings.Trim(cleaned[segStart:segEnd], " ,.")
		baseDay := ResolveDay(now, day)

		times := findTimeMatches(segment)
		if len(times) == 0 {
			results = append(results, Event{
				When:  at(baseDay, DefaultEventHour, 0),
				Title: NormalizeTitle(segment),
			})
			continue
		}

		var clock clockContext
		for ti, tm := range times {
			hour := clock.resolve(tm.ampm, tm.hour)
			titleEnd := len(segment)
			if ti+1 < len(times) {
				titleEnd = times[ti+1].start
			}
			results = append(results, Event{
				When:  at(baseDay, hour, tm.minute),
				Title: NormalizeTitle(segment[tm.end:titleEnd]),
			})
		}
	}
	return results
}

// ExtractWithExplicitDate handles sentences carrying a full month-day or
// ISO date: the date is resolved once, its text stripped, and the rest
// parsed for times. Without a time mention a single event is emitted at
// DefaultEventHour. The afternoon-carry heuristic does not apply here;
// every hour stands on its own am/pm marker.
func ExtractWithExplicitDate(text string, now time.Time) []Event {
	base, ok := ResolveGenericDate(text, now)
	if !ok {
		return nil
	}

	body := stripDateMentions(text, false)
	body = strings.Trim(body, " ,.")

	times := findTimeMatches(body)
	if len(times) == 0 {
		title := DefaultTitle
		if body != "" {
			title = NormalizeTitle(body)
		}
		return []Event{{When: at(base, DefaultEventHour, 0), Title: title}}
	}

	events := make([]Event, 0, len(times))
	for i, tm := range times {
		hour := resolveClock(tm.ampm, tm.hour)
		titleEnd := len(body)
		if i+1 < len(times) {
			titleEnd = times[i+1].start
		}
		events = append(events, Event{
			When:  at(base, hour, tm.minute),
			Title: NormalizeTitle(body[tm.end:titleEnd]),
		})
	}
	return events
}

// ExtractDateOnly builds one event at DefaultEventHour from a sentence
// that resolves to a date but names no time at all. The date substring is
// stripped before the remainder becomes the title.
func ExtractDateOnly(text string, now time.Time) (Event, bool) {
	target, ok := ResolveGenericDate(text, now)
	if !ok {
		return Event{}, false
	}

	cleaned := stripDateMentions(text, true)
	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.Trim(cleaned, " ,.")

	title := DefaultTitle
	if cleaned != "" {
		title = NormalizeTitle(cleaned)
	}
	return Event{When: at(target, DefaultEventHour, 0), Title: title}, true
}

// stripDateMentions removes explicit date substrings from text. Bare day
// mentions are removed only for date-only sentences, where no segment
// loop follows.
func stripDateMentions(text string, bareDays bool) string {
	out := isoDatePattern.ReplaceAllString(text, "")
	out = monthDayPattern.ReplaceAllString(out, "")
	if bareDays {
		out = dayPattern.ReplaceAllString(out, "")
	}
	return out
}

// at anchors a clock time on day's calendar date, seconds always zero.
func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
